package adapter

import (
	"context"
	"crypto/sha1"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"tradejournal/internal/domain"
)

const cloudinaryBaseURL = "https://api.cloudinary.com"

// CloudinaryClient implements domain.ImageUploader against the Cloudinary
// upload REST API with signed uploads.
type CloudinaryClient struct {
	http *resty.Client
}

// NewCloudinaryClient creates a Cloudinary upload client. An empty baseURL
// selects the production endpoint.
func NewCloudinaryClient(baseURL string) domain.ImageUploader {
	if baseURL == "" {
		baseURL = cloudinaryBaseURL
	}
	return &CloudinaryClient{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(30 * time.Second),
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type cloudinaryError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends a base64 PNG (without the data: prefix) to Cloudinary under the
// trading_journal folder with a timestamped public ID.
func (c *CloudinaryClient) Upload(ctx context.Context, creds domain.ImageHostCredentials, imageBase64 string) (*domain.UploadResult, error) {
	now := time.Now()
	params := map[string]string{
		"folder":    "trading_journal",
		"public_id": fmt.Sprintf("trading_journal/%s", now.Format("20060102_150405")),
		"timestamp": fmt.Sprintf("%d", now.Unix()),
	}

	form := map[string]string{
		"file":      "data:image/png;base64," + imageBase64,
		"api_key":   creds.APIKey,
		"signature": signParams(params, creds.APISecret),
	}
	for k, v := range params {
		form[k] = v
	}

	var (
		out    cloudinaryResponse
		apiErr cloudinaryError
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&apiErr).
		Post(fmt.Sprintf("/v1_1/%s/image/upload", creds.CloudName))

	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.String()
		}
		return nil, fmt.Errorf("Cloudinary upload failed: status=%d, message=%s", resp.StatusCode(), msg)
	}

	return &domain.UploadResult{
		URL:      out.SecureURL,
		PublicID: out.PublicID,
		Width:    out.Width,
		Height:   out.Height,
	}, nil
}

// signParams builds the Cloudinary request signature: the sorted key=value
// pairs joined by '&', concatenated with the API secret, SHA-1 hashed.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return fmt.Sprintf("%x", sum)
}
