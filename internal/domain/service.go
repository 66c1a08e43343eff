package domain

import "context"

// Assistant reformats raw trading notes into a structured journal entry.
// The API key is passed per call because it can change at runtime through the
// settings endpoint.
type Assistant interface {
	Complete(ctx context.Context, apiKey, system, message string) (string, error)
}

// MarketData provides the current market-index snapshot.
type MarketData interface {
	Snapshot(ctx context.Context) (*MarketSnapshot, error)
}

// UploadResult describes an uploaded image on the image host.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// ImageUploader uploads base64-encoded images to the image host.
type ImageUploader interface {
	Upload(ctx context.Context, creds ImageHostCredentials, imageBase64 string) (*UploadResult, error)
}
