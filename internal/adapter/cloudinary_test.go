package adapter

import (
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradejournal/internal/domain"
)

var testCreds = domain.ImageHostCredentials{
	CloudName: "demo",
	APIKey:    "key123",
	APISecret: "secret456",
}

func TestCloudinaryUpload(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse form: %v", err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/chart.png","public_id":"trading_journal/20260105_093000","width":800,"height":600}`))
	}))
	defer srv.Close()

	c := NewCloudinaryClient(srv.URL)
	result, err := c.Upload(context.Background(), testCreds, "aW1hZ2VkYXRh")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if result.URL != "https://res.cloudinary.com/demo/chart.png" {
		t.Errorf("unexpected URL: %q", result.URL)
	}
	if result.Width != 800 || result.Height != 600 {
		t.Errorf("dimensions not propagated: %dx%d", result.Width, result.Height)
	}

	if gotForm["file"] != "data:image/png;base64,aW1hZ2VkYXRh" {
		t.Errorf("file field should carry the data URL, got %q", gotForm["file"])
	}
	if gotForm["api_key"] != "key123" {
		t.Errorf("api_key not sent")
	}
	if gotForm["folder"] != "trading_journal" {
		t.Errorf("folder not sent, got %q", gotForm["folder"])
	}
	if !strings.HasPrefix(gotForm["public_id"], "trading_journal/") {
		t.Errorf("public_id should live under the journal folder, got %q", gotForm["public_id"])
	}

	// The signature covers the sorted signed params plus the secret.
	signed := fmt.Sprintf("folder=%s&public_id=%s&timestamp=%s",
		gotForm["folder"], gotForm["public_id"], gotForm["timestamp"])
	want := fmt.Sprintf("%x", sha1.Sum([]byte(signed+testCreds.APISecret)))
	if gotForm["signature"] != want {
		t.Errorf("signature mismatch: expected %s, got %s", want, gotForm["signature"])
	}
}

func TestCloudinaryUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer srv.Close()

	c := NewCloudinaryClient(srv.URL)
	_, err := c.Upload(context.Background(), testCreds, "aW1hZ2VkYXRh")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "Invalid Signature") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestSignParams(t *testing.T) {
	params := map[string]string{
		"timestamp": "1700000000",
		"folder":    "trading_journal",
		"public_id": "trading_journal/20260105_093000",
	}
	// Keys must be sorted before hashing.
	payload := "folder=trading_journal&public_id=trading_journal/20260105_093000&timestamp=1700000000secret456"
	want := fmt.Sprintf("%x", sha1.Sum([]byte(payload)))

	if got := signParams(params, "secret456"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
