package domain

// Settings holds the runtime-configurable credentials: the LLM API key and the
// image host account. Environment variables always take priority over the
// settings file; in cloud mode the file is never written.
type Settings struct {
	APIKey              string `json:"api_key"`
	CloudinaryCloudName string `json:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `json:"cloudinary_api_key"`
	CloudinaryAPISecret string `json:"cloudinary_api_secret"`
}

// HasCloudinary reports whether all three Cloudinary credentials are present.
func (s *Settings) HasCloudinary() bool {
	return s.CloudinaryCloudName != "" && s.CloudinaryAPIKey != "" && s.CloudinaryAPISecret != ""
}

// ImageHostCredentials identifies a Cloudinary account for uploads.
type ImageHostCredentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Credentials extracts the image host credentials from the settings.
func (s *Settings) Credentials() ImageHostCredentials {
	return ImageHostCredentials{
		CloudName: s.CloudinaryCloudName,
		APIKey:    s.CloudinaryAPIKey,
		APISecret: s.CloudinaryAPISecret,
	}
}
