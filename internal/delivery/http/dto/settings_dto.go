package dto

// SettingsView is the settings report: presence flags and a short key
// preview, never the credentials themselves.
type SettingsView struct {
	HasKey              bool   `json:"has_key"`
	KeyPreview          string `json:"key_preview"`
	KeyFromEnv          bool   `json:"key_from_env"`
	IsCloud             bool   `json:"is_cloud"`
	HasCloudinary       bool   `json:"has_cloudinary"`
	CloudinaryCloudName string `json:"cloudinary_cloud_name"`
	CloudinaryFromEnv   bool   `json:"cloudinary_from_env"`
}

// SettingsUpdateRequest carries credential updates; empty fields are left
// unchanged.
type SettingsUpdateRequest struct {
	APIKey              string `json:"api_key"`
	CloudinaryCloudName string `json:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `json:"cloudinary_api_key"`
	CloudinaryAPISecret string `json:"cloudinary_api_secret"`
}

// UploadImageRequest carries a base64 image, optionally as a data: URL.
type UploadImageRequest struct {
	Image string `json:"image"`
}
