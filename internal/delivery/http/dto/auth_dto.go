package dto

// LoginRequest represents the login payload. Username is empty in legacy
// single-password mode.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest represents the registration payload (multi-user mode only).
type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	InviteCode      string `json:"invite_code" form:"invite_code"`
}
