package dto

// SignupRequest is the payload for POST /auth/signup. Username rules
// (pattern, length, restricted names) are enforced in the auth service so
// the error messages stay identical across call paths.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignupResponse echoes the identity back; the confirmation code is only
// ever delivered out-of-band.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateTokenRequest is the payload for POST /auth/token.
type CreateTokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=6"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
