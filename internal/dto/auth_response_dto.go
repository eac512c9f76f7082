package dto

// LoginResponse returns the access token after a successful login or refresh.
// The refresh token travels in an HTTP-only cookie, never in the body.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
