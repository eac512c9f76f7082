package domain

import "time"

// User is an operator account for the shop. The app is effectively
// single-tenant; users only exist to gate the API behind a login.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	// GoogleID is set when the account was created via Google sign-in.
	GoogleID string `json:"-"`

	// Refresh token state; only the hash is kept at rest.
	RefreshTokenHash      string     `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
}
