package models

import "time"

// User mirrors the users table.
type User struct {
	UserID                string     `json:"userID"`
	Username              string     `json:"username"`
	Name                  string     `json:"name"`
	PasswordHash          string     `json:"-"`
	GoogleID              string     `json:"-"`
	RefreshTokenHash      string     `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreateDate            time.Time  `json:"createDate"`
	UpdateDate            time.Time  `json:"updateDate"`
}
