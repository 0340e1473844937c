package model

import "time"

type User struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  *string    `json:"-"` // never JSON-encode
	DisplayName   string     `json:"display_name"`
	GoogleID      *string    `json:"-"`
	PictureURL    *string    `json:"picture_url,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
}

// CanAuthenticate reports whether the record keeps at least one way to log
// in: a local password hash or a linked Google identity.
func (u *User) CanAuthenticate() bool {
	if u.PasswordHash != nil && *u.PasswordHash != "" {
		return true
	}
	return u.GoogleID != nil && *u.GoogleID != ""
}
