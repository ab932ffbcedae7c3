package models

import (
	"github.com/taskvault/taskvault/internal/storage"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Profile holds per-user display preferences.
type Profile struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Avatar        string `json:"avatar,omitempty"`
}

// DefaultProfile returns the profile assigned at registration.
func DefaultProfile() Profile {
	return Profile{Theme: ThemeLight, Notifications: true}
}

type User struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	PasswordHash string           `json:"passwordHash"`
	CreatedAt    storage.DateTime `json:"createdAt"`
	Profile      Profile          `json:"profile"`
}
