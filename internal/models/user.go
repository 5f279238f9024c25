package models

import "time"

// User is an account on this device. Email is the identity key and is
// matched exactly (case-sensitive), matching the lookup the rest of the
// code performs.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Theme is the persisted UI color preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme name.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}
