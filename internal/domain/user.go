package domain

import "time"

// User is a console account; employees check in and out under it.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
