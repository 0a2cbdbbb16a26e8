package domain

import "time"

type ID string

type User struct {
	ID           ID
	Username     string
	Email        string
	PasswordHash string
	Image        string
	CreatedAt    time.Time
}

// Profile is the mutable slice of a user record; ID and PasswordHash
// never travel through account updates.
type Profile struct {
	Username string
	Email    string
	Image    string
}
