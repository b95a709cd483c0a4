// Package auth handles user registration, login, bearer-token issuance and
// verification, and the middleware that resolves the calling user on
// protected routes.
package auth

import "time"

// User represents an account holder. The stored bcrypt hash never leaves
// the package: the json:"-" tag keeps it out of any response body.
type User struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
