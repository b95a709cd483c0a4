package auth

import "time"

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name" example:"Maria Silva"`
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"maria@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// AuthResponse is returned by both register and login: the user's public
// identity plus a signed bearer token.
type AuthResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ProfileResponse is returned by GET /api/auth/profile.
type ProfileResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
