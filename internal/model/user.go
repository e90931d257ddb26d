package model

import "time"

// Roles a user account can hold. The bootstrap admin is the only account
// created with RoleAdmin; everyone signing up through the API gets RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the database.
type User struct {
	ID       int64
	Name     string
	Email    string
	Password string // bcrypt hash
	Role     string
}

// Session represents an issued login token. The role is a snapshot taken at
// login time and is not re-validated against the user afterwards.
type Session struct {
	Token     string
	UserID    int64
	Role      string
	CreatedAt time.Time
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a user login request. Role must match the
// account's role exactly.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginResponse represents a successful login with a session token.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
