package model

import "time"

// User represents a user row in the database.
// PasswordHash never leaves the repository/service boundary; API responses
// use UserResponse instead.
type User struct {
	ID           string
	Email        string
	Username     string
	Alias        string
	FirstName    string
	LastName     string
	BirthDate    time.Time
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoginRequest represents a login request. Identifier may be an email,
// username or alias.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthResponse represents a successful login: a signed JWT plus the safe
// user projection.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data safe for API responses (no password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Alias     string    `json:"alias"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	BirthDate time.Time `json:"birthDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SafeUser returns the API-safe projection of a user.
func SafeUser(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Alias:     u.Alias,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthenticatedUser is the identity reconstructed from verified token claims.
// Claims are trusted as of issuance; identity edits after login are not
// reflected until the user re-authenticates.
type AuthenticatedUser struct {
	ID        string
	Username  string
	Alias     string
	FirstName string
	LastName  string
}
