// Package models holds the wire types exchanged with the Openticket backend.
package models

// User is an account as reported by the backend. Values are never mutated
// in place; a changed user is a new value.
type User struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Status is the bootstrap snapshot returned by GET /status.
//
// User is set only for an authenticated session, and an authenticated
// session implies the setup is complete.
type Status struct {
	SetupComplete bool  `json:"setup"`
	User          *User `json:"user,omitempty"`
}

// Valid reports whether the snapshot respects User != nil => SetupComplete.
func (s Status) Valid() bool {
	return s.User == nil || s.SetupComplete
}

type SetupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Setup is the payload returned after the first admin is created.
type Setup struct {
	ID   int32  `json:"id"`
	Role string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Login struct {
	SessionToken string `json:"session_token"`
}
