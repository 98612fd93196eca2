// Package models defines the payload records exchanged with the FeedHub
// backend. They are consumed as opaque data; the client does not own or
// extend the server-side model.
package models

// User is the identity record returned by GET /users/me and POST /auth/register.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	IsVerified  bool   `json:"is_verified"`
}
