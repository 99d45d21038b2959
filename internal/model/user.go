package model

import "time"

// UserAccount is one registered customer as stored in users.json.
// Accounts are created at registration and never updated or deleted.
// Emails are unique case-insensitively; the store normalizes on write
// and compares normalized on read.
type UserAccount struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	PassHash  string    `json:"passHash"` // bcrypt hash, never the plain password
	CreatedAt time.Time `json:"createdAt"`
}
