package model

import "time"

// User mirrors the `users` table.  The password column stores the bcrypt
// hash, never the plaintext.  Rows are serialized as stored, so API
// responses carry the hash as well; this matches the contract the panel
// front-end was built against.
type User struct {
	ID        string    `json:"id"`         // users.id (UUIDv4)
	Username  string    `json:"username"`   // users.username (unique, case-insensitive)
	Email     string    `json:"email"`      // users.email (unique, case-insensitive, stored lowercased)
	Password  string    `json:"password"`   // users.password (bcrypt hash)
	CreatedAt time.Time `json:"created_at"` // users.created_at (UTC)
	UpdatedAt time.Time `json:"updated_at"` // users.updated_at (UTC)
}
