// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// UserRegisteredName is the durable queue carrying registration events.
const UserRegisteredName = "user.registered"

// UserRegisteredEvent is published when a user completes registration.  It
// carries enough information for the welcome-mail consumer to act without
// querying the primary database.
type UserRegisteredEvent struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}
