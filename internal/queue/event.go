// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// AccountRegisteredEvent is published after a successful registration. It
// carries enough information for downstream consumers (welcome mail,
// analytics) without querying the primary database.
type AccountRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	EmployeeID   uint64 `json:"employee_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	Surname      string `json:"surname"`
	Role         string `json:"role"`
	RegisteredAt string `json:"registered_at"`
}
