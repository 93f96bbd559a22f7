package domain

import "time"

// Task represents a user-owned unit of work as served by the remote API.
// ID and CreatedDate are server-assigned and immutable; LastUpdated is
// bumped by the server on every mutation it accepts.
type Task struct {
	ID          string    `json:"ID"`
	Name        string    `json:"name"`
	Details     string    `json:"details"`
	Star        bool      `json:"star"`
	CreatedDate time.Time `json:"createdDate"`
	LastUpdated time.Time `json:"lastUpdated"`
}
