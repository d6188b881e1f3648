package models

import "time"

// Notification is a toast queued for one admin and drained on the next poll.
type Notification struct {
	ID        string    `json:"id"`
	Level     string    `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Resource  string    `json:"resource,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListInvalidation is broadcast after a resource changed so other replicas drop their list caches.
type ListInvalidation struct {
	Resource  string    `json:"resource"`
	EntityIDs []string  `json:"entityIds,omitempty"`
	RequestID string    `json:"requestId,omitempty"`
	At        time.Time `json:"at"`
}
