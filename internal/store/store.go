package store

import "github.com/jpalmerr/buildpulse/internal/health"

// Store defines the interface for storing and subscribing to status updates.
//
// Store implementations must be safe for concurrent access.
type Store interface {
	// Update replaces the status stored for status.Name and notifies all
	// subscribers. Entries are never merged field by field.
	Update(status health.HealthStatus)

	// Get returns the status stored for name.
	Get(name string) (health.HealthStatus, bool)

	// GetAll returns all currently stored statuses sorted by name.
	// The returned slice is a snapshot; modifications do not affect the store.
	GetAll() []health.HealthStatus

	// Snapshot returns a copy of the full mapping from host name to status.
	Snapshot() map[string]health.HealthStatus

	// Subscribe returns a channel that receives status updates.
	// The returned channel has a buffer; slow consumers may miss updates.
	// Caller must call Unsubscribe when done to prevent resource leaks.
	Subscribe() <-chan health.HealthStatus

	// Unsubscribe removes a subscription and closes the channel.
	// Safe to call with a channel that was already unsubscribed.
	Unsubscribe(ch <-chan health.HealthStatus)
}
