package store

import (
	"sort"
	"sync"

	"github.com/jpalmerr/buildpulse/internal/health"
)

const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// Statuses are keyed by host name, with new statuses replacing previous
// values. Entries are never evicted. A deep copy is taken on write and on
// every read, so callers never share memory with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	statuses    map[string]health.HealthStatus
	subscribers map[chan health.HealthStatus]struct{}
	subMu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory [Store] implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		statuses:    make(map[string]health.HealthStatus),
		subscribers: make(map[chan health.HealthStatus]struct{}),
	}
}

// Update stores status and notifies all subscribers.
func (m *MemoryStore) Update(status health.HealthStatus) {
	stored := status.Clone()

	m.mu.Lock()
	m.statuses[stored.Name] = stored
	m.mu.Unlock()

	m.notifySubscribers(stored)
}

// Get returns a copy of the status stored for name.
func (m *MemoryStore) Get(name string) (health.HealthStatus, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, ok := m.statuses[name]
	if !ok {
		return health.HealthStatus{}, false
	}
	return status.Clone(), true
}

// GetAll returns a snapshot of all stored statuses sorted by name.
func (m *MemoryStore) GetAll() []health.HealthStatus {
	m.mu.RLock()
	results := make([]health.HealthStatus, 0, len(m.statuses))
	for _, status := range m.statuses {
		results = append(results, status.Clone())
	}
	m.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results
}

// Snapshot returns a copy of the full mapping taken under one read lock.
func (m *MemoryStore) Snapshot() map[string]health.HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := make(map[string]health.HealthStatus, len(m.statuses))
	for name, status := range m.statuses {
		snap[name] = status.Clone()
	}
	return snap
}

// Subscribe creates a new subscription and returns a channel for receiving updates.
//
// The returned channel has a buffer of 100 messages. If the buffer fills
// (slow consumer), new updates are dropped for this subscriber.
func (m *MemoryStore) Subscribe() <-chan health.HealthStatus {
	ch := make(chan health.HealthStatus, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (m *MemoryStore) Unsubscribe(ch <-chan health.HealthStatus) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the status to all active subscribers without
// blocking the writer.
func (m *MemoryStore) notifySubscribers(status health.HealthStatus) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- status.Clone():
		default:
			// subscriber is slow, drop the message
		}
	}
}
