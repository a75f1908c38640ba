package ports

import "tienlen/internal/domain"

// Publisher broadcasts room snapshots after every state change.
// Implementations must not call back into the room synchronously.
type Publisher interface {
	Publish(roomID string, snap domain.Snapshot)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(roomID string, snap domain.Snapshot)

func (f PublisherFunc) Publish(roomID string, snap domain.Snapshot) { f(roomID, snap) }
