package nakama

import (
	"sync"

	"tienlen/internal/domain"
	"tienlen/internal/ports"
)

// matchPublisher queues room snapshots until the match loop can hand them to the dispatcher.
type matchPublisher struct {
	mu      sync.Mutex
	pending []domain.Snapshot
}

func (p *matchPublisher) Publish(_ string, snap domain.Snapshot) {
	p.mu.Lock()
	p.pending = append(p.pending, snap)
	p.mu.Unlock()
}

// drain returns queued snapshots in publish order and empties the queue.
func (p *matchPublisher) drain() []domain.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.pending
	p.pending = nil
	return out
}

var _ ports.Publisher = (*matchPublisher)(nil)
