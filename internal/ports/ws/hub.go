package ws

import (
	"sync"

	"github.com/sirupsen/logrus"

	"tienlen/internal/domain"
	"tienlen/internal/ports"
)

// Hub fans room snapshots out to the connections watching each room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{} // room id -> watchers
	log   logrus.FieldLogger
}

func NewHub(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{rooms: make(map[string]map[*client]struct{}), log: log.WithField("component", "hub")}
}

// Publish is called with the room lock held, so delivery never blocks.
func (h *Hub) Publish(roomID string, snap domain.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		if !c.deliver(snapshotMessage(&snap, c.identity)) {
			h.log.WithFields(logrus.Fields{"room_id": roomID, "identity": c.identity}).Warn("dropped slow client")
		}
	}
}

func (h *Hub) subscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.rooms[c.roomID]
	if !ok {
		set = make(map[*client]struct{})
		h.rooms[c.roomID] = set
	}
	set[c] = struct{}{}
}

// unsubscribe removes c and reports whether another connection of the same identity still
// watches the room.
func (h *Hub) unsubscribe(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.rooms[c.roomID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.rooms, c.roomID)
	}
	for other := range set {
		if other.identity == c.identity {
			return true
		}
	}
	return false
}

// closeRooms disconnects every watcher of the named rooms.
func (h *Hub) closeRooms(names []string) {
	if len(names) == 0 {
		return
	}
	closing := make(map[string]bool, len(names))
	for _, n := range names {
		closing[n] = true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, set := range h.rooms {
		for c := range set {
			if closing[c.roomName] {
				c.close()
				delete(set, c)
			}
		}
		if len(set) == 0 {
			delete(h.rooms, id)
		}
	}
}

// Watchers counts connections on roomID.
func (h *Hub) Watchers(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

var _ ports.Publisher = (*Hub)(nil)
