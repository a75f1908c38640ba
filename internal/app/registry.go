package app

import (
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Registry owns the set of live rooms, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	deps  Deps
	opts  Options
	log   logrus.FieldLogger
}

// NewRegistry creates an empty registry. Rooms it creates share deps and opts.
func NewRegistry(deps Deps, opts Options) *Registry {
	deps = deps.withDefaults()
	return &Registry{
		rooms: make(map[string]*Room),
		deps:  deps,
		opts:  opts,
		log:   deps.Logger.WithField("component", "registry"),
	}
}

// Join returns the room called name, creating it on first use. Joining counts as activity, so a
// room handed out here is never reaped by a ReapIdle that runs afterwards.
func (g *Registry) Join(name string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	if room, ok := g.rooms[name]; ok {
		room.touch(g.deps.Clock())
		return room
	}
	room := NewRoom(name, g.deps, g.opts)
	g.rooms[name] = room
	g.log.WithFields(logrus.Fields{"room": name, "room_id": room.ID}).Info("room created")
	return room
}

// Get returns the room called name if it exists.
func (g *Registry) Get(name string) (*Room, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	room, ok := g.rooms[name]
	return room, ok
}

// Remove closes and drops the room called name.
func (g *Registry) Remove(name string) bool {
	g.mu.Lock()
	room, ok := g.rooms[name]
	delete(g.rooms, name)
	g.mu.Unlock()
	if ok {
		room.Close()
	}
	return ok
}

// ReapIdle removes rooms with no activity since now minus idle and returns their names, sorted.
func (g *Registry) ReapIdle(now time.Time, idle time.Duration) []string {
	cutoff := now.Add(-idle)

	g.mu.Lock()
	var reaped []*Room
	var names []string
	for name, room := range g.rooms {
		if room.LastActivity().Before(cutoff) {
			reaped = append(reaped, room)
			names = append(names, name)
			delete(g.rooms, name)
		}
	}
	g.mu.Unlock()

	for _, room := range reaped {
		room.Close()
	}
	sort.Strings(names)
	if len(names) > 0 {
		g.log.WithField("rooms", names).Info("reaped idle rooms")
	}
	return names
}

// Len reports how many rooms are live.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Names lists live room names, sorted.
func (g *Registry) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.rooms))
	for name := range g.rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
