package identity

import (
	"hash/fnv"
	"sync"

	"tienlen/internal/ports"
)

// Palette is the set of seat colors handed out to identities.
var Palette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#42d4f4", "#f032e6", "#bfef45",
}

// Directory is an in-memory ports.IdentityDirectory.
type Directory struct {
	mu       sync.RWMutex
	profiles map[string]ports.Profile
}

func NewDirectory() *Directory {
	return &Directory{profiles: make(map[string]ports.Profile)}
}

// Register records displayName for id and returns the stored profile.
// An identity keeps the color it was first given.
func (d *Directory) Register(id, displayName string) ports.Profile {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.profiles[id]
	if !ok {
		p.Color = ColorFor(id)
	}
	if displayName != "" {
		p.DisplayName = displayName
	}
	d.profiles[id] = p
	return p
}

func (d *Directory) Lookup(id string) (ports.Profile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.profiles[id]
	return p, ok
}

func (d *Directory) Forget(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.profiles, id)
}

// ColorFor picks a stable palette entry for id.
func ColorFor(id string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return Palette[h.Sum32()%uint32(len(Palette))]
}

var _ ports.IdentityDirectory = (*Directory)(nil)
