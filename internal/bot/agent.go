package bot

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tienlen/internal/domain"
	"tienlen/internal/ports"
)

// Director seats and drives AI players. It implements ports.AIPlayer.
type Director struct {
	rng  RNG
	log  logrus.FieldLogger
	pool []BotIdentity

	mu       sync.Mutex
	recruits map[string]int
}

// NewDirector creates a director whose random choices come from seed.
func NewDirector(seed int64, log logrus.FieldLogger) *Director {
	return NewDirectorWithRNG(newLockedRand(seed), log)
}

// NewDirectorWithRNG uses rng for every persona decision. rng must be safe for concurrent use if
// more than one room shares the director.
func NewDirectorWithRNG(rng RNG, log logrus.FieldLogger) *Director {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Director{
		rng:      rng,
		log:      log.WithField("component", "bot"),
		pool:     DefaultIdentities,
		recruits: make(map[string]int),
	}
}

// WithIdentities replaces the display-name pool.
func (d *Director) WithIdentities(pool []BotIdentity) *Director {
	if len(pool) > 0 {
		d.pool = pool
	}
	return d
}

// Recruit returns a fresh AI occupant playing persona. Unknown names fall back to DefaultPersona.
func (d *Director) Recruit(persona string) domain.Occupant {
	p := MustLookup(persona)

	d.mu.Lock()
	n := d.recruits[p.Name]
	d.recruits[p.Name]++
	d.mu.Unlock()

	id := identityFor(d.pool, p.Name, n)
	return domain.AIOccupant("ai-"+uuid.NewString(), id.DisplayName, p.Name)
}

func (d *Director) Delay(persona string) time.Duration {
	return MustLookup(persona).Delay(d.rng)
}

// Decide picks the move for the AI occupying seat.
func (d *Director) Decide(r *domain.Room, seat int) ports.AIMove {
	p := MustLookup(r.Seats[seat].Persona)
	move := p.Decide(r, seat, d.rng)
	d.log.WithFields(logrus.Fields{
		"room":    r.Name,
		"seat":    seat,
		"persona": p.Name,
		"pass":    move.Pass,
		"cards":   domain.CardIDs(move.Cards),
	}).Debug("ai move")
	return move
}

var _ ports.AIPlayer = (*Director)(nil)
