package bot

import (
	"sort"
	"time"

	"tienlen/internal/bot/internal"
	"tienlen/internal/domain"
)

// Turn is what a persona sees when asked to act.
type Turn struct {
	Analysis Analysis
	Room     *domain.Room
	Seat     int
	RNG      RNG
}

// Hand is the acting seat's current hand.
func (t Turn) Hand() []domain.Card {
	return t.Room.Hands[t.Seat]
}

// Persona is a named play style. Personas differ only in their three hooks; a nil hook keeps the
// default (never pass, keep every candidate, take the cheapest).
type Persona struct {
	Name     string
	MinDelay time.Duration
	MaxDelay time.Duration

	ShouldPass         func(t Turn) bool
	FilterPlays        func(cands []Candidate, t Turn) []Candidate
	SelectFromFiltered func(cands []Candidate, t Turn) Candidate
}

// Delay draws a think time between MinDelay and MaxDelay.
func (p *Persona) Delay(rng RNG) time.Duration {
	span := p.MaxDelay - p.MinDelay
	if span <= 0 {
		return p.MinDelay
	}
	return p.MinDelay + time.Duration(rng.Float64()*float64(span))
}

// Decide analyses seat's hand and runs the persona's pipeline over it.
func (p *Persona) Decide(r *domain.Room, seat int, rng RNG) Move {
	return p.decide(Turn{
		Analysis: internal.Analyze(r.Hands[seat], r, seat),
		Room:     r,
		Seat:     seat,
		RNG:      rng,
	})
}

func (p *Persona) decide(t Turn) Move {
	cheapest, ok := t.Analysis.Cheapest()
	if !ok {
		return Move{Pass: true}
	}
	if !t.Analysis.IsFreePlay && p.ShouldPass != nil && p.ShouldPass(t) {
		return Move{Pass: true}
	}

	cands := t.Analysis.ValidPlays
	if p.FilterPlays != nil {
		cands = p.FilterPlays(cands, t)
	}
	if len(cands) == 0 {
		return Move{Cards: cheapest.Cards}
	}
	choice := cands[0]
	if p.SelectFromFiltered != nil {
		choice = p.SelectFromFiltered(cands, t)
	}
	return Move{Cards: choice.Cards}
}

var registry = map[string]*Persona{}

// DefaultPersona plays when a seat names an unknown persona.
const DefaultPersona = "steady"

func register(p *Persona) {
	registry[p.Name] = p
}

// Lookup returns the persona called name.
func Lookup(name string) (*Persona, bool) {
	p, ok := registry[name]
	return p, ok
}

// MustLookup is Lookup falling back to DefaultPersona.
func MustLookup(name string) *Persona {
	if p, ok := registry[name]; ok {
		return p
	}
	return registry[DefaultPersona]
}

// Names lists every registered persona, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// filter keeps the candidates keep accepts, preserving cost order.
func filter(cands []Candidate, keep func(Candidate) bool) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// usesPower reports whether a play spends a "2" or a bomb.
func usesPower(c Candidate) bool {
	return c.Play.Category == domain.CategoryBomb || domain.CountTwos(c.Cards) > 0
}

func isStraightLike(c Candidate) bool {
	return c.Play.Category == domain.CategoryStraight || c.Play.Category == domain.CategoryStraightFlush
}
