package internal

import (
	"sort"

	"tienlen/internal/domain"
)

// Candidate is one legal play together with its spend cost.
type Candidate struct {
	Cards []domain.Card
	Play  domain.Play
	Cost  float64
}

// Analysis is everything a persona needs to know about its options this turn.
type Analysis struct {
	Seat              int
	ValidPlays        []Candidate // ascending by cost
	IsFreePlay        bool
	MustIncludeLowest bool
	LastPlay          domain.Play
	HandSize          int
}

// Cheapest returns the lowest-cost candidate.
func (a Analysis) Cheapest() (Candidate, bool) {
	if len(a.ValidPlays) == 0 {
		return Candidate{}, false
	}
	return a.ValidPlays[0], true
}

// Analyze lists every play seat can legally make from hand in the current room state.
func Analyze(hand []domain.Card, r *domain.Room, seat int) Analysis {
	a := Analysis{
		Seat:              seat,
		IsFreePlay:        r.IsFreePlay(seat),
		MustIncludeLowest: r.InitialPlayPending,
		LastPlay:          r.LastPlay(seat),
		HandSize:          len(hand),
	}

	for _, c := range GenerateCandidates(hand) {
		switch {
		case a.MustIncludeLowest:
			if !domain.ContainsCard(c.Cards, r.LowestDealtCard) {
				continue
			}
		case a.IsFreePlay:
		default:
			if !domain.Beats(c.Play, a.LastPlay) {
				continue
			}
		}
		c.Cost = EvaluatePlay(c.Cards, c.Play)
		a.ValidPlays = append(a.ValidPlays, c)
	}

	sort.SliceStable(a.ValidPlays, func(i, j int) bool {
		return a.ValidPlays[i].Cost < a.ValidPlays[j].Cost
	})
	return a
}
