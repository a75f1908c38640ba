package bot

import (
	"sort"
	"time"

	"tienlen/internal/bot/internal"
	"tienlen/internal/domain"
)

func init() {
	register(steady)
	register(cautious)
	register(aggressive)
	register(gambler)
}

// steady always answers with its cheapest play.
var steady = &Persona{
	Name:     "steady",
	MinDelay: 600 * time.Millisecond,
	MaxDelay: 1200 * time.Millisecond,
}

const (
	cautiousPassCost   = 25.0
	cautiousPassChance = 0.5
	cautiousBigHand    = 5
)

// breaksPairRun reports whether playing c splits one of the hand's runs of three or more pairs.
func breaksPairRun(hand []domain.Card, c Candidate) bool {
	before := internal.ProfileHand(hand).PairRuns
	if before == 0 {
		return false
	}
	return internal.ProfileHand(domain.RemoveCards(hand, c.Cards)).PairRuns < before
}

// cautious hoards its 2s and bombs, keeps pair runs whole and passes on expensive answers.
var cautious = &Persona{
	Name:     "cautious",
	MinDelay: 1200 * time.Millisecond,
	MaxDelay: 2500 * time.Millisecond,
	ShouldPass: func(t Turn) bool {
		cheapest, _ := t.Analysis.Cheapest()
		if usesPower(cheapest) && internal.MaxOpponentHand(t.Room, t.Seat) > cautiousBigHand {
			return true
		}
		return cheapest.Cost > cautiousPassCost && t.RNG.Float64() < cautiousPassChance
	},
	FilterPlays: func(cands []Candidate, t Turn) []Candidate {
		kept := filter(cands, func(c Candidate) bool { return !usesPower(c) })
		if len(kept) == 0 {
			return cands
		}
		if whole := filter(kept, func(c Candidate) bool { return !breaksPairRun(t.Hand(), c) }); len(whole) > 0 {
			return whole
		}
		return kept
	},
}

// aggressive never passes and sheds as many cards per play as it can.
var aggressive = &Persona{
	Name:     "aggressive",
	MinDelay: 300 * time.Millisecond,
	MaxDelay: 800 * time.Millisecond,
	FilterPlays: func(cands []Candidate, _ Turn) []Candidate {
		largest := 0
		for _, c := range cands {
			largest = max(largest, len(c.Cards))
		}
		return filter(cands, func(c Candidate) bool { return len(c.Cards) == largest })
	},
	SelectFromFiltered: func(cands []Candidate, _ Turn) Candidate {
		best := cands[0]
		for _, c := range cands[1:] {
			if len(c.Cards) > len(best.Cards) {
				best = c
			}
		}
		return best
	},
}

const (
	gamblerPassChance = 0.2
	gamblerSpread     = 3
)

// gambler passes on a coin flip and picks loosely among its cheapest plays.
var gambler = &Persona{
	Name:     "gambler",
	MinDelay: 400 * time.Millisecond,
	MaxDelay: 2000 * time.Millisecond,
	ShouldPass: func(t Turn) bool {
		return t.RNG.Float64() < gamblerPassChance
	},
	SelectFromFiltered: func(cands []Candidate, t Turn) Candidate {
		return cands[t.RNG.Intn(min(gamblerSpread, len(cands)))]
	},
}

// byCostThen orders a copy of cands by cost, breaking ties with less.
func byCostThen(cands []Candidate, less func(a, b Candidate) bool) []Candidate {
	out := append([]Candidate(nil), cands...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		return less(out[i], out[j])
	})
	return out
}
