package bot

import (
	"sort"
	"time"

	"tienlen/internal/bot/internal"
	"tienlen/internal/domain"
)

func init() {
	register(sequencer)
	register(adaptive)
	register(blocker)
	register(counter)
}

const sequencerPassCost = 15.0

// breaksRun reports whether playing c shortens the hand's longest straight. Playing the run as a
// straight does not count.
func breaksRun(hand []domain.Card, c Candidate) bool {
	if isStraightLike(c) {
		return false
	}
	before := internal.ProfileHand(hand).MaxStraightLen
	if before < 3 {
		return false
	}
	return internal.ProfileHand(domain.RemoveCards(hand, c.Cards)).MaxStraightLen < before
}

// sequencer protects its longest run and prefers to play straights.
var sequencer = &Persona{
	Name:     "sequencer",
	MinDelay: 800 * time.Millisecond,
	MaxDelay: 1600 * time.Millisecond,
	ShouldPass: func(t Turn) bool {
		cheapest, _ := t.Analysis.Cheapest()
		if cheapest.Cost <= sequencerPassCost {
			return false
		}
		for _, c := range t.Analysis.ValidPlays {
			if !breaksRun(t.Hand(), c) {
				return false
			}
		}
		return true
	},
	FilterPlays: func(cands []Candidate, t Turn) []Candidate {
		return filter(cands, func(c Candidate) bool { return !breaksRun(t.Hand(), c) })
	},
	SelectFromFiltered: func(cands []Candidate, _ Turn) Candidate {
		for _, c := range cands {
			if isStraightLike(c) {
				return c
			}
		}
		return cands[0]
	},
}

const (
	adaptiveOpeningPassCost = 30.0
	adaptiveMidPassCost     = 40.0
	adaptiveOpeningKeepCost = 20.0
)

// adaptivePhase treats an imminent finish by an opponent like the end phase.
func adaptivePhase(t Turn) internal.GamePhase {
	if internal.DetectThreat(t.Room, t.Seat, internal.ThreatThreshold) {
		return internal.PhaseEnd
	}
	return internal.DetectPhase(t.Room)
}

// adaptive hoards early and sheds hard once the game nears its end.
var adaptive = &Persona{
	Name:     "adaptive",
	MinDelay: 700 * time.Millisecond,
	MaxDelay: 1500 * time.Millisecond,
	ShouldPass: func(t Turn) bool {
		cheapest, _ := t.Analysis.Cheapest()
		switch adaptivePhase(t) {
		case internal.PhaseOpening:
			return cheapest.Cost > adaptiveOpeningPassCost
		case internal.PhaseMid:
			return cheapest.Cost > adaptiveMidPassCost
		default:
			return false
		}
	},
	FilterPlays: func(cands []Candidate, t Turn) []Candidate {
		switch adaptivePhase(t) {
		case internal.PhaseOpening:
			return filter(cands, func(c Candidate) bool {
				cat := c.Play.Category
				return (cat == domain.CategorySingles || cat == domain.CategoryPair) && c.Cost <= adaptiveOpeningKeepCost
			})
		case internal.PhaseEnd:
			most := 0
			for _, c := range cands {
				most = max(most, len(c.Cards))
			}
			return filter(cands, func(c Candidate) bool { return len(c.Cards) == most })
		default:
			return cands
		}
	},
	SelectFromFiltered: func(cands []Candidate, t Turn) Candidate {
		weight := map[internal.GamePhase]float64{
			internal.PhaseOpening: 0,
			internal.PhaseMid:     2,
			internal.PhaseEnd:     6,
		}[adaptivePhase(t)]
		best := cands[0]
		bestScore := best.Cost - weight*float64(len(best.Cards))
		for _, c := range cands[1:] {
			if score := c.Cost - weight*float64(len(c.Cards)); score < bestScore {
				best, bestScore = c, score
			}
		}
		return best
	},
}

// blocker spends its strongest answers to stop an opponent who is about to go out.
var blocker = &Persona{
	Name:     "blocker",
	MinDelay: 600 * time.Millisecond,
	MaxDelay: 1400 * time.Millisecond,
	ShouldPass: func(t Turn) bool {
		if internal.DetectThreat(t.Room, t.Seat, internal.ThreatThreshold) {
			return false
		}
		cheapest, _ := t.Analysis.Cheapest()
		return domain.CountTwos(cheapest.Cards) > 0
	},
	FilterPlays: func(cands []Candidate, t Turn) []Candidate {
		if !internal.DetectThreat(t.Room, t.Seat, internal.ThreatThreshold) {
			return cands
		}
		byRank := append([]Candidate(nil), cands...)
		sort.SliceStable(byRank, func(i, j int) bool { return byRank[i].Play.Rank > byRank[j].Play.Rank })
		return byRank[:max(1, len(byRank)/3)]
	},
	SelectFromFiltered: func(cands []Candidate, t Turn) Candidate {
		if !internal.DetectThreat(t.Room, t.Seat, internal.ThreatThreshold) {
			return cands[0]
		}
		best := cands[0]
		for _, c := range cands[1:] {
			if c.Play.Rank > best.Play.Rank || (c.Play.Rank == best.Play.Rank && c.Cost < best.Cost) {
				best = c
			}
		}
		return best
	},
}

const counterPassCost = 20.0

// counter tracks which cards are gone and leans on plays nobody can answer.
var counter = &Persona{
	Name:     "counter",
	MinDelay: 900 * time.Millisecond,
	MaxDelay: 1800 * time.Millisecond,
	ShouldPass: func(t Turn) bool {
		cheapest, _ := t.Analysis.Cheapest()
		return cheapest.Cost > counterPassCost && !internal.CountRoom(t.Room, t.Seat).IsBoss(cheapest)
	},
	FilterPlays: func(cands []Candidate, t Turn) []Candidate {
		if !internal.DetectThreat(t.Room, t.Seat, internal.ThreatThreshold) {
			return cands
		}
		stats := internal.CountRoom(t.Room, t.Seat)
		bosses := filter(cands, stats.IsBoss)
		if len(bosses) == 0 {
			return cands
		}
		return bosses
	},
	SelectFromFiltered: func(cands []Candidate, t Turn) Candidate {
		stats := internal.CountRoom(t.Room, t.Seat)
		return byCostThen(cands, func(a, b Candidate) bool {
			return stats.IsBoss(a) && !stats.IsBoss(b)
		})[0]
	},
}
