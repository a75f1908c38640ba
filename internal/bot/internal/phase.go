package internal

import "tienlen/internal/domain"

// GamePhase describes the current strategic stage of a match.
type GamePhase int

const (
	// PhaseOpening indicates all active players still hold 13 cards.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates no one has reached the endgame threshold yet.
	PhaseMid
	// PhaseEnd indicates at least one player finished or any active player has <= 5 cards.
	PhaseEnd
)

// EndgameHandSize is the hand size at which the end phase begins.
const EndgameHandSize = 5

// ThreatThreshold is the hand size at or below which an opponent is about to go out.
const ThreatThreshold = 3

func (p GamePhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEnd:
		return "end"
	default:
		return "mid"
	}
}

// DetectPhase infers the phase from the seated players' hand sizes and finish state.
func DetectPhase(r *domain.Room) GamePhase {
	if r == nil {
		return PhaseMid
	}

	active := 0
	opening := true
	end := false
	for seat := range r.Seats {
		if !r.IsSeated(seat) {
			continue
		}
		if r.IsRanked(seat) {
			end = true
			continue
		}
		n := len(r.Hands[seat])
		active++
		if n != domain.HandSize {
			opening = false
		}
		if n <= EndgameHandSize {
			end = true
		}
	}

	switch {
	case active == 0:
		return PhaseEnd
	case opening && !end:
		return PhaseOpening
	case end:
		return PhaseEnd
	default:
		return PhaseMid
	}
}

// DetectThreat reports whether any opponent still in play holds threshold cards or fewer.
func DetectThreat(r *domain.Room, seat int, threshold int) bool {
	if threshold <= 0 || r == nil {
		return false
	}
	for other := range r.Seats {
		if other == seat || !r.InPlay(other) {
			continue
		}
		if n := len(r.Hands[other]); n > 0 && n <= threshold {
			return true
		}
	}
	return false
}

// MaxOpponentHand is the largest hand held by any opponent still in play.
func MaxOpponentHand(r *domain.Room, seat int) int {
	best := 0
	for other := range r.Seats {
		if other != seat && r.InPlay(other) && len(r.Hands[other]) > best {
			best = len(r.Hands[other])
		}
	}
	return best
}
