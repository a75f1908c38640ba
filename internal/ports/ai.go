package ports

import (
	"time"

	"tienlen/internal/domain"
)

// AIMove is a computer player's decision for its turn.
type AIMove struct {
	Pass  bool
	Cards []domain.Card
}

// AIPlayer drives computer-controlled seats.
type AIPlayer interface {
	// Recruit creates a fresh AI occupant for persona. Unknown personas fall back to a default.
	Recruit(persona string) domain.Occupant
	// Delay returns how long persona waits before acting.
	Delay(persona string) time.Duration
	// Decide picks a move for seat. r must be treated as read-only.
	Decide(r *domain.Room, seat int) AIMove
}
