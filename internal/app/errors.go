package app

import (
	"errors"
	"fmt"

	"tienlen/internal/domain"
)

var (
	ErrNotSeated      = errors.New("identity is not seated")
	ErrSeatTaken      = errors.New("seat is taken")
	ErrSeatOutOfRange = errors.New("seat out of range")
	ErrNotSeating     = errors.New("room not in seating stage")
	ErrNotActive      = errors.New("room not in active stage")
	ErrTooFewPlayers  = errors.New("not enough players to start")
	ErrInvalidStage   = errors.New("unsupported stage transition")
	ErrRoomErrored    = errors.New("room is in an errored state")
	ErrUnknownCard    = domain.ErrUnknownCard
)

// ErrStateInvariant marks corrupted room state. A room that hits it stops accepting actions.
var ErrStateInvariant = errors.New("state invariant violated")

// ErrNoEligibleNextPlayer is returned when turn advancement finds nobody to act.
var ErrNoEligibleNextPlayer = fmt.Errorf("%w: no eligible next player", ErrStateInvariant)

// ErrorCode maps a rejected action onto a stable client-facing code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownCard):
		return "unknown_card"
	case errors.Is(err, domain.ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, domain.ErrInvalidPlay):
		return "invalid_play"
	case errors.Is(err, ErrRoomErrored), errors.Is(err, ErrStateInvariant):
		return "room_errored"
	case errors.Is(err, ErrNotSeated), errors.Is(err, ErrSeatTaken), errors.Is(err, ErrSeatOutOfRange):
		return "seat"
	case errors.Is(err, ErrNotSeating), errors.Is(err, ErrNotActive), errors.Is(err, ErrInvalidStage),
		errors.Is(err, ErrTooFewPlayers):
		return "stage"
	default:
		return "rejected"
	}
}
