package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPlay is the root of every rejected play. Reasons wrap it.
var ErrInvalidPlay = errors.New("invalid play")

var (
	ErrNotYourTurn        = fmt.Errorf("%w: not your turn", ErrInvalidPlay)
	ErrCardsNotOwned      = fmt.Errorf("%w: cards not in hand", ErrInvalidPlay)
	ErrMissingLowestCard  = fmt.Errorf("%w: first play must include the lowest dealt card", ErrInvalidPlay)
	ErrUnrecognizedPlay   = fmt.Errorf("%w: cards do not form a recognized combination", ErrInvalidPlay)
	ErrDoesNotBeat        = fmt.Errorf("%w: play does not beat the board", ErrInvalidPlay)
	ErrCannotPassFreePlay = fmt.Errorf("%w: cannot pass on a free play", ErrInvalidPlay)
)
