package domain

import "fmt"

// ValidatePlay runs the turn, ownership, initial-play and board-beat checks for seat proposing
// cards and returns the classified play. The room is not modified.
func ValidatePlay(r *Room, seat int, cards []Card) (Play, error) {
	if r.Stage != StageActive || seat != r.TurnIndex {
		return NoPlay, ErrNotYourTurn
	}
	if len(cards) == 0 || !ContainsAll(r.Hands[seat], cards) {
		return NoPlay, ErrCardsNotOwned
	}
	if r.InitialPlayPending && !ContainsCard(cards, r.LowestDealtCard) {
		return NoPlay, fmt.Errorf("%w (%s)", ErrMissingLowestCard, r.LowestDealtCard)
	}

	play := Classify(cards)
	if play.IsNone() {
		return NoPlay, ErrUnrecognizedPlay
	}
	last := r.LastPlay(seat)
	if !Beats(play, last) {
		return NoPlay, fmt.Errorf("%w: %s over %s", ErrDoesNotBeat, play, last)
	}
	return play, nil
}
