package domain

import (
	"errors"
	"testing"
)

func mustPlay(ids ...string) Play {
	return Classify(MustParseCards(ids...))
}

func TestBeats(t *testing.T) {
	tests := []struct {
		name      string
		last      Play
		candidate Play
		expected  bool
	}{
		{name: "anything on free play", last: FreePlay, candidate: mustPlay("3c"), expected: true},
		{name: "nothing on free play", last: FreePlay, candidate: NoPlay, expected: false},
		{name: "higher single", last: mustPlay("3c"), candidate: mustPlay("3d"), expected: true},
		{name: "lower single", last: mustPlay("5h"), candidate: mustPlay("4s"), expected: false},
		{name: "equal rank never beats", last: mustPlay("5h"), candidate: mustPlay("5h"), expected: false},
		{name: "higher pair by suit", last: mustPlay("6c", "6d"), candidate: mustPlay("6h", "6s"), expected: true},
		{name: "pair does not beat single", last: mustPlay("3c"), candidate: mustPlay("Ac", "Ad"), expected: false},
		{name: "straight needs same length", last: mustPlay("3c", "4d", "5h"), candidate: mustPlay("8c", "9d", "10h", "Jc"), expected: false},
		{name: "higher straight", last: mustPlay("3c", "4d", "5h"), candidate: mustPlay("4c", "5d", "6h"), expected: true},
		{name: "quad bomb beats single two", last: mustPlay("2s"), candidate: mustPlay("3c", "3d", "3h", "3s"), expected: true},
		{name: "pair run beats pair of twos", last: mustPlay("2c", "2s"), candidate: mustPlay("3c", "3d", "4c", "4d", "5c", "5d"), expected: true},
		{name: "bomb beats bigger bomb", last: mustPlay("Ac", "Ad", "Ah", "As"), candidate: mustPlay("3c", "3d", "4c", "4d", "5c", "5d"), expected: true},
		{name: "straight flush beats flush", last: mustPlay("3h", "5h", "7h", "9h", "Jh"), candidate: mustPlay("3c", "4c", "5c", "6c", "7c"), expected: true},
		{name: "straight flush beats same length straight", last: mustPlay("3c", "4d", "5h", "6s", "7d"), candidate: mustPlay("3d", "4d", "5d", "6d", "7d"), expected: true},
		{name: "straight flush vs longer straight", last: mustPlay("3c", "4d", "5h", "6s", "7d", "8c"), candidate: mustPlay("3d", "4d", "5d", "6d", "7d"), expected: false},
		{name: "straight does not beat straight flush", last: mustPlay("3d", "4d", "5d", "6d", "7d"), candidate: mustPlay("8c", "9d", "10h", "Js", "Qd"), expected: false},
		{name: "flush does not beat full house", last: mustPlay("3c", "3d", "3h", "4c", "4d"), candidate: mustPlay("3h", "5h", "7h", "9h", "Jh"), expected: false},
		{name: "higher full house", last: mustPlay("3c", "3d", "3h", "Ac", "Ad"), candidate: mustPlay("4c", "4d", "4h", "5c", "5d"), expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Beats(tt.candidate, tt.last); got != tt.expected {
				t.Errorf("Beats(%v, %v) = %v, want %v", tt.candidate, tt.last, got, tt.expected)
			}
		})
	}
}

func TestLastPlayScansBackward(t *testing.T) {
	r := NewRoom("t")
	if got := r.LastPlay(0); got != FreePlay {
		t.Fatalf("empty room LastPlay = %v, want FreePlay", got)
	}

	pair := mustPlay("9c", "9d")
	r.LastBySeat[1] = PlayEntry(pair)
	r.LastBySeat[2] = PassEntry
	r.LastBySeat[3] = PassEntry

	if got := r.LastPlay(0); got != pair {
		t.Fatalf("seat 0 LastPlay = %v, want %v", got, pair)
	}
	if got := r.LastPlay(2); got != pair {
		t.Fatalf("seat 2 LastPlay = %v, want %v", got, pair)
	}
	// The holder itself faces a free play once the scan comes back around.
	if got := r.LastPlay(1); got != FreePlay {
		t.Fatalf("holder LastPlay = %v, want FreePlay", got)
	}
	if r.HolderSeat() != 1 {
		t.Fatalf("HolderSeat = %d, want 1", r.HolderSeat())
	}
	if got := r.LastPlay(9); got != FreePlay {
		t.Fatalf("out-of-range seat LastPlay = %v, want FreePlay", got)
	}
}

func activeRoom(hands map[int][]string, turn int) *Room {
	r := NewRoom("t")
	r.Stage = StageActive
	for seat, ids := range hands {
		r.Seats[seat] = HumanOccupant(string(rune('a'+seat)), "")
		r.Hands[seat] = SortedDesc(MustParseCards(ids...))
		r.StartingPlayers++
	}
	r.TurnIndex = turn
	return r
}

func TestValidatePlay(t *testing.T) {
	t.Run("wrong turn", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c"}, 2: {"4c"}}, 0)
		_, err := ValidatePlay(r, 2, MustParseCards("4c"))
		if !errors.Is(err, ErrNotYourTurn) || !errors.Is(err, ErrInvalidPlay) {
			t.Fatalf("err = %v, want ErrNotYourTurn", err)
		}
	})

	t.Run("not owned", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c"}, 2: {"4c"}}, 0)
		_, err := ValidatePlay(r, 0, MustParseCards("4c"))
		if !errors.Is(err, ErrCardsNotOwned) {
			t.Fatalf("err = %v, want ErrCardsNotOwned", err)
		}
	})

	t.Run("initial play must include lowest", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c", "9d"}, 2: {"4c"}}, 0)
		r.InitialPlayPending = true
		r.LowestDealtCard = MustParseCards("3c")[0]
		if _, err := ValidatePlay(r, 0, MustParseCards("9d")); !errors.Is(err, ErrMissingLowestCard) {
			t.Fatalf("err = %v, want ErrMissingLowestCard", err)
		}
		got, err := ValidatePlay(r, 0, MustParseCards("3c"))
		if err != nil || got.Category != CategorySingles {
			t.Fatalf("ValidatePlay = %v, %v", got, err)
		}
	})

	t.Run("unrecognized", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c", "9d"}, 2: {"4c"}}, 0)
		if _, err := ValidatePlay(r, 0, MustParseCards("3c", "9d")); !errors.Is(err, ErrUnrecognizedPlay) {
			t.Fatalf("err = %v, want ErrUnrecognizedPlay", err)
		}
	})

	t.Run("does not beat", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c", "9d"}, 2: {"4c"}}, 2)
		r.LastBySeat[0] = PlayEntry(mustPlay("5h"))
		if _, err := ValidatePlay(r, 2, MustParseCards("4c")); !errors.Is(err, ErrDoesNotBeat) {
			t.Fatalf("err = %v, want ErrDoesNotBeat", err)
		}
	})

	t.Run("not active", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c"}, 2: {"4c"}}, 0)
		r.Stage = StageSeating
		if _, err := ValidatePlay(r, 0, MustParseCards("3c")); !errors.Is(err, ErrInvalidPlay) {
			t.Fatalf("err = %v, want ErrInvalidPlay", err)
		}
	})

	t.Run("validation leaves room untouched", func(t *testing.T) {
		r := activeRoom(map[int][]string{0: {"3c", "9d"}, 2: {"4c"}}, 0)
		if _, err := ValidatePlay(r, 0, MustParseCards("9d")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(r.Hands[0]) != 2 || r.Board != nil {
			t.Fatalf("room mutated: hand=%v board=%v", r.Hands[0], r.Board)
		}
	})
}
