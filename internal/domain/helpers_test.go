package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool)
	for i, c := range deck {
		if seen[c] {
			t.Fatalf("duplicate card found: %s", c)
		}
		seen[c] = true
		if c.Value() != i+1 {
			t.Fatalf("%s value = %d, want %d", c, c.Value(), i+1)
		}
	}
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		id   string
		want Card
	}{
		{id: "3c", want: Card{Rank: 0, Suit: SuitClubs}},
		{id: "10d", want: Card{Rank: 7, Suit: SuitDiamonds}},
		{id: "qh", want: Card{Rank: 9, Suit: SuitHearts}},
		{id: "2S", want: Card{Rank: RankTwo, Suit: SuitSpades}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := ParseCard(tt.id)
			if err != nil {
				t.Fatalf("ParseCard(%q) error: %v", tt.id, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCard(%q) = %+v, want %+v", tt.id, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "1c", "3x", "11h", "c"} {
		if _, err := ParseCard(bad); !errors.Is(err, ErrUnknownCard) {
			t.Errorf("ParseCard(%q) err = %v, want ErrUnknownCard", bad, err)
		}
	}
}

func TestCardStringRoundTrip(t *testing.T) {
	for _, c := range NewDeck() {
		got, err := ParseCard(c.String())
		if err != nil || got != c {
			t.Fatalf("ParseCard(%q) = %v, %v", c.String(), got, err)
		}
	}
}

func TestParseCardsRejectsRepeats(t *testing.T) {
	if _, err := ParseCards([]string{"3c", "4d", "3c"}); !errors.Is(err, ErrUnknownCard) {
		t.Fatalf("err = %v, want ErrUnknownCard", err)
	}
}

func TestRemoveCards(t *testing.T) {
	hand := MustParseCards("3s", "4h", "5d", "6s")
	toRemove := MustParseCards("4h", "6s")

	updated := RemoveCards(hand, toRemove)
	want := MustParseCards("3s", "5d")
	if !reflect.DeepEqual(updated, want) {
		t.Fatalf("RemoveCards() = %v, want %v", updated, want)
	}
	if len(hand) != 4 {
		t.Fatalf("original hand modified: %v", hand)
	}
}

func TestContainsAll(t *testing.T) {
	hand := MustParseCards("3c", "4d", "5h")
	if !ContainsAll(hand, MustParseCards("5h", "3c")) {
		t.Fatal("expected subset to be contained")
	}
	if ContainsAll(hand, MustParseCards("6h")) {
		t.Fatal("unexpected containment")
	}
	c := MustParseCards("3c")[0]
	if ContainsAll(hand, []Card{c, c}) {
		t.Fatal("multiplicity must be respected")
	}
}

func TestLowestCardAndSorting(t *testing.T) {
	cards := MustParseCards("Kd", "3h", "2c", "3d")
	lowest, ok := LowestCard(cards)
	if !ok || lowest.String() != "3d" {
		t.Fatalf("LowestCard = %v, %v", lowest, ok)
	}
	if _, ok := LowestCard(nil); ok {
		t.Fatal("LowestCard(nil) should report !ok")
	}

	desc := SortedDesc(cards)
	if got := CardIDs(desc); !reflect.DeepEqual(got, []string{"2c", "Kd", "3h", "3d"}) {
		t.Fatalf("SortedDesc = %v", got)
	}
	if CountTwos(cards) != 1 {
		t.Fatalf("CountTwos = %d, want 1", CountTwos(cards))
	}
}

func TestRanks(t *testing.T) {
	r := NewRoom("t")
	r.StartingPlayers = 4
	r.Ranks = [SeatCount]int{0, 1, 0, 4}
	if got := r.NextFinishRank(); got != 2 {
		t.Fatalf("NextFinishRank = %d, want 2", got)
	}
	if got := r.LastPlaceRank(); got != 3 {
		t.Fatalf("LastPlaceRank = %d, want 3", got)
	}
}

func TestRecordFinish(t *testing.T) {
	s := NewPlayerStats()
	s.RecordFinish(1, 4)
	s.RecordFinish(3, 3)
	if s.Points != 4+1 || s.Wins != 1 || s.Games != 2 || s.PlayerGames != 7 {
		t.Fatalf("stats = %+v", s)
	}
	if s.Placements[1] != 1 || s.Placements[3] != 1 {
		t.Fatalf("placements = %v", s.Placements)
	}
}
