package domain

import (
	"math/rand"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		cards    []string
		category Category
		rank     int
	}{
		{name: "lowest single", cards: []string{"3c"}, category: CategorySingles, rank: 1},
		{name: "highest single", cards: []string{"2s"}, category: CategorySingles, rank: 52},
		{name: "pair", cards: []string{"3c", "3d"}, category: CategoryPair, rank: 2},
		{name: "mismatched pair", cards: []string{"3c", "4d"}, category: CategoryNone},
		{name: "triple", cards: []string{"9c", "9h", "9s"}, category: CategoryTriple, rank: 28},
		{name: "three straight", cards: []string{"3c", "4d", "5h"}, category: CategoryStraight, rank: 11},
		{name: "three with gap", cards: []string{"3c", "4d", "6h"}, category: CategoryNone},
		{name: "quad bomb", cards: []string{"7c", "7d", "7h", "7s"}, category: CategoryBomb, rank: 320},
		{name: "four straight", cards: []string{"8c", "9d", "10h", "Js"}, category: CategoryStraight, rank: 36},
		{name: "two pair", cards: []string{"3c", "3d", "4c", "4d"}, category: CategoryTwoPair, rank: 6},
		{name: "three and one", cards: []string{"3c", "3d", "3h", "4d"}, category: CategoryNone},
		{name: "straight flush", cards: []string{"3c", "4c", "5c", "6c", "7c"}, category: CategoryStraightFlush, rank: 117},
		{name: "flush", cards: []string{"3h", "5h", "7h", "9h", "Jh"}, category: CategoryFlush, rank: 35},
		{name: "five straight", cards: []string{"3c", "4d", "5c", "6c", "7c"}, category: CategoryStraight, rank: 17},
		{name: "full house high triple", cards: []string{"Kc", "Kd", "Kh", "4c", "4d"}, category: CategoryFullHouse, rank: 43},
		{name: "full house low triple", cards: []string{"3c", "3d", "3h", "Ac", "Ad"}, category: CategoryFullHouse, rank: 3},
		{name: "five junk", cards: []string{"3c", "5d", "7c", "9c", "Jc"}, category: CategoryNone},
		{name: "pair run bomb", cards: []string{"3c", "3d", "4c", "4d", "5c", "5d"}, category: CategoryBomb, rank: 210},
		{name: "six straight", cards: []string{"3c", "4d", "5c", "6c", "7c", "8c"}, category: CategoryStraight, rank: 21},
		{name: "broken pair run", cards: []string{"3c", "3d", "5c", "5d", "6c", "6d"}, category: CategoryNone},
		{name: "two cannot close a three run", cards: []string{"Kd", "Ah", "2s"}, category: CategoryNone},
		{name: "two cannot close a four run", cards: []string{"Qc", "Kd", "Ah", "2s"}, category: CategoryNone},
		{name: "two cannot close a five run", cards: []string{"Jc", "Qd", "Kh", "Ac", "2d"}, category: CategoryNone},
		{name: "two cannot close a straight flush", cards: []string{"Jh", "Qh", "Kh", "Ah", "2h"}, category: CategoryFlush, rank: 51},
		{name: "two cannot close a twelve run", cards: []string{"4d", "5h", "6s", "7c", "8d", "9h", "10s", "Jc", "Qd", "Kh", "As", "2c"}, category: CategoryNone},
		{name: "ace high run", cards: []string{"10c", "Jd", "Qh", "Ks", "Ac"}, category: CategoryStraight, rank: 45},
		{name: "no wraparound", cards: []string{"Kc", "Ad", "2h", "3c"}, category: CategoryNone},
		{name: "seven straight", cards: []string{"3c", "4d", "5c", "6c", "7c", "8c", "9s"}, category: CategoryStraight, rank: 28},
		{name: "eight not straight", cards: []string{"3c", "3d", "4c", "4d", "5c", "5d", "6c", "6d"}, category: CategoryNone},
		{
			name:     "full thirteen run",
			cards:    []string{"3c", "4d", "5h", "6s", "7c", "8d", "9h", "10s", "Jc", "Qd", "Kh", "As", "2c"},
			category: CategoryStraight,
			rank:     49,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			play := Classify(MustParseCards(tt.cards...))
			if play.Category != tt.category {
				t.Fatalf("Classify(%v) category = %v, want %v", tt.cards, play.Category, tt.category)
			}
			if play.Rank != tt.rank {
				t.Errorf("Classify(%v) rank = %d, want %d", tt.cards, play.Rank, tt.rank)
			}
			if play.IsNone() {
				return
			}
			if play.Length != len(tt.cards) {
				t.Errorf("Classify(%v) length = %d, want %d", tt.cards, play.Length, len(tt.cards))
			}
		})
	}
}

func TestClassifyEmptyAndOversized(t *testing.T) {
	if got := Classify(nil); !got.IsNone() || got.Rank != 0 {
		t.Fatalf("Classify(nil) = %+v, want None", got)
	}
	if got := Classify(NewDeck()[:14]); !got.IsNone() || got.Rank != 0 {
		t.Fatalf("Classify(14 cards) = %+v, want None", got)
	}
}

func TestClassifyIgnoresInputOrder(t *testing.T) {
	sets := [][]string{
		{"3c", "3d", "4c", "4d", "5c", "5d"},
		{"Kc", "Kd", "Kh", "4c", "4d"},
		{"3c", "4c", "5c", "6c", "7c"},
		{"9c", "10d", "Jh", "Qs"},
	}
	rng := rand.New(rand.NewSource(7))
	for _, ids := range sets {
		want := Classify(MustParseCards(ids...))
		for i := 0; i < 20; i++ {
			cards := MustParseCards(ids...)
			rng.Shuffle(len(cards), func(a, b int) { cards[a], cards[b] = cards[b], cards[a] })
			if got := Classify(cards); got != want {
				t.Fatalf("Classify(%v) = %+v, want %+v", cards, got, want)
			}
		}
	}
}

func TestClassifyDoesNotMutateInput(t *testing.T) {
	cards := MustParseCards("5c", "3c", "4d")
	Classify(cards)
	if cards[0].String() != "5c" || cards[1].String() != "3c" || cards[2].String() != "4d" {
		t.Fatalf("input reordered: %v", cards)
	}
}

func TestPlayKind(t *testing.T) {
	play := Classify(MustParseCards("3c", "4d", "5h", "6s", "7c"))
	if play.Kind() != "Straight-5" {
		t.Fatalf("Kind() = %q, want Straight-5", play.Kind())
	}
	if play.DisplayName != "Straight (5)" {
		t.Fatalf("DisplayName = %q", play.DisplayName)
	}
}
