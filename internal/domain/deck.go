package domain

import (
	"sort"
)

// NewDeck returns a sorted 52-card deck, lowest card first.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for r := int32(0); r <= RankTwo; r++ {
		for s := SuitClubs; s <= SuitSpades; s++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// SortHand orders a hand by ascending power.
func SortHand(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cardPower(cards[i]) < cardPower(cards[j])
	})
}

// SortHandDesc orders a hand from the highest card to the lowest.
func SortHandDesc(cards []Card) {
	sort.Slice(cards, func(i, j int) bool {
		return cardPower(cards[i]) > cardPower(cards[j])
	})
}

// SortedDesc returns a high-to-low copy of cards.
func SortedDesc(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	SortHandDesc(out)
	return out
}

// LowestCard returns the lowest card by face then suit. ok is false for an empty set.
func LowestCard(cards []Card) (lowest Card, ok bool) {
	for i, c := range cards {
		if i == 0 || cardPower(c) < cardPower(lowest) {
			lowest = c
		}
	}
	return lowest, len(cards) > 0
}

func cardPower(c Card) int32 {
	return c.Rank*4 + c.Suit
}
