package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Suits in ascending value.
const (
	SuitClubs    int32 = 0
	SuitDiamonds int32 = 1
	SuitHearts   int32 = 2
	SuitSpades   int32 = 3
)

// RankTwo is the highest face. Rank 0 is the 3.
const RankTwo int32 = 12

// DeckSize is the number of unique cards in play.
const DeckSize = 52

var (
	faceNames  = [...]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
	suitLetter = [...]string{"c", "d", "h", "s"}
)

// ErrUnknownCard is returned when a card identifier cannot be parsed.
var ErrUnknownCard = errors.New("unknown card")

// Card is a single playing card in the Tien Len deck.
type Card struct {
	Rank int32 // 0..12 (3=0, A=11, 2=12)
	Suit int32 // 0..3 (club, diamond, heart, spade)
}

// Value is the card's single-card rank, 1 (3c) through 52 (2s).
func (c Card) Value() int {
	return int(c.Rank*4+c.Suit) + 1
}

// String returns the wire identifier, e.g. "10d" or "2s".
func (c Card) String() string {
	if c.Rank < 0 || int(c.Rank) >= len(faceNames) || c.Suit < 0 || int(c.Suit) >= len(suitLetter) {
		return "??"
	}
	return faceNames[c.Rank] + suitLetter[c.Suit]
}

// IsTwo reports whether the card is a "2".
func (c Card) IsTwo() bool {
	return c.Rank == RankTwo
}

// ParseCard converts a wire identifier such as "Qh" into a Card.
func ParseCard(id string) (Card, error) {
	s := strings.TrimSpace(id)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	face := strings.ToUpper(s[:len(s)-1])
	suit := strings.ToLower(s[len(s)-1:])

	rank := int32(-1)
	for i, f := range faceNames {
		if f == face {
			rank = int32(i)
			break
		}
	}
	suitIdx := int32(-1)
	for i, l := range suitLetter {
		if l == suit {
			suitIdx = int32(i)
			break
		}
	}
	if rank < 0 || suitIdx < 0 {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return Card{Rank: rank, Suit: suitIdx}, nil
}

// ParseCards parses a list of identifiers, rejecting unknown or repeated cards.
func ParseCards(ids []string) ([]Card, error) {
	cards := make([]Card, 0, len(ids))
	seen := make(map[Card]bool, len(ids))
	for _, id := range ids {
		c, err := ParseCard(id)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %q repeated", ErrUnknownCard, id)
		}
		seen[c] = true
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed, known-good identifiers.
func MustParseCards(ids ...string) []Card {
	cards, err := ParseCards(ids)
	if err != nil {
		panic(err)
	}
	return cards
}

// CardIDs returns the wire identifiers for cards, preserving order.
func CardIDs(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
