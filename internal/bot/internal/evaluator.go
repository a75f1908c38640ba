package internal

import "tienlen/internal/domain"

const (
	// TwoPenalty is added for every "2" a play spends.
	TwoPenalty = 15.0
	// LowCardDiscount applies when a play's average card value is below lowCardThreshold.
	LowCardDiscount  = 0.8
	lowCardThreshold = 5.0
)

var categoryMultiplier = map[domain.Category]float64{
	domain.CategorySingles:       1.0,
	domain.CategoryPair:          1.2,
	domain.CategoryTriple:        1.4,
	domain.CategoryTwoPair:       1.5,
	domain.CategoryFlush:         2.0,
	domain.CategoryFullHouse:     2.2,
	domain.CategoryStraightFlush: 2.5,
	domain.CategoryBomb:          3.0,
}

// CardCost is a card's face value (3 is 1, A is 12, the "2" is 20) plus a quarter step per suit.
func CardCost(c domain.Card) float64 {
	face := float64(c.Rank + 1)
	if c.IsTwo() {
		face = 20
	}
	return face + 0.25*float64(c.Suit)
}

// Multiplier scales a play's base cost by how much structure it spends.
func Multiplier(p domain.Play) float64 {
	if p.Category == domain.CategoryStraight {
		return 1.3 + 0.1*float64(p.Length-3)
	}
	if m, ok := categoryMultiplier[p.Category]; ok {
		return m
	}
	return 1.0
}

// EvaluatePlay scores how expensive it is to spend cards as play. Lower is more expendable.
func EvaluatePlay(cards []domain.Card, play domain.Play) float64 {
	if len(cards) == 0 {
		return 0
	}
	base := 0.0
	for _, c := range cards {
		base += CardCost(c)
	}
	cost := base * Multiplier(play)
	if base/float64(len(cards)) < lowCardThreshold {
		cost *= LowCardDiscount
	}
	return cost + TwoPenalty*float64(domain.CountTwos(cards))
}
