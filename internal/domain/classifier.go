package domain

import "fmt"

// MaxPlaySize is the largest classifiable set.
const MaxPlaySize = 13

// matcher inspects a high-to-low sorted set and reports the play it forms.
type matcher func(sorted []Card) (Play, bool)

// classificationRules lists, per input size, the patterns tried in order. The first match wins.
var classificationRules = buildClassificationRules()

func buildClassificationRules() [MaxPlaySize + 1][]matcher {
	var rules [MaxPlaySize + 1][]matcher
	rules[1] = []matcher{matchSingle}
	rules[2] = []matcher{matchPair}
	rules[3] = []matcher{matchTriple, matchStraight}
	rules[4] = []matcher{matchQuadBomb, matchStraight, matchTwoPair}
	rules[5] = []matcher{matchStraightFlush, matchFlush, matchStraight, matchFullHouse}
	rules[6] = []matcher{matchStraight, matchPairRunBomb}
	for n := 7; n <= MaxPlaySize; n++ {
		rules[n] = []matcher{matchStraight}
	}
	return rules
}

// Classify maps a card set to its play category and rank. Input order does not matter.
// Sets that are empty, larger than MaxPlaySize, or match no pattern classify as NoPlay.
func Classify(cards []Card) Play {
	n := len(cards)
	if n == 0 || n > MaxPlaySize {
		return NoPlay
	}
	sorted := SortedDesc(cards)
	for _, match := range classificationRules[n] {
		if play, ok := match(sorted); ok {
			play.Length = n
			return play
		}
	}
	return NoPlay
}

func matchSingle(sorted []Card) (Play, bool) {
	return Play{Category: CategorySingles, Rank: sorted[0].Value(), DisplayName: "Single"}, true
}

func matchPair(sorted []Card) (Play, bool) {
	if !sameFace(sorted) {
		return Play{}, false
	}
	return Play{Category: CategoryPair, Rank: sorted[0].Value(), DisplayName: "Pair"}, true
}

func matchTriple(sorted []Card) (Play, bool) {
	if !sameFace(sorted) {
		return Play{}, false
	}
	return Play{Category: CategoryTriple, Rank: sorted[0].Value(), DisplayName: "Triple"}, true
}

func matchQuadBomb(sorted []Card) (Play, bool) {
	if !sameFace(sorted) {
		return Play{}, false
	}
	return Play{Category: CategoryBomb, Rank: sorted[0].Value() + QuadBombRankOffset, DisplayName: "Four of a Kind"}, true
}

func matchTwoPair(sorted []Card) (Play, bool) {
	if sorted[0].Rank != sorted[1].Rank || sorted[2].Rank != sorted[3].Rank || sorted[1].Rank == sorted[2].Rank {
		return Play{}, false
	}
	return Play{Category: CategoryTwoPair, Rank: sorted[0].Value(), DisplayName: "Two Pair"}, true
}

// matchStraight accepts a strictly consecutive run of faces. Runs never wrap, and a "2" only
// belongs to the full thirteen-card run 3..2; any shorter set holding a "2" is not a straight.
func matchStraight(sorted []Card) (Play, bool) {
	if !straightFaces(sorted) {
		return Play{}, false
	}
	return Play{
		Category:    CategoryStraight,
		Rank:        sorted[0].Value(),
		DisplayName: fmt.Sprintf("Straight (%d)", len(sorted)),
	}, true
}

func matchFlush(sorted []Card) (Play, bool) {
	if !sameSuit(sorted) {
		return Play{}, false
	}
	return Play{Category: CategoryFlush, Rank: sorted[0].Value(), DisplayName: "Flush"}, true
}

func matchStraightFlush(sorted []Card) (Play, bool) {
	if !sameSuit(sorted) || !straightFaces(sorted) {
		return Play{}, false
	}
	return Play{
		Category:    CategoryStraightFlush,
		Rank:        sorted[0].Value() + StraightFlushRankOffset,
		DisplayName: "Straight Flush",
	}, true
}

// matchFullHouse ranks by the triple's top card, not the pair's.
func matchFullHouse(sorted []Card) (Play, bool) {
	switch {
	case sameFace(sorted[:3]) && sameFace(sorted[3:]) && sorted[2].Rank != sorted[3].Rank:
		return Play{Category: CategoryFullHouse, Rank: sorted[0].Value(), DisplayName: "Full House"}, true
	case sameFace(sorted[:2]) && sameFace(sorted[2:]) && sorted[1].Rank != sorted[2].Rank:
		return Play{Category: CategoryFullHouse, Rank: sorted[2].Value(), DisplayName: "Full House"}, true
	}
	return Play{}, false
}

// matchPairRunBomb checks three pairs whose faces, read at positions 1, 3 and 5 of the
// high-to-low order, step down by exactly one.
func matchPairRunBomb(sorted []Card) (Play, bool) {
	for i := 0; i < 6; i += 2 {
		if sorted[i].Rank != sorted[i+1].Rank {
			return Play{}, false
		}
	}
	if sorted[1].Rank != sorted[3].Rank+1 || sorted[3].Rank != sorted[5].Rank+1 {
		return Play{}, false
	}
	return Play{
		Category:    CategoryBomb,
		Rank:        sorted[0].Value() + PairRunBombRankOffset,
		DisplayName: "Three Consecutive Pairs",
	}, true
}

func sameFace(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

func sameSuit(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightFaces reports whether sorted can form a straight. sorted[0] is the highest card, so it
// is the only place a "2" can sit.
func straightFaces(sorted []Card) bool {
	if sorted[0].IsTwo() && len(sorted) < MaxPlaySize {
		return false
	}
	return consecutiveFaces(sorted)
}

func consecutiveFaces(sorted []Card) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Rank != sorted[i].Rank+1 {
			return false
		}
	}
	return true
}
