package internal

import (
	"tienlen/internal/domain"
)

// BossStats provides insights into the hand relative to the cards still unseen.
type BossStats struct {
	UnseenCards []domain.Card
	BossSingles []domain.Card // Singles in hand that cannot be beaten
	Dominance   float64       // 0 to 1, how much "control" the hand has
}

// CountCards performs card counting from the seat's point of view. seen holds every card that has
// left play (discards plus the current board).
func CountCards(hand []domain.Card, seen []domain.Card) BossStats {
	unseen := domain.RemoveCards(domain.NewDeck(), seen)
	unseen = domain.RemoveCards(unseen, hand)

	stats := BossStats{UnseenCards: unseen}
	if len(hand) == 0 {
		return stats
	}
	if len(unseen) == 0 {
		stats.Dominance = 1.0
		stats.BossSingles = append([]domain.Card(nil), hand...)
		return stats
	}

	highest := highestValue(unseen)
	for _, c := range hand {
		if c.Value() > highest {
			stats.BossSingles = append(stats.BossSingles, c)
		}
	}

	avgHand := averageValue(hand)
	avgUnseen := averageValue(unseen)
	stats.Dominance = avgHand / (avgHand + avgUnseen)
	return stats
}

// CountRoom is CountCards for seat using the room's discards and board.
func CountRoom(r *domain.Room, seat int) BossStats {
	seen := make([]domain.Card, 0, len(r.Discards)+len(r.Board))
	seen = append(seen, r.Discards...)
	seen = append(seen, r.Board...)
	return CountCards(r.Hands[seat], seen)
}

// IsBoss reports whether no unseen cards can answer the candidate in kind. Only singles and pairs
// are tracked; bombs are always treated as boss plays.
func (s BossStats) IsBoss(c Candidate) bool {
	switch c.Play.Category {
	case domain.CategoryBomb:
		return true
	case domain.CategorySingles:
		return len(s.UnseenCards) == 0 || c.Play.Rank > highestValue(s.UnseenCards)
	case domain.CategoryPair:
		return c.Play.Rank > highestPairValue(s.UnseenCards)
	}
	return false
}

func highestValue(cards []domain.Card) int {
	best := 0
	for _, c := range cards {
		if c.Value() > best {
			best = c.Value()
		}
	}
	return best
}

// highestPairValue is the rank of the best pair formable from cards, or 0.
func highestPairValue(cards []domain.Card) int {
	groups := groupByFace(cards)
	for rank := len(groups) - 1; rank >= 0; rank-- {
		if g := groups[rank]; len(g) >= 2 {
			return g[len(g)-1].Value()
		}
	}
	return 0
}

func averageValue(cards []domain.Card) float64 {
	total := 0
	for _, c := range cards {
		total += c.Value()
	}
	return float64(total) / float64(len(cards))
}
