package domain

// RemoveCards removes the specified cards from a hand and returns the updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeCounts := make(map[Card]int, len(toRemove))
	for _, card := range toRemove {
		removeCounts[card]++
	}

	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if count, ok := removeCounts[card]; ok && count > 0 {
			removeCounts[card] = count - 1
			continue
		}
		updated = append(updated, card)
	}

	return updated
}

// ContainsAll reports whether every card in subset is held in hand, counting multiplicity.
func ContainsAll(hand []Card, subset []Card) bool {
	counts := make(map[Card]int, len(hand))
	for _, c := range hand {
		counts[c]++
	}
	for _, c := range subset {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// ContainsCard reports whether cards includes c.
func ContainsCard(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}

// CountTwos returns how many "2" faces appear in cards.
func CountTwos(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsTwo() {
			n++
		}
	}
	return n
}
