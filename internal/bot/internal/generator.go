package internal

import (
	"tienlen/internal/domain"
)

// intent is the shape a generator meant to build. A candidate survives only when the classifier
// agrees with it.
type intent func(domain.Play) bool

func isCategory(cats ...domain.Category) intent {
	return func(p domain.Play) bool {
		for _, c := range cats {
			if p.Category == c {
				return true
			}
		}
		return false
	}
}

// GenerateCandidates enumerates every distinct card subset of hand that forms a legal play.
// Subsets with different suits are different candidates. The "2" never takes part in a straight
// or a run of pairs here, even though the classifier tolerates it at the top of a run.
func GenerateCandidates(hand []domain.Card) []Candidate {
	groups := groupByFace(hand)
	var out []Candidate
	add := func(cards []domain.Card, want intent) {
		play := domain.Classify(cards)
		if play.IsNone() || !want(play) {
			return
		}
		out = append(out, Candidate{Cards: domain.SortedDesc(cards), Play: play})
	}

	for _, c := range hand {
		add([]domain.Card{c}, isCategory(domain.CategorySingles))
	}
	for _, g := range groups {
		for _, pair := range choose(g, 2) {
			add(pair, isCategory(domain.CategoryPair))
		}
		for _, triple := range choose(g, 3) {
			add(triple, isCategory(domain.CategoryTriple))
		}
		if len(g) == 4 {
			add(g, isCategory(domain.CategoryBomb))
		}
	}

	pairFaces := facesWithAtLeast(groups, 2)
	for i := 0; i < len(pairFaces); i++ {
		for j := i + 1; j < len(pairFaces); j++ {
			for _, lo := range choose(groups[pairFaces[i]], 2) {
				for _, hi := range choose(groups[pairFaces[j]], 2) {
					add(concat(lo, hi), isCategory(domain.CategoryTwoPair))
				}
			}
		}
	}

	maxLen := min(domain.MaxPlaySize, len(hand))
	for _, run := range faceRuns(groups, 1) {
		for length := 3; length <= min(len(run), maxLen); length++ {
			for start := 0; start+length <= len(run); start++ {
				options := make([][][]domain.Card, length)
				for k := 0; k < length; k++ {
					options[k] = choose(groups[run[start+k]], 1)
				}
				for _, straight := range product(options) {
					add(straight, isCategory(domain.CategoryStraight))
				}
			}
		}
	}

	// Only three pairs form a bomb; longer runs of pairs are not a legal shape.
	for _, run := range faceRuns(groups, 2) {
		for start := 0; start+3 <= len(run); start++ {
			options := make([][][]domain.Card, 3)
			for k := 0; k < 3; k++ {
				options[k] = choose(groups[run[start+k]], 2)
			}
			for _, bomb := range product(options) {
				add(bomb, isCategory(domain.CategoryBomb))
			}
		}
	}

	for _, suited := range groupBySuit(hand) {
		for _, five := range choose(suited, 5) {
			add(five, isCategory(domain.CategoryFlush, domain.CategoryStraightFlush))
		}
	}

	tripleFaces := facesWithAtLeast(groups, 3)
	for _, tf := range tripleFaces {
		for _, pf := range pairFaces {
			if pf == tf {
				continue
			}
			for _, triple := range choose(groups[tf], 3) {
				for _, pair := range choose(groups[pf], 2) {
					add(concat(triple, pair), isCategory(domain.CategoryFullHouse))
				}
			}
		}
	}

	return out
}

// groupByFace buckets cards by rank, each bucket ordered low suit first.
func groupByFace(hand []domain.Card) [domain.RankTwo + 1][]domain.Card {
	var groups [domain.RankTwo + 1][]domain.Card
	sorted := append([]domain.Card(nil), hand...)
	domain.SortHand(sorted)
	for _, c := range sorted {
		groups[c.Rank] = append(groups[c.Rank], c)
	}
	return groups
}

func groupBySuit(hand []domain.Card) [4][]domain.Card {
	var groups [4][]domain.Card
	sorted := append([]domain.Card(nil), hand...)
	domain.SortHand(sorted)
	for _, c := range sorted {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

func facesWithAtLeast(groups [domain.RankTwo + 1][]domain.Card, n int) []int32 {
	var faces []int32
	for rank, g := range groups {
		if len(g) >= n {
			faces = append(faces, int32(rank))
		}
	}
	return faces
}

// faceRuns returns maximal runs of consecutive faces, below the "2", that hold at least n cards each.
func faceRuns(groups [domain.RankTwo + 1][]domain.Card, n int) [][]int32 {
	var runs [][]int32
	var cur []int32
	for rank := int32(0); rank < domain.RankTwo; rank++ {
		if len(groups[rank]) >= n {
			cur = append(cur, rank)
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// choose returns every k-element subset of cards, preserving input order within each subset.
func choose(cards []domain.Card, k int) [][]domain.Card {
	if k <= 0 || k > len(cards) {
		return nil
	}
	var out [][]domain.Card
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		subset := make([]domain.Card, k)
		for i, j := range idx {
			subset[i] = cards[j]
		}
		out = append(out, subset)

		i := k - 1
		for i >= 0 && idx[i] == len(cards)-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// product joins one option from each slot, in every combination.
func product(slots [][][]domain.Card) [][]domain.Card {
	out := [][]domain.Card{nil}
	for _, options := range slots {
		next := make([][]domain.Card, 0, len(out)*len(options))
		for _, prefix := range out {
			for _, opt := range options {
				next = append(next, concat(prefix, opt))
			}
		}
		out = next
	}
	return out
}

func concat(a, b []domain.Card) []domain.Card {
	out := make([]domain.Card, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
