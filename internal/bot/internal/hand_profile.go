package internal

import "tienlen/internal/domain"

// HandProfile summarizes a hand's structure after a greedy partition.
type HandProfile struct {
	TotalCards     int
	Singles        int
	Pairs          int
	Triples        int
	Quads          int
	Straights      int
	StraightCards  int
	MaxStraightLen int
	PairRuns       int
	PairRunCards   int
	MaxRunPairs    int
	Twos           int
}

// faceCounts holds how many cards of each face a hand has left during partitioning.
type faceCounts [domain.RankTwo + 1]int

// ProfileHand takes runs of three or more pairs first, then straights of three or more faces,
// always the longest remaining run, and counts what is left as same-face sets. The "2" joins
// neither kind of run.
func ProfileHand(hand []domain.Card) HandProfile {
	profile := HandProfile{TotalCards: len(hand), Twos: domain.CountTwos(hand)}

	var counts faceCounts
	for _, c := range hand {
		counts[c.Rank]++
	}

	for {
		run := counts.longestRun(2)
		if len(run) < 3 {
			break
		}
		counts.take(run, 2)
		profile.PairRuns++
		profile.PairRunCards += 2 * len(run)
		profile.MaxRunPairs = max(profile.MaxRunPairs, len(run))
	}
	for {
		run := counts.longestRun(1)
		if len(run) < 3 {
			break
		}
		counts.take(run, 1)
		profile.Straights++
		profile.StraightCards += len(run)
		profile.MaxStraightLen = max(profile.MaxStraightLen, len(run))
	}

	for _, n := range counts {
		switch n {
		case 4:
			profile.Quads++
		case 3:
			profile.Triples++
		case 2:
			profile.Pairs++
		case 1:
			profile.Singles++
		}
	}
	return profile
}

// longestRun returns the longest run of consecutive faces below the "2" holding at least n cards
// each. Ties go to the lowest run.
func (fc *faceCounts) longestRun(n int) []int32 {
	var best, cur []int32
	for rank := int32(0); rank < domain.RankTwo; rank++ {
		if fc[rank] < n {
			cur = nil
			continue
		}
		cur = append(cur, rank)
		if len(cur) > len(best) {
			best = append([]int32(nil), cur...)
		}
	}
	return best
}

func (fc *faceCounts) take(run []int32, n int) {
	for _, rank := range run {
		fc[rank] -= n
	}
}
