package domain

// Beats determines if candidate may be placed over last.
//
// A Free Play board accepts anything that classifies. A Bomb beats every board. Otherwise the
// two plays must share a category (and length, for straights) and candidate must rank higher,
// with one exception: a straight flush also beats a flush or a straight of the same length.
func Beats(candidate, last Play) bool {
	if last.IsNone() {
		return !candidate.IsNone()
	}
	if candidate.IsNone() {
		return false
	}
	if candidate.Category == CategoryBomb {
		return true
	}
	if candidate.SameCategory(last) {
		return candidate.Rank > last.Rank
	}
	if candidate.Category == CategoryStraightFlush {
		switch {
		case last.Category == CategoryFlush:
			return candidate.Rank > last.Rank
		case last.Category == CategoryStraight && last.Length == candidate.Length:
			return candidate.Rank > last.Rank
		}
	}
	return false
}

// LastPlay returns the play seat must answer: the first recorded play found scanning backward
// from the seat before it through the three prior seats, wrapping. Passes and empty entries are
// skipped. When no play is found the board is FreePlay.
func (r *Room) LastPlay(seat int) Play {
	if !ValidSeat(seat) {
		return FreePlay
	}
	for step := 1; step < SeatCount; step++ {
		prev := (seat - step + SeatCount) % SeatCount
		if entry := r.LastBySeat[prev]; entry.Kind == EntryPlay {
			return entry.Play
		}
	}
	return FreePlay
}

// HolderSeat returns the seat whose play currently controls the board, or -1 on Free Play.
func (r *Room) HolderSeat() int {
	for i, entry := range r.LastBySeat {
		if entry.Kind == EntryPlay {
			return i
		}
	}
	return -1
}

// IsFreePlay reports whether seat may lead with any category.
func (r *Room) IsFreePlay(seat int) bool {
	return r.LastPlay(seat).IsNone()
}
