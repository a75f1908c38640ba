package domain

import "fmt"

// Category is the named shape of a card combination.
type Category int

const (
	CategoryNone Category = iota
	CategorySingles
	CategoryPair
	CategoryTwoPair
	CategoryTriple
	CategoryStraight // Straight-N; Length carries N (3..13)
	CategoryFlush
	CategoryStraightFlush
	CategoryFullHouse
	CategoryBomb // Four of a kind or three consecutive pairs
)

// Rank offsets lift the bonus categories above ordinary plays of the same length.
const (
	StraightFlushRankOffset = 100
	PairRunBombRankOffset   = 200
	QuadBombRankOffset      = 300
)

var categoryNames = map[Category]string{
	CategoryNone:          "None",
	CategorySingles:       "Singles",
	CategoryPair:          "Pair",
	CategoryTwoPair:       "TwoPair",
	CategoryTriple:        "Triple",
	CategoryStraight:      "Straight",
	CategoryFlush:         "Flush",
	CategoryStraightFlush: "StraightFlush",
	CategoryFullHouse:     "FullHouse",
	CategoryBomb:          "Bomb",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Play is the result of classifying a set of cards.
type Play struct {
	Category    Category
	Length      int // number of cards
	Rank        int // comparable only within the same category
	DisplayName string
}

// NoPlay is the classification of an empty or unrecognized set.
var NoPlay = Play{Category: CategoryNone, DisplayName: "No Play"}

// FreePlay is the sentinel board state when no undefeated play controls the board.
var FreePlay = Play{Category: CategoryNone, DisplayName: "Free Play"}

// IsNone reports whether the play has no category.
func (p Play) IsNone() bool {
	return p.Category == CategoryNone
}

// Kind names the category, qualifying straights by length ("Straight-5").
func (p Play) Kind() string {
	if p.Category == CategoryStraight {
		return fmt.Sprintf("Straight-%d", p.Length)
	}
	return p.Category.String()
}

// SameCategory reports whether two plays may be compared by rank alone.
// Straights only match straights of equal length.
func (p Play) SameCategory(other Play) bool {
	if p.Category != other.Category {
		return false
	}
	if p.Category == CategoryStraight {
		return p.Length == other.Length
	}
	return true
}

func (p Play) String() string {
	if p.IsNone() {
		return p.DisplayName
	}
	return fmt.Sprintf("%s(%d)", p.Kind(), p.Rank)
}
