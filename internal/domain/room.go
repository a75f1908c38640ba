package domain

import "time"

const (
	// SeatCount is the number of seats at a table.
	SeatCount = 4
	// HandSize is the number of cards dealt to each occupied seat.
	HandSize = 13
)

// Stage represents the lifecycle stage of a room.
type Stage string

const (
	// StageSeating is the pre-game state where occupants choose seats.
	StageSeating Stage = "seating"
	// StageActive is the state where cards are played.
	StageActive Stage = "active"
	// StageFinished is the short settle period after every seat is ranked.
	StageFinished Stage = "finished"
)

// OccupantKind tags who sits in a seat.
type OccupantKind int

const (
	OccupantEmpty OccupantKind = iota
	OccupantHuman
	OccupantAI
	// OccupantDisconnected holds a seat mid-game for a departed player. It counts as seated
	// for turn and rank purposes but can never act.
	OccupantDisconnected
)

func (k OccupantKind) String() string {
	switch k {
	case OccupantHuman:
		return "human"
	case OccupantAI:
		return "ai"
	case OccupantDisconnected:
		return "disconnected"
	default:
		return "empty"
	}
}

// Occupant is whoever holds a seat.
type Occupant struct {
	Kind        OccupantKind
	ID          string
	DisplayName string
	Persona     string // AI persona name; empty for humans
}

// HumanOccupant builds a human seat occupant.
func HumanOccupant(id, displayName string) Occupant {
	return Occupant{Kind: OccupantHuman, ID: id, DisplayName: displayName}
}

// AIOccupant builds a computer-controlled seat occupant.
func AIOccupant(id, displayName, persona string) Occupant {
	return Occupant{Kind: OccupantAI, ID: id, DisplayName: displayName, Persona: persona}
}

// IsEmpty reports whether nobody holds the seat.
func (o Occupant) IsEmpty() bool { return o.Kind == OccupantEmpty }

// IsAI reports whether the seat is computer-controlled.
func (o Occupant) IsAI() bool { return o.Kind == OccupantAI }

// CanAct reports whether the occupant can submit actions.
func (o Occupant) CanAct() bool { return o.Kind == OccupantHuman || o.Kind == OccupantAI }

// EntryKind tags a seat's last action since the board was cleared.
type EntryKind int

const (
	EntryEmpty EntryKind = iota
	EntryPlay
	EntryPass
)

// SeatEntry is a seat's most recent action: a play, a pass, or nothing.
type SeatEntry struct {
	Kind EntryKind
	Play Play
}

// PassEntry records a pass.
var PassEntry = SeatEntry{Kind: EntryPass}

// PlayEntry records a committed play.
func PlayEntry(p Play) SeatEntry {
	return SeatEntry{Kind: EntryPlay, Play: p}
}

// Room is the aggregate state of one game session.
type Room struct {
	Name string

	Seats      [SeatCount]Occupant
	Hands      [SeatCount][]Card // nil when nothing was dealt; sorted high to low
	Board      []Card            // last played set, sorted high to low
	LastBySeat [SeatCount]SeatEntry
	Ranks      [SeatCount]int // 0 means unranked; otherwise 1..StartingPlayers

	TurnIndex          int
	Stage              Stage
	InitialPlayPending bool
	LowestDealtCard    Card
	StartingPlayers    int

	// Discards holds cards that left the board; Undealt holds cards nobody was dealt.
	Discards []Card
	Undealt  []Card

	Stats        map[string]*PlayerStats
	LastActivity time.Time
}

// NewRoom creates an empty room in the seating stage.
func NewRoom(name string) *Room {
	return &Room{
		Name:      name,
		Stage:     StageSeating,
		TurnIndex: -1,
		Stats:     make(map[string]*PlayerStats),
	}
}

// ValidSeat reports whether seat indexes a table seat.
func ValidSeat(seat int) bool {
	return seat >= 0 && seat < SeatCount
}

// IsSeated reports whether the seat has any occupant, including a disconnected placeholder.
func (r *Room) IsSeated(seat int) bool {
	return ValidSeat(seat) && !r.Seats[seat].IsEmpty()
}

// IsRanked reports whether the seat has already been assigned a finishing rank.
func (r *Room) IsRanked(seat int) bool {
	return ValidSeat(seat) && r.Ranks[seat] != 0
}

// InPlay reports whether the seat is seated and still unranked.
func (r *Room) InPlay(seat int) bool {
	return r.IsSeated(seat) && !r.IsRanked(seat)
}

// CanTakeTurn reports whether the seat is in play and able to act.
func (r *Room) CanTakeTurn(seat int) bool {
	return r.InPlay(seat) && r.Seats[seat].CanAct()
}

// SeatOf returns the seat held by identity id, or -1.
func (r *Room) SeatOf(id string) int {
	if id == "" {
		return -1
	}
	for i, occ := range r.Seats {
		if !occ.IsEmpty() && occ.ID == id {
			return i
		}
	}
	return -1
}

// OccupiedCount counts non-empty seats.
func (r *Room) OccupiedCount() int {
	n := 0
	for i := range r.Seats {
		if r.IsSeated(i) {
			n++
		}
	}
	return n
}

// UnrankedSeats lists seated, unranked seats in seat order.
func (r *Room) UnrankedSeats() []int {
	var seats []int
	for i := range r.Seats {
		if r.InPlay(i) {
			seats = append(seats, i)
		}
	}
	return seats
}

// NextFinishRank returns the best rank not yet assigned, or 0 when all are used.
func (r *Room) NextFinishRank() int {
	for rank := 1; rank <= r.StartingPlayers; rank++ {
		if !r.rankUsed(rank) {
			return rank
		}
	}
	return 0
}

// LastPlaceRank returns the worst rank not yet assigned, or 0 when all are used.
func (r *Room) LastPlaceRank() int {
	for rank := r.StartingPlayers; rank >= 1; rank-- {
		if !r.rankUsed(rank) {
			return rank
		}
	}
	return 0
}

func (r *Room) rankUsed(rank int) bool {
	for _, assigned := range r.Ranks {
		if assigned == rank {
			return true
		}
	}
	return false
}

// CardsInPlay counts every card the room accounts for: hands, board, discards and undealt stock.
func (r *Room) CardsInPlay() int {
	n := len(r.Board) + len(r.Discards) + len(r.Undealt)
	for _, h := range r.Hands {
		n += len(h)
	}
	return n
}

// StatsFor returns the accumulated stats for an identity, creating them on first use.
func (r *Room) StatsFor(id string) *PlayerStats {
	if r.Stats == nil {
		r.Stats = make(map[string]*PlayerStats)
	}
	s, ok := r.Stats[id]
	if !ok {
		s = NewPlayerStats()
		r.Stats[id] = s
	}
	return s
}

// ClearTable drops the hands, board, ranks and per-seat entries left by a game.
func (r *Room) ClearTable() {
	r.Hands = [SeatCount][]Card{}
	r.Board = nil
	r.Discards = nil
	r.Undealt = nil
	r.LastBySeat = [SeatCount]SeatEntry{}
	r.Ranks = [SeatCount]int{}
	r.TurnIndex = -1
	r.InitialPlayPending = false
	r.LowestDealtCard = Card{}
	r.StartingPlayers = 0
}
