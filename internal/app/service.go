package app

import (
	"math/rand"
	"time"

	"tienlen/internal/domain"
)

// Service contains Tien Len use-cases operating on domain state.
// Every transition validates before it mutates, so a returned validation error leaves the room
// untouched. ErrStateInvariant is the exception: it is only raised after a mutation has exposed
// corrupted state.
type Service struct {
	rng        *rand.Rand
	minPlayers int
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, minPlayers: MinPlayersToStartGame}
}

// WithMinPlayers overrides how many occupied seats a game needs. Values below 2 are ignored and
// values above the seat count are clamped to it.
func (s *Service) WithMinPlayers(n int) *Service {
	if n >= MinPlayersToStartGame {
		s.minPlayers = min(n, domain.SeatCount)
	}
	return s
}

// ChooseSeat toggles occ into seat: sitting in one's own seat stands up, and sitting elsewhere
// vacates the previous seat first.
func (s *Service) ChooseSeat(r *domain.Room, occ domain.Occupant, seat int) ([]Event, error) {
	if r.Stage != domain.StageSeating {
		return nil, ErrNotSeating
	}
	if !domain.ValidSeat(seat) {
		return nil, ErrSeatOutOfRange
	}

	current := r.SeatOf(occ.ID)
	if current == seat {
		r.Seats[seat] = domain.Occupant{}
		return []Event{{Kind: EventSeatVacated, Seat: seat}}, nil
	}
	if r.IsSeated(seat) {
		return nil, ErrSeatTaken
	}

	var events []Event
	if current >= 0 {
		r.Seats[current] = domain.Occupant{}
		events = append(events, Event{Kind: EventSeatVacated, Seat: current})
	}
	r.Seats[seat] = occ
	return append(events, Event{Kind: EventSeatTaken, Seat: seat}), nil
}

// StartGame shuffles and deals 13 cards to every occupied seat. The seat holding the lowest
// dealt card takes the first turn and must include that card.
func (s *Service) StartGame(r *domain.Room) ([]Event, error) {
	if r.Stage != domain.StageSeating {
		return nil, ErrNotSeating
	}
	seated := r.OccupiedCount()
	if seated < s.minPlayers {
		return nil, ErrTooFewPlayers
	}

	r.ClearTable()
	deck := domain.NewDeck()
	s.shuffle(deck)

	cardIdx := 0
	lows := make([]domain.Card, 0, domain.SeatCount)
	for seat := range r.Seats {
		if !r.IsSeated(seat) {
			continue
		}
		hand := append([]domain.Card(nil), deck[cardIdx:cardIdx+domain.HandSize]...)
		domain.SortHandDesc(hand)
		r.Hands[seat] = hand
		cardIdx += domain.HandSize

		low, _ := domain.LowestCard(hand)
		lows = append(lows, low)
	}
	r.Undealt = append([]domain.Card(nil), deck[cardIdx:]...)

	lowest, _ := domain.LowestCard(lows)
	for seat, hand := range r.Hands {
		if domain.ContainsCard(hand, lowest) {
			r.TurnIndex = seat
			break
		}
	}
	r.LowestDealtCard = lowest
	r.StartingPlayers = seated
	r.InitialPlayPending = true
	r.Stage = domain.StageActive

	return []Event{{Kind: EventGameStarted, Seat: r.TurnIndex}}, nil
}

// PlayCards commits cards for seat after validation, then ranks, settles or advances the turn.
func (s *Service) PlayCards(r *domain.Room, seat int, cards []domain.Card) ([]Event, error) {
	play, err := domain.ValidatePlay(r, seat, cards)
	if err != nil {
		return nil, err
	}

	r.Discards = append(r.Discards, r.Board...)
	r.Board = domain.SortedDesc(cards)
	r.Hands[seat] = domain.RemoveCards(r.Hands[seat], cards)
	r.LastBySeat = [domain.SeatCount]domain.SeatEntry{}
	r.LastBySeat[seat] = domain.PlayEntry(play)
	r.InitialPlayPending = false

	if play.Category == domain.CategoryBomb && r.Seats[seat].ID != "" {
		r.StatsFor(r.Seats[seat].ID).Bombs++
	}

	events := []Event{{Kind: EventCardsPlayed, Seat: seat, Cards: r.Board, Play: play}}
	if len(r.Hands[seat]) == 0 {
		events = append(events, s.finishSeat(r, seat, r.NextFinishRank()))
	}
	return s.settleOrAdvance(r, seat, true, events)
}

// PassTurn records a pass for seat. When every other contender has passed the board clears.
func (s *Service) PassTurn(r *domain.Room, seat int) ([]Event, error) {
	if r.Stage != domain.StageActive || seat != r.TurnIndex {
		return nil, domain.ErrNotYourTurn
	}
	if r.IsFreePlay(seat) {
		return nil, domain.ErrCannotPassFreePlay
	}

	r.LastBySeat[seat] = domain.PassEntry
	events := []Event{{Kind: EventTurnPassed, Seat: seat}}
	if shouldClearBoard(r) {
		events = append(events, clearBoard(r))
	}
	return s.settleOrAdvance(r, seat, true, events)
}

// Forfeit gives seat the worst remaining rank. Its cards leave play.
func (s *Service) Forfeit(r *domain.Room, seat int) ([]Event, error) {
	if r.Stage != domain.StageActive {
		return nil, ErrNotActive
	}
	if !r.InPlay(seat) {
		return nil, ErrNotSeated
	}

	releaseOpeningCard(r, seat)
	r.Discards = append(r.Discards, r.Hands[seat]...)
	r.Hands[seat] = nil
	events := []Event{
		{Kind: EventForfeited, Seat: seat},
		s.finishSeat(r, seat, r.LastPlaceRank()),
	}
	if shouldClearBoard(r) {
		events = append(events, clearBoard(r))
	}
	return s.settleOrAdvance(r, seat, seat == r.TurnIndex, events)
}

// Disconnect vacates seat while seating, or leaves a placeholder mid-game. A placeholder on the
// acting seat passes, or simply yields the turn on a free play.
func (s *Service) Disconnect(r *domain.Room, seat int) ([]Event, error) {
	if !r.IsSeated(seat) {
		return nil, ErrNotSeated
	}
	if r.Stage != domain.StageActive {
		r.Seats[seat] = domain.Occupant{}
		return []Event{{Kind: EventSeatVacated, Seat: seat}}, nil
	}

	occ := r.Seats[seat]
	if occ.Kind == domain.OccupantDisconnected {
		return nil, nil
	}
	occ.Kind = domain.OccupantDisconnected
	r.Seats[seat] = occ
	releaseOpeningCard(r, seat)
	events := []Event{{Kind: EventDisconnected, Seat: seat}}

	if r.IsRanked(seat) {
		return events, nil
	}
	if seat != r.TurnIndex {
		if !anyActor(r) {
			events = append(events, s.abandon(r)...)
		}
		return events, nil
	}
	if !r.IsFreePlay(seat) {
		r.LastBySeat[seat] = domain.PassEntry
		events = append(events, Event{Kind: EventTurnPassed, Seat: seat})
		if shouldClearBoard(r) {
			events = append(events, clearBoard(r))
		}
	}
	return s.settleOrAdvance(r, seat, true, events)
}

// Reconnect restores occ into the disconnected placeholder it left behind.
func (s *Service) Reconnect(r *domain.Room, occ domain.Occupant) ([]Event, error) {
	seat := r.SeatOf(occ.ID)
	if seat < 0 {
		return nil, ErrNotSeated
	}
	if r.Seats[seat].Kind != domain.OccupantDisconnected {
		return nil, nil
	}
	r.Seats[seat] = occ
	return []Event{{Kind: EventSeatTaken, Seat: seat}}, nil
}

// ResetToSeating drops the current game and returns the room to seating. Placeholders left by
// departed players are vacated; accumulated stats are kept.
func (s *Service) ResetToSeating(r *domain.Room) []Event {
	r.ClearTable()
	for i, occ := range r.Seats {
		if occ.Kind == domain.OccupantDisconnected {
			r.Seats[i] = domain.Occupant{}
		}
	}
	r.Stage = domain.StageSeating
	return []Event{{Kind: EventRoomReset, Seat: -1}}
}

// releaseOpeningCard lifts the opening constraint when the seat holding the lowest dealt card
// can no longer lead with it.
func releaseOpeningCard(r *domain.Room, seat int) {
	if r.InitialPlayPending && domain.ContainsCard(r.Hands[seat], r.LowestDealtCard) {
		r.InitialPlayPending = false
	}
}

func (s *Service) shuffle(deck []domain.Card) {
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}
