package app

import (
	"sort"

	"tienlen/internal/domain"
)

// findNextTurn returns the next seat after from that can act, searching up to a full lap.
// from itself is the last candidate, so a lone contender keeps the turn.
func findNextTurn(r *domain.Room, from int) (int, error) {
	for step := 1; step <= domain.SeatCount; step++ {
		seat := (from + step) % domain.SeatCount
		if r.CanTakeTurn(seat) {
			return seat, nil
		}
	}
	return -1, ErrNoEligibleNextPlayer
}

// anyActor reports whether any unranked seat can still act.
func anyActor(r *domain.Room) bool {
	for seat := range r.Seats {
		if r.CanTakeTurn(seat) {
			return true
		}
	}
	return false
}

// shouldClearBoard reports whether every contender other than the board holder has passed.
// Disconnected placeholders neither count as passing nor block the clear.
func shouldClearBoard(r *domain.Room) bool {
	holder := r.HolderSeat()
	if holder < 0 {
		return false
	}
	for seat := range r.Seats {
		if seat == holder || !r.InPlay(seat) || r.Seats[seat].Kind == domain.OccupantDisconnected {
			continue
		}
		if r.LastBySeat[seat].Kind != domain.EntryPass {
			return false
		}
	}
	return true
}

func clearBoard(r *domain.Room) Event {
	r.Discards = append(r.Discards, r.Board...)
	r.Board = nil
	r.LastBySeat = [domain.SeatCount]domain.SeatEntry{}
	return Event{Kind: EventBoardCleared, Seat: -1}
}

func (s *Service) finishSeat(r *domain.Room, seat, rank int) Event {
	r.Ranks[seat] = rank
	if id := r.Seats[seat].ID; id != "" {
		r.StatsFor(id).RecordFinish(rank, r.StartingPlayers)
	}
	return Event{Kind: EventSeatFinished, Seat: seat, Rank: rank}
}

// settleOrAdvance runs after every in-game transition: it ranks an orphaned last seat, ends the
// game once everyone is ranked, and otherwise hands the turn on when advance is set.
func (s *Service) settleOrAdvance(r *domain.Room, from int, advance bool, events []Event) ([]Event, error) {
	if unranked := r.UnrankedSeats(); len(unranked) == 1 {
		events = append(events, s.finishSeat(r, unranked[0], r.LastPlaceRank()))
	}
	if len(r.UnrankedSeats()) == 0 {
		return append(events, endGame(r)), nil
	}
	if !anyActor(r) {
		return append(events, s.abandon(r)...), nil
	}
	if !advance {
		return events, nil
	}

	next, err := findNextTurn(r, from)
	if err != nil {
		return events, err
	}
	r.TurnIndex = next
	return events, nil
}

// abandon ends a game nobody connected can finish. Remaining placeholders are ranked by
// cards left, fewest first, then by seat.
func (s *Service) abandon(r *domain.Room) []Event {
	events := []Event{{Kind: EventGameAbandoned, Seat: -1}}
	remaining := r.UnrankedSeats()
	sort.SliceStable(remaining, func(i, j int) bool {
		return len(r.Hands[remaining[i]]) < len(r.Hands[remaining[j]])
	})
	for _, seat := range remaining {
		events = append(events, s.finishSeat(r, seat, r.NextFinishRank()))
	}
	return append(events, endGame(r))
}

func endGame(r *domain.Room) Event {
	r.Stage = domain.StageFinished
	r.TurnIndex = -1
	return Event{Kind: EventGameEnded, Seat: -1}
}
