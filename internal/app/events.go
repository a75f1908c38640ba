package app

import (
	"fmt"
	"strings"

	"tienlen/internal/domain"
)

// EventKind identifies what a transition did.
type EventKind string

const (
	EventSeatTaken     EventKind = "seat_taken"
	EventSeatVacated   EventKind = "seat_vacated"
	EventGameStarted   EventKind = "game_started"
	EventCardsPlayed   EventKind = "cards_played"
	EventTurnPassed    EventKind = "turn_passed"
	EventBoardCleared  EventKind = "board_cleared"
	EventSeatFinished  EventKind = "seat_finished"
	EventForfeited     EventKind = "forfeited"
	EventDisconnected  EventKind = "disconnected"
	EventGameEnded     EventKind = "game_ended"
	EventGameAbandoned EventKind = "game_abandoned"
	EventRoomReset     EventKind = "room_reset"
)

// Event is a record of one step in a transition, used for the snapshot's last action line and logs.
type Event struct {
	Kind  EventKind
	Seat  int
	Cards []domain.Card
	Play  domain.Play
	Rank  int
}

// Describe renders the event as a short human-readable line using the room's seat names.
func (e Event) Describe(r *domain.Room) string {
	who := fmt.Sprintf("Seat %d", e.Seat+1)
	if domain.ValidSeat(e.Seat) && r.Seats[e.Seat].DisplayName != "" {
		who = r.Seats[e.Seat].DisplayName
	}

	switch e.Kind {
	case EventSeatTaken:
		return who + " sat down"
	case EventSeatVacated:
		return fmt.Sprintf("Seat %d is open", e.Seat+1)
	case EventGameStarted:
		return fmt.Sprintf("New game, %s leads", who)
	case EventCardsPlayed:
		return fmt.Sprintf("%s played %s: %s", who, e.Play.DisplayName, strings.Join(domain.CardIDs(e.Cards), " "))
	case EventTurnPassed:
		return who + " passed"
	case EventBoardCleared:
		return "Free play"
	case EventSeatFinished:
		return fmt.Sprintf("%s finished #%d", who, e.Rank)
	case EventForfeited:
		return who + " forfeited"
	case EventDisconnected:
		return who + " disconnected"
	case EventGameEnded:
		return "Game over"
	case EventGameAbandoned:
		return "Game abandoned"
	case EventRoomReset:
		return "Back to seating"
	default:
		return string(e.Kind)
	}
}
