package domain

// SeatView is the public view of one seat.
type SeatView struct {
	Index       int    `json:"index"`
	Kind        string `json:"kind"`
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Color       string `json:"color,omitempty"`
	Persona     string `json:"persona,omitempty"`
	CardCount   int    `json:"cardCount"`
	Rank        int    `json:"rank,omitempty"`
	// Last is "", "pass", or the display name of the seat's last play.
	Last string `json:"last,omitempty"`
}

// Snapshot is an immutable copy of a room's state handed to publishers.
// Hands holds every seat's card ids; transports must redact it per recipient.
type Snapshot struct {
	RoomID             string                 `json:"roomId"`
	Name               string                 `json:"name"`
	Version            uint64                 `json:"version"`
	Stage              Stage                  `json:"stage"`
	TurnIndex          int                    `json:"turnIndex"`
	Seats              [SeatCount]SeatView    `json:"seats"`
	Hands              [SeatCount][]string    `json:"-"`
	Board              []string               `json:"board"`
	BoardPlay          string                 `json:"boardPlay,omitempty"`
	FreePlay           bool                   `json:"freePlay"`
	InitialPlayPending bool                   `json:"initialPlayPending"`
	LowestDealtCard    string                 `json:"lowestDealtCard,omitempty"`
	StartingPlayers    int                    `json:"startingPlayers"`
	DiscardCount       int                    `json:"discardCount"`
	Stats              map[string]PlayerStats `json:"stats"`
	LastAction         string                 `json:"lastAction,omitempty"`
	Errored            bool                   `json:"errored,omitempty"`
}

// HandFor returns the card ids visible to identity id, or nil when id is not seated.
func (s Snapshot) HandFor(id string) []string {
	for i, seat := range s.Seats {
		if id != "" && seat.ID == id {
			return s.Hands[i]
		}
	}
	return nil
}
