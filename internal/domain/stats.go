package domain

// PlayerStats accumulates per-identity results across games in a room.
type PlayerStats struct {
	Games       int         `json:"games"`
	PlayerGames int         `json:"playerGames"` // sum of table sizes over games played
	Points      int         `json:"points"`
	Wins        int         `json:"wins"`
	Placements  map[int]int `json:"placements"` // rank -> count
	Bombs       int         `json:"bombs"`
}

// NewPlayerStats returns zeroed stats.
func NewPlayerStats() *PlayerStats {
	return &PlayerStats{Placements: make(map[int]int)}
}

// RecordFinish books a finishing rank in a game of startingPlayers seats.
// Points are startingPlayers - rank + 1.
func (s *PlayerStats) RecordFinish(rank, startingPlayers int) {
	if s.Placements == nil {
		s.Placements = make(map[int]int)
	}
	s.Games++
	s.PlayerGames += startingPlayers
	s.Points += startingPlayers - rank + 1
	s.Placements[rank]++
	if rank == 1 {
		s.Wins++
	}
}

// Clone returns an independent copy.
func (s *PlayerStats) Clone() PlayerStats {
	out := *s
	out.Placements = make(map[int]int, len(s.Placements))
	for k, v := range s.Placements {
		out.Placements[k] = v
	}
	return out
}
