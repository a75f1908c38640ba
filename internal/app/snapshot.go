package app

import (
	"tienlen/internal/domain"
)

func (r *Room) snapshotLocked() domain.Snapshot {
	s := r.state
	snap := domain.Snapshot{
		RoomID:             r.ID,
		Name:               s.Name,
		Version:            r.version,
		Stage:              s.Stage,
		TurnIndex:          s.TurnIndex,
		Board:              domain.CardIDs(s.Board),
		InitialPlayPending: s.InitialPlayPending,
		StartingPlayers:    s.StartingPlayers,
		DiscardCount:       len(s.Discards),
		Stats:              make(map[string]domain.PlayerStats, len(s.Stats)),
		LastAction:         r.lastAction,
		Errored:            r.errored,
	}
	if len(s.Board) > 0 {
		snap.BoardPlay = domain.Classify(s.Board).DisplayName
	}
	if s.Stage == domain.StageActive {
		snap.FreePlay = s.IsFreePlay(s.TurnIndex)
		snap.LowestDealtCard = s.LowestDealtCard.String()
	}
	for id, st := range s.Stats {
		snap.Stats[id] = st.Clone()
	}

	for i, occ := range s.Seats {
		view := domain.SeatView{
			Index:       i,
			Kind:        occ.Kind.String(),
			ID:          occ.ID,
			DisplayName: occ.DisplayName,
			Persona:     occ.Persona,
			CardCount:   len(s.Hands[i]),
			Rank:        s.Ranks[i],
		}
		if r.deps.Identities != nil && occ.ID != "" {
			if p, ok := r.deps.Identities.Lookup(occ.ID); ok {
				view.Color = p.Color
				if view.DisplayName == "" {
					view.DisplayName = p.DisplayName
				}
			}
		}
		switch entry := s.LastBySeat[i]; entry.Kind {
		case domain.EntryPass:
			view.Last = "pass"
		case domain.EntryPlay:
			view.Last = entry.Play.DisplayName
		}
		snap.Seats[i] = view
		if s.Hands[i] != nil {
			snap.Hands[i] = domain.CardIDs(s.Hands[i])
		}
	}
	return snap
}
