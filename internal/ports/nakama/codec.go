package nakama

import (
	"errors"
	"fmt"

	"tienlen/internal/app"
	"tienlen/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

var errBadRequest = errors.New("malformed request")

// request is a decoded client message. Every op shares the same loose JSON envelope.
type request struct {
	Seat     int
	Stage    domain.Stage
	Cards    []string
	Personas []string
}

func decodeRequest(data []byte) (request, error) {
	req := request{Seat: -1}
	if len(data) == 0 {
		return req, nil
	}
	msg := &structpb.Struct{}
	if err := protojson.Unmarshal(data, msg); err != nil {
		return req, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	fields := msg.GetFields()
	if v, ok := fields["seat"]; ok {
		n := v.GetNumberValue()
		if n != float64(int(n)) {
			return req, fmt.Errorf("%w: seat must be an integer", errBadRequest)
		}
		req.Seat = int(n)
	}
	req.Stage = domain.Stage(fields["stage"].GetStringValue())
	var err error
	if req.Cards, err = stringList(fields["cards"]); err != nil {
		return req, err
	}
	if req.Personas, err = stringList(fields["personas"]); err != nil {
		return req, err
	}
	return req, nil
}

func stringList(v *structpb.Value) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("%w: expected a list", errBadRequest)
	}
	out := make([]string, 0, len(list.GetValues()))
	for _, item := range list.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%w: expected a list of strings", errBadRequest)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

func anyList(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// encodeSnapshot renders snap for viewer. Only the viewer's own hand is included.
func encodeSnapshot(snap domain.Snapshot, viewer string) ([]byte, error) {
	seats := make([]interface{}, 0, len(snap.Seats))
	for _, s := range snap.Seats {
		seats = append(seats, map[string]interface{}{
			"index":       s.Index,
			"kind":        s.Kind,
			"id":          s.ID,
			"displayName": s.DisplayName,
			"color":       s.Color,
			"persona":     s.Persona,
			"cardCount":   s.CardCount,
			"rank":        s.Rank,
			"last":        s.Last,
		})
	}
	stats := make(map[string]interface{}, len(snap.Stats))
	for id, st := range snap.Stats {
		placements := make(map[string]interface{}, len(st.Placements))
		for rank, n := range st.Placements {
			placements[fmt.Sprint(rank)] = n
		}
		stats[id] = map[string]interface{}{
			"games":       st.Games,
			"playerGames": st.PlayerGames,
			"points":      st.Points,
			"wins":        st.Wins,
			"bombs":       st.Bombs,
			"placements":  placements,
		}
	}

	msg, err := structpb.NewStruct(map[string]interface{}{
		"roomId":             snap.RoomID,
		"name":               snap.Name,
		"version":            float64(snap.Version),
		"stage":              string(snap.Stage),
		"turnIndex":          snap.TurnIndex,
		"seats":              seats,
		"hand":               anyList(snap.HandFor(viewer)),
		"board":              anyList(snap.Board),
		"boardPlay":          snap.BoardPlay,
		"freePlay":           snap.FreePlay,
		"initialPlayPending": snap.InitialPlayPending,
		"lowestDealtCard":    snap.LowestDealtCard,
		"startingPlayers":    snap.StartingPlayers,
		"discardCount":       snap.DiscardCount,
		"stats":              stats,
		"lastAction":         snap.LastAction,
		"errored":            snap.Errored,
	})
	if err != nil {
		return nil, err
	}
	return protojson.Marshal(msg)
}

func errorCode(err error) string {
	if errors.Is(err, errBadRequest) {
		return "bad_request"
	}
	return app.ErrorCode(err)
}

func encodeError(op int64, err error) ([]byte, error) {
	msg, mErr := structpb.NewStruct(map[string]interface{}{
		"op":      float64(op),
		"code":    errorCode(err),
		"message": err.Error(),
	})
	if mErr != nil {
		return nil, mErr
	}
	return protojson.Marshal(msg)
}

// matchLabel is what quick_match filters on.
func matchLabel(snap domain.Snapshot) (string, error) {
	open := 0
	for _, s := range snap.Seats {
		if s.Kind == domain.OccupantEmpty.String() {
			open++
		}
	}
	msg, err := structpb.NewStruct(map[string]interface{}{
		"game":  "tienlen",
		"open":  open,
		"phase": string(snap.Stage),
		"room":  snap.Name,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(msg)
	return string(b), err
}
