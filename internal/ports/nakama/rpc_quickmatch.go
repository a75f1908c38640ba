package nakama

import (
	"context"
	"database/sql"
	"fmt"

	"tienlen/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcVoiceToken, rpcVoiceToken)
}

// quickMatchQuery finds tables that are still seating and have at least one empty seat.
var quickMatchQuery = fmt.Sprintf("+label.game:tienlen +label.phase:%s +label.open:>=1", domain.StageSeating)

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true
	minSize := 1
	maxSize := domain.SeatCount - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery)
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: MatchList error: %v", userID, err)
		return "", err
	}
	if len(matches) > 0 {
		logger.Info("rpcQuickMatch [User:%s]: Found existing match %s", userID, matches[0].MatchId)
		return quickMatchResponse(matches[0].MatchId, false)
	}

	// Seat assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchNameTienLen, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: MatchCreate error: %v", userID, err)
		return "", err
	}
	logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, matchID)
	return quickMatchResponse(matchID, true)
}

func quickMatchResponse(matchID string, isNew bool) (string, error) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"match_id": matchID,
		"is_new":   isNew,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(msg)
	return string(b), err
}
