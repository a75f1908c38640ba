package nakama

import (
	"context"
	"database/sql"
	"errors"

	"tienlen/internal/app/voice"
	"tienlen/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// rpcVoiceToken signs a voice token for the caller.
// Payload: {"action": "login"|"join", "match_id": "..."}; match_id is required for join.
func rpcVoiceToken(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("authentication required", 16) // UNAUTHENTICATED
	}

	req := &structpb.Struct{}
	if payload != "" {
		if err := protojson.Unmarshal([]byte(payload), req); err != nil {
			return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
		}
	}
	action := req.GetFields()["action"].GetStringValue()
	if action == "" {
		action = voice.ActionLogin
	}
	matchID := req.GetFields()["match_id"].GetStringValue()

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.ApplyEnv(config.GetGameConfig(), config.MapLookup(env))
	if err != nil {
		logger.Error("rpcVoiceToken: bad runtime env: %v", err)
		return "", runtime.NewError("voice is not configured", 9) // FAILED_PRECONDITION
	}

	token, err := voice.NewIssuer(cfg.Voice).Token(userID, action, matchID)
	switch {
	case errors.Is(err, voice.ErrNotConfigured):
		return "", runtime.NewError("voice is not configured", 9) // FAILED_PRECONDITION
	case errors.Is(err, voice.ErrRoomRequired), errors.Is(err, voice.ErrUnsupportedVerb):
		return "", runtime.NewError(err.Error(), 3) // INVALID_ARGUMENT
	case err != nil:
		logger.Error("rpcVoiceToken [User:%s]: %v", userID, err)
		return "", runtime.NewError("failed to sign token", 13) // INTERNAL
	}

	msg, err := structpb.NewStruct(map[string]interface{}{"token": token})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(msg)
	return string(b), err
}
