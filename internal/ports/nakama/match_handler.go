package nakama

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tienlen/internal/app"
	"tienlen/internal/config"
	"tienlen/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/sirupsen/logrus"
)

var errBotsDisabled = errors.New("AI players are disabled")

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Room      *app.Room
	Presences map[string]runtime.Presence // UserId -> Presence for targeted messaging

	sched *tickScheduler
	pub   *matchPublisher
	label string

	botsEnabled   bool
	personas      []string
	autoFillTicks int64 // 0 disables auto-fill
	loneTicks     int64 // consecutive ticks a single human has waited in seating
	emptyTicks    int64 // consecutive ticks with no presences
}

// seatOf returns userID's seat in snap, or -1.
func seatOf(snap domain.Snapshot, userID string) int {
	for i, s := range snap.Seats {
		if userID != "" && s.ID == userID {
			return i
		}
	}
	return -1
}

// firstEmptySeat returns the lowest empty seat index, or -1.
func firstEmptySeat(snap domain.Snapshot) int {
	for i, s := range snap.Seats {
		if s.Kind == domain.OccupantEmpty.String() {
			return i
		}
	}
	return -1
}

// loneHuman reports whether exactly one human is seated and every other seat is empty.
func loneHuman(snap domain.Snapshot) bool {
	humans := 0
	for _, s := range snap.Seats {
		switch s.Kind {
		case domain.OccupantHuman.String():
			humans++
		case domain.OccupantEmpty.String():
		default:
			return false
		}
	}
	return humans == 1
}

type matchHandler struct {
	mod *module
}

func newMatchHandler(mod *module) *matchHandler {
	return &matchHandler{mod: mod}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	cfg := config.GetGameConfig()
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if withEnv, err := config.ApplyEnv(cfg, config.MapLookup(env)); err != nil {
		logger.Warn("MatchInit: ignoring runtime env overrides: %v", err)
	} else {
		cfg = withEnv
	}

	name := MatchNameTienLen
	if v, ok := params["room"].(string); ok && v != "" {
		name = v
	}
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	sched := newTickScheduler(mh.mod.clock)
	pub := &matchPublisher{}
	deps := app.Deps{
		Publisher:  pub,
		Scheduler:  sched,
		Identities: mh.mod.directory,
		Logger:     mh.mod.log.WithFields(logrus.Fields{"match_id": matchID}),
		Clock:      mh.mod.clock,
	}
	if cfg.BotsEnabled {
		deps.AI = mh.mod.ai
	}

	state := &MatchState{
		Room:          app.NewRoom(name, deps, app.OptionsFromConfig(cfg)),
		Presences:     make(map[string]runtime.Presence),
		sched:         sched,
		pub:           pub,
		botsEnabled:   cfg.BotsEnabled,
		personas:      cfg.DefaultPersonas,
		autoFillTicks: int64(cfg.BotAutoFillSeconds * tickRate),
	}

	label, err := matchLabel(state.Room.Snapshot())
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	state.label = label

	logger.Debug("MatchInit: room %s ready (bots=%t)", name, cfg.BotsEnabled)
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	snap := matchState.Room.Snapshot()
	if seatOf(snap, presence.GetUserId()) >= 0 {
		return matchState, true, ""
	}
	if firstEmptySeat(snap) < 0 {
		return matchState, false, "Match full"
	}
	return matchState, true, ""
}

// MatchJoin seats new presences in the first empty seat and restores returning players into the
// placeholder they left behind.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p
		mh.mod.directory.Register(userID, p.GetUsername())

		snap := matchState.Room.Snapshot()
		var err error
		switch {
		case seatOf(snap, userID) >= 0:
			_, err = matchState.Room.Rejoin(userID)
		case snap.Stage == domain.StageSeating:
			if seat := firstEmptySeat(snap); seat >= 0 {
				_, err = matchState.Room.ChooseSeat(userID, seat)
			}
		}
		if err != nil {
			logger.Warn("MatchJoin: could not seat %s: %v", userID, err)
		}
	}

	mh.flush(matchState, dispatcher, logger)
	// Joiners may have missed every snapshot so far.
	mh.sendSnapshot(matchState, dispatcher, logger, presences...)
	return matchState
}

// MatchLeave turns departures into seat vacancies or mid-game placeholders.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		if _, err := matchState.Room.Disconnect(userID); err != nil {
			logger.Warn("MatchLeave: disconnect %s: %v", userID, err)
		}
	}

	mh.flush(matchState, dispatcher, logger)
	return matchState
}

// MatchLoop fires due room timers, applies client messages, and broadcasts what changed.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.sched.Fire()
	for _, msg := range messages {
		mh.handleMessage(matchState, dispatcher, logger, msg)
	}
	mh.processAutoFill(matchState, logger)
	mh.flush(matchState, dispatcher, logger)

	if len(matchState.Presences) == 0 {
		matchState.emptyTicks++
		if matchState.emptyTicks >= emptyGraceTicks {
			logger.Info("MatchLoop: no players left, terminating match")
			return nil
		}
	} else {
		matchState.emptyTicks = 0
	}
	return matchState
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Room.Close()
	matchState.sched.Stop()
	return matchState
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func (mh *matchHandler) handleMessage(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	userID := msg.GetUserId()
	op := msg.GetOpCode()
	room := state.Room

	req, err := decodeRequest(msg.GetData())
	if err == nil {
		switch op {
		case OpChooseSeat:
			_, err = room.ChooseSeat(userID, req.Seat)
		case OpSetStage:
			if seatOf(room.Snapshot(), userID) < 0 {
				err = app.ErrNotSeated
				break
			}
			_, err = room.SetStage(req.Stage)
		case OpPlayCards:
			_, err = room.SubmitPlay(userID, req.Cards)
		case OpPassTurn:
			_, err = room.Pass(userID)
		case OpForfeit:
			_, err = room.Forfeit(userID)
		case OpFillWithAI:
			if !state.botsEnabled {
				err = errBotsDisabled
				break
			}
			personas := req.Personas
			if len(personas) == 0 {
				personas = state.personas
			}
			_, err = room.FillWithAI(personas)
		case OpRequestSync:
			mh.sendSnapshot(state, dispatcher, logger, msg)
		default:
			err = fmt.Errorf("%w: unknown op code %d", errBadRequest, op)
		}
	}
	if err != nil {
		logger.Debug("handleMessage: op %d from %s rejected: %v", op, userID, err)
		mh.sendError(dispatcher, logger, msg, op, err)
	}
}

// processAutoFill fills the table with AI once a lone human has waited long enough in seating.
func (mh *matchHandler) processAutoFill(state *MatchState, logger runtime.Logger) {
	if !state.botsEnabled || state.autoFillTicks <= 0 {
		return
	}
	snap := state.Room.Snapshot()
	if snap.Stage != domain.StageSeating || !loneHuman(snap) {
		state.loneTicks = 0
		return
	}
	state.loneTicks++
	if state.loneTicks < state.autoFillTicks {
		return
	}
	state.loneTicks = 0
	if _, err := state.Room.FillWithAI(state.personas); err != nil {
		logger.Warn("processAutoFill: %v", err)
	}
}

// flush broadcasts queued snapshots, redacting hands per recipient, and keeps the label current.
func (mh *matchHandler) flush(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	snaps := state.pub.drain()
	for _, snap := range snaps {
		mh.broadcastSnapshot(state, snap, dispatcher, logger)
	}
	if len(snaps) == 0 {
		return
	}
	label, err := matchLabel(snaps[len(snaps)-1])
	if err != nil {
		logger.Error("flush: Failed to marshal label: %v", err)
		return
	}
	if label != state.label {
		if err := dispatcher.MatchLabelUpdate(label); err != nil {
			logger.Warn("flush: label update failed: %v", err)
			return
		}
		state.label = label
	}
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, snap domain.Snapshot, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID, p := range state.Presences {
		data, err := encodeSnapshot(snap, userID)
		if err != nil {
			logger.Error("broadcastSnapshot: encode for %s: %v", userID, err)
			continue
		}
		if err := dispatcher.BroadcastMessage(OpSnapshot, data, []runtime.Presence{p}, nil, true); err != nil {
			logger.Warn("broadcastSnapshot: send to %s: %v", userID, err)
		}
	}
}

func (mh *matchHandler) sendSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, to ...runtime.Presence) {
	snap := state.Room.Snapshot()
	for _, p := range to {
		data, err := encodeSnapshot(snap, p.GetUserId())
		if err != nil {
			logger.Error("sendSnapshot: encode for %s: %v", p.GetUserId(), err)
			continue
		}
		if err := dispatcher.BroadcastMessage(OpSnapshot, data, []runtime.Presence{p}, nil, true); err != nil {
			logger.Warn("sendSnapshot: send to %s: %v", p.GetUserId(), err)
		}
	}
}

func (mh *matchHandler) sendError(dispatcher runtime.MatchDispatcher, logger runtime.Logger, to runtime.Presence, op int64, cause error) {
	data, err := encodeError(op, cause)
	if err != nil {
		logger.Error("sendError: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{to}, nil, true); err != nil {
		logger.Warn("sendError: %v", err)
	}
}
