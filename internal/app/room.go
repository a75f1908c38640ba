package app

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tienlen/internal/domain"
	"tienlen/internal/ports"
)

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MinPlayers:      MinPlayersToStartGame,
		SettleDelay:     DefaultSettleDelay,
		AIDelayScale:    1,
		RoomIdleTimeout: 10 * time.Minute,
		BotsEnabled:     true,
	}
}

// turnKey identifies the exact room state an AI callback was scheduled against.
type turnKey struct {
	stage    domain.Stage
	seat     int
	occupant string
	version  uint64
}

// Room is the exclusive access handle for one game session. Every operation takes the room lock,
// so human actions and scheduled AI turns never interleave.
type Room struct {
	ID string

	mu      sync.Mutex
	state   *domain.Room
	svc     *Service
	deps    Deps
	opts    Options
	log     logrus.FieldLogger
	version uint64
	errored bool

	lastAction   string
	gameSeq      uint64
	aiCancel     ports.Cancel
	settleCancel ports.Cancel
}

// NewRoom creates a room in the seating stage.
func NewRoom(name string, deps Deps, opts Options) *Room {
	deps = deps.withDefaults()
	id := uuid.NewString()
	state := domain.NewRoom(name)
	state.LastActivity = deps.Clock()
	return &Room{
		ID:    id,
		state: state,
		svc:   NewService(deps.NewRand()).WithMinPlayers(opts.MinPlayers),
		deps:  deps,
		opts:  opts,
		log:   deps.Logger.WithFields(logrus.Fields{"room": name, "room_id": id}),
	}
}

// Name returns the room's registry name.
func (r *Room) Name() string {
	return r.state.Name
}

// ChooseSeat toggles identityID into seat.
func (r *Room) ChooseSeat(identityID string, seat int) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		return r.svc.ChooseSeat(s, r.human(identityID), seat)
	})
}

// SetStage requests a stage change. seating→active deals a new game, active→seating aborts the
// current one, and finished→seating skips the settle delay.
func (r *Room) SetStage(target domain.Stage) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		switch {
		case s.Stage == target:
			return nil, nil
		case s.Stage == domain.StageSeating && target == domain.StageActive:
			r.gameSeq++
			return r.svc.StartGame(s)
		case target == domain.StageSeating:
			return r.svc.ResetToSeating(s), nil
		default:
			return nil, ErrInvalidStage
		}
	})
}

// SubmitPlay plays cardIDs for identityID.
func (r *Room) SubmitPlay(identityID string, cardIDs []string) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		seat := s.SeatOf(identityID)
		if seat < 0 {
			return nil, ErrNotSeated
		}
		cards, err := domain.ParseCards(cardIDs)
		if err != nil {
			return nil, err
		}
		return r.svc.PlayCards(s, seat, cards)
	})
}

// Pass passes the turn for identityID.
func (r *Room) Pass(identityID string) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		seat := s.SeatOf(identityID)
		if seat < 0 {
			return nil, ErrNotSeated
		}
		return r.svc.PassTurn(s, seat)
	})
}

// Forfeit concedes the current game for identityID.
func (r *Room) Forfeit(identityID string) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		seat := s.SeatOf(identityID)
		if seat < 0 {
			return nil, ErrNotSeated
		}
		return r.svc.Forfeit(s, seat)
	})
}

// Disconnect handles identityID leaving. Unseated identities are ignored.
func (r *Room) Disconnect(identityID string) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		seat := s.SeatOf(identityID)
		if seat < 0 {
			return nil, nil
		}
		return r.svc.Disconnect(s, seat)
	})
}

// Rejoin restores identityID into a seat it left mid-game. It is a no-op otherwise.
func (r *Room) Rejoin(identityID string) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		if s.SeatOf(identityID) < 0 {
			return nil, nil
		}
		return r.svc.Reconnect(s, r.human(identityID))
	})
}

// FillWithAI seats a new AI occupant in every empty seat, cycling through personas.
func (r *Room) FillWithAI(personas []string) (domain.Snapshot, error) {
	return r.mutate(func(s *domain.Room) ([]Event, error) {
		if s.Stage != domain.StageSeating {
			return nil, ErrNotSeating
		}
		if r.deps.AI == nil {
			return nil, nil
		}
		var events []Event
		n := 0
		for seat := range s.Seats {
			if s.IsSeated(seat) {
				continue
			}
			persona := ""
			if len(personas) > 0 {
				persona = personas[n%len(personas)]
			}
			n++
			evs, err := r.svc.ChooseSeat(s, r.deps.AI.Recruit(persona), seat)
			if err != nil {
				return events, err
			}
			events = append(events, evs...)
		}
		return events, nil
	})
}

// Snapshot returns the current state without changing it.
func (r *Room) Snapshot() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Inspect runs fn with the room locked. fn must not retain or modify s.
func (r *Room) Inspect(fn func(s *domain.Room)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.state)
}

// LastActivity reports when the room last changed.
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.LastActivity
}

func (r *Room) touch(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now.After(r.state.LastActivity) {
		r.state.LastActivity = now
	}
}

// Close cancels pending timers. The room must not be used afterwards.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelAI()
	r.cancelSettle()
	r.errored = true
}

func (r *Room) human(identityID string) domain.Occupant {
	occ := domain.HumanOccupant(identityID, "")
	if r.deps.Identities != nil {
		if p, ok := r.deps.Identities.Lookup(identityID); ok {
			occ.DisplayName = p.DisplayName
		}
	}
	return occ
}

// mutate applies op under the room lock and publishes the result. A rejected op leaves the room
// unchanged; a state invariant violation flags the room as errored.
func (r *Room) mutate(op func(s *domain.Room) ([]Event, error)) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.errored {
		return r.snapshotLocked(), ErrRoomErrored
	}
	events, err := op(r.state)
	if err != nil {
		if errors.Is(err, ErrStateInvariant) {
			r.fail(err)
			r.commit(events)
		}
		return r.snapshotLocked(), err
	}
	if len(events) == 0 {
		return r.snapshotLocked(), nil
	}
	return r.commit(events), nil
}

func (r *Room) fail(err error) {
	r.errored = true
	r.cancelAI()
	r.cancelSettle()
	r.log.WithFields(logrus.Fields{
		"stage": r.state.Stage,
		"seat":  r.state.TurnIndex,
		"seats": r.state.Seats,
		"ranks": r.state.Ranks,
	}).WithError(err).Error("room flagged errored")
}

// commit bumps the version, publishes, and schedules whatever the new state calls for.
func (r *Room) commit(events []Event) domain.Snapshot {
	r.version++
	r.state.LastActivity = r.deps.Clock()
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, ev.Describe(r.state))
		r.log.WithFields(logrus.Fields{"event": ev.Kind, "seat": ev.Seat, "stage": r.state.Stage}).Debug("room event")
	}
	if len(lines) > 0 {
		r.lastAction = strings.Join(lines, "; ")
	}

	if !r.errored {
		r.scheduleAI()
		r.scheduleSettle()
	}
	snap := r.snapshotLocked()
	r.deps.Publisher.Publish(r.ID, snap)
	return snap
}

func (r *Room) scheduleAI() {
	r.cancelAI()
	s := r.state
	if s.Stage != domain.StageActive || !domain.ValidSeat(s.TurnIndex) || r.deps.AI == nil {
		return
	}
	occ := s.Seats[s.TurnIndex]
	if !occ.IsAI() {
		return
	}
	key := turnKey{stage: s.Stage, seat: s.TurnIndex, occupant: occ.ID, version: r.version}
	delay := time.Duration(float64(r.deps.AI.Delay(occ.Persona)) * r.opts.AIDelayScale)
	r.aiCancel = r.deps.Scheduler.After(delay, func() { r.runAITurn(key) })
}

func (r *Room) scheduleSettle() {
	if r.state.Stage != domain.StageFinished {
		r.cancelSettle()
		return
	}
	if r.settleCancel != nil {
		return
	}
	seq := r.gameSeq
	r.settleCancel = r.deps.Scheduler.After(r.opts.SettleDelay, func() { r.settle(seq) })
}

func (r *Room) cancelAI() {
	if r.aiCancel != nil {
		r.aiCancel()
		r.aiCancel = nil
	}
}

func (r *Room) cancelSettle() {
	if r.settleCancel != nil {
		r.settleCancel()
		r.settleCancel = nil
	}
}

// runAITurn applies an AI move if the room still matches key. Stale callbacks are no-ops.
func (r *Room) runAITurn(key turnKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.state
	if r.errored || s.Stage != key.stage || s.TurnIndex != key.seat || r.version != key.version ||
		s.Seats[key.seat].ID != key.occupant {
		r.log.WithField("seat", key.seat).Debug("stale AI turn skipped")
		return
	}
	r.aiCancel = nil
	if !s.Seats[key.seat].IsAI() || len(s.Hands[key.seat]) == 0 {
		return
	}

	move := r.deps.AI.Decide(s, key.seat)
	events, err := r.applyAIMove(key.seat, move)
	if err != nil && !errors.Is(err, ErrStateInvariant) {
		r.log.WithFields(logrus.Fields{"seat": key.seat, "persona": s.Seats[key.seat].Persona}).
			WithError(err).Warn("AI move rejected, falling back")
		events, err = r.applyAIMove(key.seat, r.fallbackMove(key.seat))
	}
	if err != nil {
		if errors.Is(err, ErrStateInvariant) {
			r.fail(err)
			r.commit(events)
			return
		}
		r.log.WithField("seat", key.seat).WithError(err).Error("AI fallback rejected")
		return
	}
	r.commit(events)
}

func (r *Room) applyAIMove(seat int, move ports.AIMove) ([]Event, error) {
	if move.Pass {
		return r.svc.PassTurn(r.state, seat)
	}
	return r.svc.PlayCards(r.state, seat, move.Cards)
}

// fallbackMove passes when allowed, otherwise leads the lowest card (the required card on the
// opening play).
func (r *Room) fallbackMove(seat int) ports.AIMove {
	s := r.state
	if !s.IsFreePlay(seat) {
		return ports.AIMove{Pass: true}
	}
	if s.InitialPlayPending {
		return ports.AIMove{Cards: []domain.Card{s.LowestDealtCard}}
	}
	low, _ := domain.LowestCard(s.Hands[seat])
	return ports.AIMove{Cards: []domain.Card{low}}
}

func (r *Room) settle(seq uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settleCancel = nil
	if r.errored || r.gameSeq != seq || r.state.Stage != domain.StageFinished {
		return
	}
	r.commit(r.svc.ResetToSeating(r.state))
}
