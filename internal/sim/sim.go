// Package sim plays AI-only games in-process to compare personas.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"tienlen/internal/app"
	"tienlen/internal/bot"
	"tienlen/internal/domain"
)

// ErrGameTimeout is returned when a game does not finish within Options.GameTimeout.
var ErrGameTimeout = errors.New("game did not finish in time")

// Options configure a run.
type Options struct {
	Games  int
	Tables int
	// Personas are seated cyclically across tables and seats. Empty means every registered persona.
	Personas    []string
	Seed        int64
	GameTimeout time.Duration
}

// PersonaResult aggregates every seat a persona played.
type PersonaResult struct {
	Persona    string
	SeatGames  int
	Wins       int
	Points     int
	Bombs      int
	Placements map[int]int
}

// AvgPoints is points per game played.
func (r PersonaResult) AvgPoints() float64 {
	if r.SeatGames == 0 {
		return 0
	}
	return float64(r.Points) / float64(r.SeatGames)
}

// Report is the outcome of Run, best persona first.
type Report struct {
	Games    int
	Elapsed  time.Duration
	Personas []PersonaResult
}

// finishSignals routes "stage finished" publications to the table waiting on that room.
type finishSignals struct {
	mu    sync.Mutex
	rooms map[string]chan struct{}
}

func (f *finishSignals) watch(roomID string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{}, 1)
	f.rooms[roomID] = ch
	return ch
}

func (f *finishSignals) Publish(roomID string, snap domain.Snapshot) {
	if snap.Stage != domain.StageFinished {
		return
	}
	f.mu.Lock()
	ch := f.rooms[roomID]
	f.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Run plays opts.Games games spread over opts.Tables concurrent rooms.
func Run(ctx context.Context, opts Options, log logrus.FieldLogger) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.Tables <= 0 {
		opts.Tables = 1
	}
	if opts.Tables > opts.Games {
		opts.Tables = opts.Games
	}
	if len(opts.Personas) == 0 {
		opts.Personas = bot.Names()
	}
	for _, p := range opts.Personas {
		if _, ok := bot.Lookup(p); !ok {
			return Report{}, fmt.Errorf("unknown persona %q", p)
		}
	}
	if opts.GameTimeout <= 0 {
		opts.GameTimeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	var seq atomic.Int64
	signals := &finishSignals{rooms: make(map[string]chan struct{})}
	registry := app.NewRegistry(app.Deps{
		Publisher: signals,
		AI:        bot.NewDirector(opts.Seed, log),
		Logger:    log,
		NewRand:   func() *rand.Rand { return rand.New(rand.NewSource(opts.Seed + seq.Add(1))) },
	}, app.Options{
		MinPlayers:   domain.SeatCount,
		SettleDelay:  time.Hour,
		AIDelayScale: 0,
		BotsEnabled:  true,
	})

	start := time.Now()
	rooms := make([]*app.Room, 0, opts.Tables)
	defer func() {
		for _, room := range rooms {
			registry.Remove(room.Name())
		}
	}()

	dones := make([]chan struct{}, 0, opts.Tables)
	for t := 0; t < opts.Tables; t++ {
		room := registry.Join(fmt.Sprintf("sim-%d", t))
		rooms = append(rooms, room)
		dones = append(dones, signals.watch(room.ID))

		personas := make([]string, domain.SeatCount)
		for i := range personas {
			personas[i] = opts.Personas[(t*domain.SeatCount+i)%len(opts.Personas)]
		}
		if _, err := room.FillWithAI(personas); err != nil {
			return Report{}, fmt.Errorf("seat table %d: %w", t, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for t, room := range rooms {
		games := 0
		for n := t; n < opts.Games; n += opts.Tables {
			games++
		}
		t, room := t, room
		g.Go(func() error {
			return playTable(gctx, room, dones[t], games, opts.GameTimeout)
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report := Report{Games: opts.Games, Elapsed: time.Since(start), Personas: aggregate(rooms)}
	log.WithFields(logrus.Fields{"games": report.Games, "elapsed": report.Elapsed}).Info("simulation finished")
	return report, nil
}

func playTable(ctx context.Context, room *app.Room, done <-chan struct{}, games int, timeout time.Duration) error {
	for g := 0; g < games; g++ {
		if _, err := room.SetStage(domain.StageActive); err != nil {
			return fmt.Errorf("%s: start game %d: %w", room.Name(), g, err)
		}
		timer := time.NewTimer(timeout)
		select {
		case <-done:
			timer.Stop()
		case <-timer.C:
			return fmt.Errorf("%s: game %d: %w", room.Name(), g, ErrGameTimeout)
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		if snap := room.Snapshot(); snap.Errored {
			return fmt.Errorf("%s: game %d: %w", room.Name(), g, app.ErrRoomErrored)
		}
		if _, err := room.SetStage(domain.StageSeating); err != nil {
			return fmt.Errorf("%s: reset after game %d: %w", room.Name(), g, err)
		}
	}
	return nil
}

func aggregate(rooms []*app.Room) []PersonaResult {
	byPersona := make(map[string]*PersonaResult)
	for _, room := range rooms {
		snap := room.Snapshot()
		for _, seat := range snap.Seats {
			st, ok := snap.Stats[seat.ID]
			if !ok {
				continue
			}
			res, ok := byPersona[seat.Persona]
			if !ok {
				res = &PersonaResult{Persona: seat.Persona, Placements: make(map[int]int)}
				byPersona[seat.Persona] = res
			}
			res.SeatGames += st.Games
			res.Wins += st.Wins
			res.Points += st.Points
			res.Bombs += st.Bombs
			for rank, n := range st.Placements {
				res.Placements[rank] += n
			}
		}
	}

	out := make([]PersonaResult, 0, len(byPersona))
	for _, res := range byPersona {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgPoints() != out[j].AvgPoints() {
			return out[i].AvgPoints() > out[j].AvgPoints()
		}
		return out[i].Persona < out[j].Persona
	})
	return out
}
