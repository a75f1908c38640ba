package app

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tienlen/internal/domain"
	"tienlen/internal/ports"
)

// manualScheduler queues callbacks until the test runs them.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*scheduledTask
}

type scheduledTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

func (m *manualScheduler) After(d time.Duration, fn func()) ports.Cancel {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &scheduledTask{delay: d, fn: fn}
	m.pending = append(m.pending, t)
	return func() {
		m.mu.Lock()
		t.cancelled = true
		m.mu.Unlock()
	}
}

// RunNext fires the oldest live callback. It reports false when nothing is queued.
func (m *manualScheduler) RunNext() bool {
	m.mu.Lock()
	for len(m.pending) > 0 {
		t := m.pending[0]
		m.pending = m.pending[1:]
		if t.cancelled {
			continue
		}
		m.mu.Unlock()
		t.fn()
		return true
	}
	m.mu.Unlock()
	return false
}

// RunUntilIdle fires callbacks, including ones they schedule, up to limit.
func (m *manualScheduler) RunUntilIdle(limit int) int {
	n := 0
	for n < limit && m.RunNext() {
		n++
	}
	return n
}

// Live counts callbacks that have not been cancelled.
func (m *manualScheduler) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type recordingPublisher struct {
	mu    sync.Mutex
	snaps []domain.Snapshot
}

func (p *recordingPublisher) Publish(_ string, snap domain.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
}

func (p *recordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snaps)
}

func (p *recordingPublisher) Last() domain.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snaps[len(p.snaps)-1]
}

// singlesAI leads its lowest card and answers with the lowest single that beats the board.
type singlesAI struct {
	mu      sync.Mutex
	n       int
	decided int
}

func (a *singlesAI) Recruit(persona string) domain.Occupant {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.n++
	if persona == "" {
		persona = "steady"
	}
	return domain.AIOccupant(fmt.Sprintf("ai-%d", a.n), fmt.Sprintf("Bot %d", a.n), persona)
}

func (a *singlesAI) Delay(string) time.Duration { return 10 * time.Millisecond }

func (a *singlesAI) Decide(r *domain.Room, seat int) ports.AIMove {
	a.mu.Lock()
	a.decided++
	a.mu.Unlock()
	cards, pass := singlesMove(r, seat)
	return ports.AIMove{Pass: pass, Cards: cards}
}

// singlesMove is a minimal legal policy used to drive whole games in tests.
func singlesMove(r *domain.Room, seat int) ([]domain.Card, bool) {
	if r.InitialPlayPending {
		return []domain.Card{r.LowestDealtCard}, false
	}
	hand := r.Hands[seat]
	last := r.LastPlay(seat)
	for i := len(hand) - 1; i >= 0; i-- {
		single := []domain.Card{hand[i]}
		if domain.Beats(domain.Classify(single), last) {
			return single, false
		}
	}
	return nil, true
}

type staticDirectory map[string]ports.Profile

func (d staticDirectory) Lookup(id string) (ports.Profile, bool) {
	p, ok := d[id]
	return p, ok
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type testRig struct {
	sched *manualScheduler
	pub   *recordingPublisher
	ai    *singlesAI
	clock *testClock
	deps  Deps
	opts  Options
}

func newRig(seed int64) *testRig {
	rig := &testRig{
		sched: &manualScheduler{},
		pub:   &recordingPublisher{},
		ai:    &singlesAI{},
		clock: &testClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	rig.deps = Deps{
		Publisher:  rig.pub,
		Scheduler:  rig.sched,
		AI:         rig.ai,
		Identities: staticDirectory{"alice": {DisplayName: "Alice", Color: "#f00"}},
		Logger:     quietLogger(),
		Clock:      rig.clock.Now,
		NewRand:    func() *rand.Rand { return rand.New(rand.NewSource(seed)) },
	}
	rig.opts = DefaultOptions()
	return rig
}

// seatedRoom builds an active room with fixed hands, bypassing the deal.
func seatedRoom(hands map[int][]string, turn int) *domain.Room {
	r := domain.NewRoom("test")
	for seat, ids := range hands {
		r.Seats[seat] = domain.HumanOccupant(fmt.Sprintf("p%d", seat), fmt.Sprintf("P%d", seat))
		r.Hands[seat] = domain.SortedDesc(domain.MustParseCards(ids...))
		r.StartingPlayers++
	}
	r.Stage = domain.StageActive
	r.TurnIndex = turn
	return r
}
