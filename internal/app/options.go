package app

import (
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"tienlen/internal/config"
	"tienlen/internal/domain"
	"tienlen/internal/ports"
)

// Options tune room behavior.
type Options struct {
	MinPlayers      int
	SettleDelay     time.Duration
	AIDelayScale    float64
	RoomIdleTimeout time.Duration
	BotsEnabled     bool
	DefaultPersonas []string
}

// OptionsFromConfig maps the game configuration onto room options.
func OptionsFromConfig(c config.GameConfig) Options {
	return Options{
		MinPlayers:      c.MinPlayersToStart,
		SettleDelay:     c.SettleDelay(),
		AIDelayScale:    c.AIDelayScale,
		RoomIdleTimeout: c.RoomIdleTimeout(),
		BotsEnabled:     c.BotsEnabled,
		DefaultPersonas: append([]string(nil), c.DefaultPersonas...),
	}
}

// Deps are the collaborators a room talks to. Nil fields get working defaults.
type Deps struct {
	Publisher  ports.Publisher
	Scheduler  ports.Scheduler
	Identities ports.IdentityDirectory
	AI         ports.AIPlayer
	Logger     logrus.FieldLogger
	Clock      func() time.Time
	// NewRand supplies each room's shuffler.
	NewRand func() *rand.Rand
}

var seedCounter atomic.Int64

func (d Deps) withDefaults() Deps {
	if d.Publisher == nil {
		d.Publisher = ports.PublisherFunc(func(string, domain.Snapshot) {})
	}
	if d.Scheduler == nil {
		d.Scheduler = TimerScheduler{}
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.NewRand == nil {
		d.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano() + seedCounter.Add(1)))
		}
	}
	return d
}
