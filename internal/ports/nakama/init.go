package nakama

import (
	"context"
	"database/sql"
	"os"
	"time"

	"tienlen/internal/app/identity"
	"tienlen/internal/bot"
	"tienlen/internal/config"
	"tienlen/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/sirupsen/logrus"
)

const (
	gameConfigPath    = "data/game_config.json"
	botIdentitiesPath = "data/bot_identities.json"
)

// module is what every match, RPC and hook in this runtime shares.
type module struct {
	directory *identity.Directory
	ai        ports.AIPlayer
	log       logrus.FieldLogger
	clock     func() time.Time
}

func newModule(log logrus.FieldLogger, ai ports.AIPlayer) *module {
	return &module{
		directory: identity.NewDirectory(),
		ai:        ai,
		log:       log,
		clock:     time.Now,
	}
}

// InitModule wires RPCs, hooks and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("InitModule: Could not load game config: %v", err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})

	director := bot.NewDirector(time.Now().UnixNano(), log)
	if pool, err := bot.LoadIdentities(botIdentitiesPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	} else {
		director.WithIdentities(pool)
	}
	mod := newModule(log, director)

	if err := RegisterRPCs(initializer); err != nil {
		return err
	}
	if err := initializer.RegisterAfterAuthenticateDevice(mod.afterAuthenticateDevice); err != nil {
		return err
	}
	if err := initializer.RegisterMatch(MatchNameTienLen, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(mod), nil
	}); err != nil {
		return err
	}

	logger.Info("TienLen Go module loaded.")
	return nil
}
