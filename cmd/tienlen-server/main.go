// Command tienlen-server hosts rooms over plain websockets, without Nakama.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"tienlen/internal/app"
	"tienlen/internal/app/identity"
	"tienlen/internal/bot"
	"tienlen/internal/config"
	"tienlen/internal/ports/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "listen address")
		cfgPath    = flag.String("config", "data/game_config.json", "game config file")
		botsPath   = flag.String("bots", "data/bot_identities.json", "bot identities file")
		envFile    = flag.String("env", ".env", "dotenv file with overrides")
		reapPeriod = flag.Duration("reap", time.Minute, "how often idle rooms are collected")
	)
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := config.LoadGameConfig(*cfgPath); err != nil {
		log.WithError(err).Fatal("load config")
	}
	cfg, err := config.LoadEnv(config.GetGameConfig(), *envFile)
	if err != nil {
		log.WithError(err).Fatal("load env")
	}
	opts := app.OptionsFromConfig(cfg)

	directory := identity.NewDirectory()
	hub := ws.NewHub(log)
	deps := app.Deps{Publisher: hub, Identities: directory, Logger: log}
	if cfg.BotsEnabled {
		director := bot.NewDirector(time.Now().UnixNano(), log)
		if pool, err := bot.LoadIdentities(*botsPath); err != nil {
			log.WithError(err).Warn("using default bot identities")
		} else {
			director.WithIdentities(pool)
		}
		deps.AI = director
	}
	registry := app.NewRegistry(deps, opts)
	srv := ws.NewServer(registry, hub, directory, opts, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Reap(ctx, *reapPeriod)

	httpSrv := &http.Server{Addr: *addr, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	log.WithField("addr", *addr).Info("listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("serve")
	}
}
