package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys recognized by ApplyEnv.
const (
	EnvBotsEnabled     = "tienlen_bots_enabled"
	EnvAIDelayScale    = "tienlen_ai_delay_scale"
	EnvSettleDelayMs   = "tienlen_settle_delay_ms"
	EnvMinPlayers      = "tienlen_min_players"
	EnvRoomIdleSeconds = "tienlen_room_idle_timeout_seconds"
	EnvAutoFillSeconds = "tienlen_bot_auto_fill_delay_sec"
	EnvVivoxSecret     = "vivox_secret"
	EnvVivoxIssuer     = "vivox_issuer"
	EnvVivoxDomain     = "vivox_domain"
)

type VoiceConfig struct {
	Secret string `json:"secret"`
	Issuer string `json:"issuer"`
	Domain string `json:"domain"`
}

// Enabled reports whether every field needed to sign tokens is present.
func (v VoiceConfig) Enabled() bool {
	return v.Secret != "" && v.Issuer != "" && v.Domain != ""
}

type GameConfig struct {
	MinPlayersToStart      int  `json:"min_players_to_start"`
	SettleDelayMs          int  `json:"settle_delay_ms"`
	RoomIdleTimeoutSeconds int  `json:"room_idle_timeout_seconds"`
	BotsEnabled            bool `json:"bots_enabled"`
	BotAutoFillSeconds     int  `json:"bot_auto_fill_seconds"` // lone human wait before AI fills the table
	// AIDelayScale multiplies every persona delay. 0 makes AI seats act on the next tick.
	AIDelayScale    float64     `json:"ai_delay_scale"`
	DefaultPersonas []string    `json:"default_personas"`
	Voice           VoiceConfig `json:"voice"`
}

// Default returns the configuration used when no file is present.
func Default() GameConfig {
	return GameConfig{
		MinPlayersToStart:      2,
		SettleDelayMs:          3000,
		RoomIdleTimeoutSeconds: 600,
		BotsEnabled:            true,
		BotAutoFillSeconds:     5,
		AIDelayScale:           1.0,
		DefaultPersonas:        []string{"steady", "adaptive", "blocker"},
	}
}

// SettleDelay is the pause between the last rank being assigned and the room returning to seating.
func (c GameConfig) SettleDelay() time.Duration {
	return time.Duration(c.SettleDelayMs) * time.Millisecond
}

// RoomIdleTimeout is how long a room may sit without activity before it is reaped.
func (c GameConfig) RoomIdleTimeout() time.Duration {
	return time.Duration(c.RoomIdleTimeoutSeconds) * time.Second
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
// A missing file is not an error; defaults are used instead.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		c := Default()
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				cfg = &c
				return
			}
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, or defaults if none was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Default()
	}
	return *cfg
}

// LoadEnv reads .env style files into the process environment and applies overrides to c.
// Missing files are ignored.
func LoadEnv(c GameConfig, files ...string) (GameConfig, error) {
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return c, fmt.Errorf("failed to load env files: %w", err)
		}
	}
	return ApplyEnv(c, os.Getenv)
}

// ApplyEnv overrides fields from environment-style keys. Nakama passes its runtime env as a map,
// so lookup is a function rather than os.Getenv directly.
func ApplyEnv(c GameConfig, lookup func(string) string) (GameConfig, error) {
	get := func(key string) string { return strings.TrimSpace(lookup(key)) }

	if v := get(EnvBotsEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s: %w", EnvBotsEnabled, err)
		}
		c.BotsEnabled = b
	}
	if v := get(EnvAIDelayScale); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return c, fmt.Errorf("invalid %s: %q", EnvAIDelayScale, v)
		}
		c.AIDelayScale = f
	}
	ints := []struct {
		key string
		dst *int
	}{
		{EnvSettleDelayMs, &c.SettleDelayMs},
		{EnvMinPlayers, &c.MinPlayersToStart},
		{EnvRoomIdleSeconds, &c.RoomIdleTimeoutSeconds},
		{EnvAutoFillSeconds, &c.BotAutoFillSeconds},
	}
	for _, it := range ints {
		v := get(it.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c, fmt.Errorf("invalid %s: %q", it.key, v)
		}
		*it.dst = n
	}
	if v := get(EnvVivoxSecret); v != "" {
		c.Voice.Secret = v
	}
	if v := get(EnvVivoxIssuer); v != "" {
		c.Voice.Issuer = v
	}
	if v := get(EnvVivoxDomain); v != "" {
		c.Voice.Domain = v
	}
	return c, nil
}

// MapLookup adapts an env map to ApplyEnv.
func MapLookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}
