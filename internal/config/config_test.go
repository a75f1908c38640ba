package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvBotsEnabled:     "false",
		EnvAIDelayScale:    "0.5",
		EnvSettleDelayMs:   "250",
		EnvAutoFillSeconds: "0",
		EnvVivoxSecret:     "s3cret",
		EnvVivoxIssuer:     "issuer",
		EnvVivoxDomain:     "example.com",
	}

	c, err := ApplyEnv(Default(), MapLookup(env))
	require.NoError(t, err)
	assert.False(t, c.BotsEnabled)
	assert.Equal(t, 0.5, c.AIDelayScale)
	assert.Equal(t, 250*time.Millisecond, c.SettleDelay())
	assert.True(t, c.Voice.Enabled())
	assert.Equal(t, 2, c.MinPlayersToStart)
	assert.Zero(t, c.BotAutoFillSeconds)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	_, err := ApplyEnv(Default(), MapLookup(map[string]string{EnvSettleDelayMs: "soon"}))
	assert.Error(t, err)

	_, err = ApplyEnv(Default(), MapLookup(map[string]string{EnvAIDelayScale: "-1"}))
	assert.Error(t, err)
}

func TestLoadEnvReadsDotenvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvRoomIdleSeconds+"=42\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv(EnvRoomIdleSeconds) })

	c, err := LoadEnv(Default(), path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 42*time.Second, c.RoomIdleTimeout())
}

func TestDefaultVoiceDisabled(t *testing.T) {
	assert.False(t, Default().Voice.Enabled())
}
