package bot

import (
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienlen/internal/app"
	"tienlen/internal/domain"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDirectorRecruit(t *testing.T) {
	d := NewDirector(1, quietLogger())

	occ := d.Recruit("gambler")
	assert.True(t, strings.HasPrefix(occ.ID, "ai-"))
	assert.Equal(t, "gambler", occ.Persona)
	assert.Equal(t, "Lucky Lou", occ.DisplayName)
	assert.True(t, occ.IsAI())

	other := d.Recruit("gambler")
	assert.NotEqual(t, occ.ID, other.ID)

	fallback := d.Recruit("nobody")
	assert.Equal(t, DefaultPersona, fallback.Persona)

	custom := NewDirector(1, quietLogger()).WithIdentities([]BotIdentity{{DisplayName: "Zed", Persona: "blocker"}})
	assert.Equal(t, "Zed", custom.Recruit("blocker").DisplayName)
	assert.Equal(t, "AI Player 1", custom.Recruit("steady").DisplayName)
}

func TestDirectorDelayFollowsPersona(t *testing.T) {
	d := NewDirector(7, quietLogger())
	for i := 0; i < 20; i++ {
		got := d.Delay("aggressive")
		assert.GreaterOrEqual(t, got, aggressive.MinDelay)
		assert.LessOrEqual(t, got, aggressive.MaxDelay)
	}
}

// Every persona's move must be accepted by the rules engine for an entire game.
func TestPersonasPlayLegalGames(t *testing.T) {
	tables := [][]string{
		{"steady", "cautious", "aggressive", "sequencer"},
		{"adaptive", "gambler", "blocker", "counter"},
		{"counter", "sequencer", "cautious"},
		{"gambler", "adaptive"},
	}
	for seed := int64(1); seed <= 5; seed++ {
		for _, table := range tables {
			svc := app.NewService(rand.New(rand.NewSource(seed)))
			d := NewDirector(seed, quietLogger())
			r := domain.NewRoom("sim")
			for seat, persona := range table {
				r.Seats[seat] = d.Recruit(persona)
			}
			_, err := svc.StartGame(r)
			require.NoError(t, err)

			for steps := 0; r.Stage == domain.StageActive; steps++ {
				require.Less(t, steps, 2000, "game did not finish")
				seat := r.TurnIndex
				move := d.Decide(r, seat)
				if move.Pass {
					_, err = svc.PassTurn(r, seat)
				} else {
					_, err = svc.PlayCards(r, seat, move.Cards)
				}
				require.NoError(t, err, "seed %d table %v seat %d (%s)", seed, table, seat, r.Seats[seat].Persona)
			}
			assert.Equal(t, domain.StageFinished, r.Stage)
			for seat := range table {
				assert.NotZero(t, r.Ranks[seat])
			}
		}
	}
}
