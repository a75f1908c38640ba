package app

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienlen/internal/domain"
)

// Real timers fire AI turns on their own goroutines while several callers act for the
// human seat and read the room at the same time.
func TestConcurrentCallersAgainstTimerDrivenAI(t *testing.T) {
	rig := newRig(21)
	rig.deps.Scheduler = TimerScheduler{}
	rig.opts.SettleDelay = 20 * time.Millisecond
	room := NewRoom("busy", rig.deps, rig.opts)
	defer room.Close()

	_, err := room.ChooseSeat("alice", 0)
	require.NoError(t, err)
	_, err = room.FillWithAI(nil)
	require.NoError(t, err)
	_, err = room.SetStage(domain.StageActive)
	require.NoError(t, err)

	deadline := time.Now().Add(15 * time.Second)
	settled := func() bool {
		snap := room.Snapshot()
		return snap.Stage == domain.StageSeating && snap.Stats["alice"].Games == 1
	}
	running := func() bool { return !settled() && time.Now().Before(deadline) }

	var (
		wg         sync.WaitGroup
		lostCards  atomic.Int32
		activeSeen atomic.Int32
	)
	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for running() {
				snap := room.Snapshot()
				if snap.Stage != domain.StageActive || snap.Seats[snap.TurnIndex].ID != "alice" {
					runtime.Gosched()
					continue
				}
				if snap.InitialPlayPending {
					_, _ = room.SubmitPlay("alice", []string{snap.LowestDealtCard})
					continue
				}
				played := false
				hand := snap.HandFor("alice")
				for i := len(hand) - 1; i >= 0 && !played; i-- {
					_, err := room.SubmitPlay("alice", hand[i:i+1])
					played = err == nil
				}
				if !played {
					_, _ = room.Pass("alice")
				}
			}
		}()
	}
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for running() {
				room.Inspect(func(s *domain.Room) {
					if s.Stage != domain.StageActive {
						return
					}
					activeSeen.Add(1)
					if s.CardsInPlay() != domain.DeckSize {
						lostCards.Add(1)
					}
				})
				_ = room.Snapshot()
				runtime.Gosched()
			}
		}()
	}
	wg.Wait()

	require.True(t, settled(), "game never returned to seating")
	final := room.Snapshot()
	assert.False(t, final.Errored)
	assert.Positive(t, activeSeen.Load())
	assert.Zero(t, lostCards.Load(), "cards went missing while active")
	for i, seat := range final.Seats {
		assert.Zero(t, seat.CardCount, "seat %d", i)
	}
}
