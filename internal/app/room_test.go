package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienlen/internal/domain"
)

func TestRoomPublishesEveryChange(t *testing.T) {
	rig := newRig(3)
	room := NewRoom("lobby", rig.deps, rig.opts)

	snap, err := room.ChooseSeat("alice", 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, "Alice", snap.Seats[0].DisplayName)
	assert.Equal(t, "#f00", snap.Seats[0].Color)
	assert.Equal(t, "human", snap.Seats[0].Kind)
	assert.Equal(t, 1, rig.pub.Count())

	_, err = room.ChooseSeat("bob", 0)
	assert.ErrorIs(t, err, ErrSeatTaken)
	assert.Equal(t, 1, rig.pub.Count(), "rejected actions publish nothing")

	snap, err = room.SetStage(domain.StageSeating)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version, "same-stage request is a no-op")
}

func TestRoomRejectsInvalidPlayWithoutMutation(t *testing.T) {
	rig := newRig(5)
	room := NewRoom("t", rig.deps, rig.opts)
	_, err := room.ChooseSeat("alice", 0)
	require.NoError(t, err)
	_, err = room.ChooseSeat("bob", 1)
	require.NoError(t, err)
	before, err := room.SetStage(domain.StageActive)
	require.NoError(t, err)

	actor := before.Seats[before.TurnIndex].ID
	other := before.Seats[1-before.TurnIndex].ID

	_, err = room.SubmitPlay(other, before.HandFor(other)[:1])
	assert.ErrorIs(t, err, domain.ErrNotYourTurn)
	_, err = room.SubmitPlay(actor, []string{"zz"})
	assert.ErrorIs(t, err, ErrUnknownCard)
	_, err = room.Pass("carol")
	assert.ErrorIs(t, err, ErrNotSeated)

	after := room.Snapshot()
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.Hands, after.Hands)

	snap, err := room.SubmitPlay(actor, []string{before.LowestDealtCard})
	require.NoError(t, err)
	assert.Equal(t, []string{before.LowestDealtCard}, snap.Board)
	assert.Equal(t, "Single", snap.BoardPlay)
	assert.Contains(t, snap.LastAction, "played Single")
}

func TestAIOnlyGameRunsToCompletionAndSettles(t *testing.T) {
	rig := newRig(11)
	rig.opts.SettleDelay = 0
	room := NewRoom("bots", rig.deps, rig.opts)

	snap, err := room.FillWithAI([]string{"steady", "gambler"})
	require.NoError(t, err)
	for _, seat := range snap.Seats {
		assert.Equal(t, "ai", seat.Kind)
	}
	assert.Equal(t, "gambler", snap.Seats[1].Persona)

	_, err = room.SetStage(domain.StageActive)
	require.NoError(t, err)

	ran := 0
	for room.Snapshot().Stage == domain.StageActive {
		require.True(t, rig.sched.RunNext(), "an AI turn must always be pending")
		ran++
		require.Less(t, ran, 1000)
	}
	assert.Equal(t, domain.StageFinished, room.Snapshot().Stage)

	require.True(t, rig.sched.RunNext(), "settle is scheduled")
	final := room.Snapshot()
	assert.Equal(t, domain.StageSeating, final.Stage)
	assert.Len(t, final.Stats, 4)
	points := 0
	for _, st := range final.Stats {
		assert.Equal(t, 1, st.Games)
		points += st.Points
	}
	assert.Equal(t, 4+3+2+1, points)
}

func TestStaleAITurnIsIgnored(t *testing.T) {
	rig := newRig(2)
	room := NewRoom("t", rig.deps, rig.opts)
	_, err := room.FillWithAI(nil)
	require.NoError(t, err)
	_, err = room.SetStage(domain.StageActive)
	require.NoError(t, err)
	require.Equal(t, 1, rig.sched.Live())

	// Aborting cancels the pending turn; a stale callback that still fires must not act.
	_, err = room.SetStage(domain.StageSeating)
	require.NoError(t, err)
	assert.Equal(t, 0, rig.sched.Live())

	room.Inspect(func(s *domain.Room) {
		assert.Equal(t, domain.StageSeating, s.Stage)
	})
	version := room.Snapshot().Version
	room.runAITurn(turnKey{stage: domain.StageActive, seat: 0, occupant: "ai-1", version: version - 1})
	assert.Equal(t, version, room.Snapshot().Version)
	assert.Equal(t, 0, rig.ai.decided)
}

func TestMixedTableGameCompletes(t *testing.T) {
	rig := newRig(9)
	room := NewRoom("t", rig.deps, rig.opts)
	_, err := room.ChooseSeat("alice", 0)
	require.NoError(t, err)
	_, err = room.FillWithAI(nil)
	require.NoError(t, err)
	_, err = room.SetStage(domain.StageActive)
	require.NoError(t, err)

	for i := 0; ; i++ {
		require.Less(t, i, 2000)
		snap := room.Snapshot()
		if snap.Stage != domain.StageActive {
			break
		}
		if snap.TurnIndex != 0 {
			require.True(t, rig.sched.RunNext())
			continue
		}

		assert.Equal(t, 0, rig.sched.Live(), "no AI turn is pending while a human acts")
		hand := snap.HandFor("alice")
		switch {
		case snap.InitialPlayPending:
			_, err = room.SubmitPlay("alice", []string{snap.LowestDealtCard})
		case snap.FreePlay:
			_, err = room.SubmitPlay("alice", []string{hand[len(hand)-1]})
		default:
			_, err = room.Pass("alice")
		}
		require.NoError(t, err)
	}
	assert.Equal(t, domain.StageFinished, room.Snapshot().Stage)
	assert.NotZero(t, room.Snapshot().Seats[0].Rank)
}

func TestRoomFlagsStateInvariantViolations(t *testing.T) {
	rig := newRig(1)
	room := NewRoom("t", rig.deps, rig.opts)

	_, err := room.mutate(func(*domain.Room) ([]Event, error) {
		return nil, ErrNoEligibleNextPlayer
	})
	assert.ErrorIs(t, err, ErrStateInvariant)
	assert.True(t, room.Snapshot().Errored)
	assert.Equal(t, 1, rig.pub.Count(), "errored state is still published")

	_, err = room.ChooseSeat("alice", 0)
	assert.ErrorIs(t, err, ErrRoomErrored)
}

func TestDisconnectDuringGameKeepsPlaceholder(t *testing.T) {
	rig := newRig(4)
	room := NewRoom("t", rig.deps, rig.opts)
	_, err := room.ChooseSeat("alice", 2)
	require.NoError(t, err)
	_, err = room.FillWithAI(nil)
	require.NoError(t, err)
	_, err = room.SetStage(domain.StageActive)
	require.NoError(t, err)

	snap, err := room.Disconnect("alice")
	require.NoError(t, err)
	assert.Equal(t, "disconnected", snap.Seats[2].Kind)
	assert.Equal(t, "alice", snap.Seats[2].ID)

	snap, err = room.Rejoin("alice")
	require.NoError(t, err)
	assert.Equal(t, "human", snap.Seats[2].Kind)

	_, err = room.Disconnect("nobody")
	assert.NoError(t, err)
}
