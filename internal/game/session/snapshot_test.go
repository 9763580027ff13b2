package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkerrigan/wildbound/internal/game/session"
)

func TestTakeSnapshot_IsIsolatedFromLaterMutations(t *testing.T) {
	s := newSession(t)
	s, _, err := session.AddMonster(s, monster("m1"), testNow)
	require.NoError(t, err)

	snap := session.TakeSnapshot(s, testNow)
	s = session.AddItem(s, "tonic", 5, testNow.Add(time.Minute))

	assert.Empty(t, snap.Session.Inventory, "the snapshot must not see later changes")
	assert.Len(t, snap.Session.Squad, 1)
}

func TestReconcile_MoreProgressWins(t *testing.T) {
	local := newSession(t)
	remote := newSession(t)
	remote.CompletedQuestIDs = []string{"first_tame"}

	res := session.Reconcile(
		session.TakeSnapshot(local, testNow.Add(time.Hour)),
		session.TakeSnapshot(remote, testNow),
	)

	assert.Equal(t, session.ChoiceRemote, res.Chosen,
		"progress beats recency: the older save with a quest turned in wins")
	assert.True(t, res.Conflict)
	assert.Greater(t, res.RemoteScore, res.LocalScore)
}

func TestReconcile_QuestsDominateLevelsAndGold(t *testing.T) {
	local := newSession(t)
	local.Player.Level = 50
	local.Player.Gold = 100_000

	remote := newSession(t)
	remote.CompletedQuestIDs = []string{"q1"}

	res := session.Reconcile(
		session.TakeSnapshot(local, testNow),
		session.TakeSnapshot(remote, testNow),
	)
	assert.Equal(t, session.ChoiceRemote, res.Chosen,
		"one quest turn-in outweighs any level and gold lead")
}

func TestReconcile_EqualProgressFallsBackToTimestamp(t *testing.T) {
	local := newSession(t)
	remote := newSession(t)

	res := session.Reconcile(
		session.TakeSnapshot(local, testNow),
		session.TakeSnapshot(remote, testNow.Add(time.Minute)),
	)
	assert.Equal(t, session.ChoiceRemote, res.Chosen)
	assert.True(t, res.Conflict)

	res = session.Reconcile(
		session.TakeSnapshot(local, testNow.Add(time.Minute)),
		session.TakeSnapshot(remote, testNow),
	)
	assert.Equal(t, session.ChoiceLocal, res.Chosen)
}

func TestReconcile_FullTieKeepsLocalWithoutConflict(t *testing.T) {
	local := newSession(t)
	remote := newSession(t)

	res := session.Reconcile(
		session.TakeSnapshot(local, testNow),
		session.TakeSnapshot(remote, testNow),
	)
	assert.Equal(t, session.ChoiceLocal, res.Chosen)
	assert.False(t, res.Conflict, "equivalent snapshots are not a conflict")
	assert.Equal(t, res.LocalScore, res.RemoteScore)
}

func TestReconcile_GoldContributionIsCapped(t *testing.T) {
	rich := newSession(t)
	rich.Player.Gold = 1_000_000

	collector := newSession(t)
	collector.Player.Gold = 0
	var err error
	collector, _, err = session.AddMonster(collector, monster("m1"), testNow)
	require.NoError(t, err)

	res := session.Reconcile(
		session.TakeSnapshot(rich, testNow),
		session.TakeSnapshot(collector, testNow),
	)
	assert.Equal(t, session.ChoiceRemote, res.Chosen,
		"a single captured monster outweighs any hoard of gold")
}
