package quest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkerrigan/wildbound/internal/game/quest"
)

func TestQuest_Validate(t *testing.T) {
	require.NoError(t, cullQuest().Validate())
	require.NoError(t, tameQuest().Validate())

	q := cullQuest()
	q.ID = ""
	assert.Error(t, q.Validate(), "missing id")

	q = cullQuest()
	q.Objectives = nil
	assert.Error(t, q.Validate(), "a quest needs at least one objective")

	q = cullQuest()
	q.Objectives[0].Trigger = "pet_species"
	assert.Error(t, q.Validate(), "unknown trigger")

	q = cullQuest()
	q.Objectives[0].RequiredCount = 0
	assert.Error(t, q.Validate(), "required count below 1")

	q = cullQuest()
	q.Objectives = append(q.Objectives, q.Objectives[0])
	assert.Error(t, q.Validate(), "duplicate objective ids")

	q = cullQuest()
	q.Rewards.Items = []quest.ItemReward{{ItemID: "tonic", Quantity: 0}}
	assert.Error(t, q.Validate(), "reward quantity below 1")
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first_tame.yaml"), []byte(`
id: first_tame
name: First Tame
objectives:
  - id: capture_any
    trigger: capture_species
    required_count: 1
rewards:
  experience: 50
  gold: 30
  items:
    - item: cage_trap
      quantity: 2
`), 0o644))

	reg, err := quest.LoadDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Len())

	q, ok := reg.Get("first_tame")
	require.True(t, ok)
	require.Len(t, q.Objectives, 1)
	assert.Equal(t, quest.TriggerCaptureSpecies, q.Objectives[0].Trigger)
	assert.Empty(t, q.Objectives[0].TargetID)
	require.Len(t, q.Rewards.Items, 1)
	assert.Equal(t, 2, q.Rewards.Items[0].Quantity)
}

func TestLoadDirectory_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(`
id: bad
name: Bad
repeatable: true
objectives:
  - id: o
    trigger: talk_npc
    required_count: 1
`), 0o644))

	_, err := quest.LoadDirectory(dir)
	require.Error(t, err)
}
