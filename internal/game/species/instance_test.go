package species_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/stats"
)

func TestNewInstance_DeterministicExceptID(t *testing.T) {
	sp := validSpecies()

	a, err := species.NewInstance(sp, 5)
	require.NoError(t, err)
	b, err := species.NewInstance(sp, 5)
	require.NoError(t, err)

	assert.NotEqual(t, a.InstanceID, b.InstanceID, "instance IDs must be unique")
	assert.Equal(t, a.Stats, b.Stats, "stats are a pure function of (species, level)")
	assert.Equal(t, a.Abilities, b.Abilities)
	assert.Equal(t, stats.Grown(sp.BaseStats, sp.Growth, 5), a.Stats)
}

func TestNewInstance_AbilityGates(t *testing.T) {
	sp := validSpecies() // ember_spit at 1, venom_bite at 4

	low, err := species.NewInstance(sp, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"ember_spit"}, low.Abilities)

	high, err := species.NewInstance(sp, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"ember_spit", "venom_bite"}, high.Abilities,
		"abilities unlock the moment the level gate is met")
}

func TestNewInstance_Rejects(t *testing.T) {
	_, err := species.NewInstance(nil, 1)
	assert.Error(t, err)
	_, err = species.NewInstance(validSpecies(), 0)
	assert.Error(t, err)
}

func TestInstanceAddExperience_LevelsAndLearns(t *testing.T) {
	sp := validSpecies()
	inst, err := species.NewInstance(sp, 3)
	require.NoError(t, err)

	inst = species.AddExperience(inst, sp, stats.XPToNextLevel(3))

	assert.Equal(t, 4, inst.Level)
	assert.Equal(t, 0, inst.Experience)
	assert.Equal(t, stats.Grown(sp.BaseStats, sp.Growth, 4), inst.Stats)
	assert.Contains(t, inst.Abilities, "venom_bite", "level-up must learn newly gated abilities")
}

// TestInstanceAddExperience_Postcondition mirrors the player progression
// invariant for monsters: leftover experience below the threshold and stats
// matching the growth formula, for arbitrary gain sequences.
func TestInstanceAddExperience_Postcondition(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		sp := validSpecies()
		inst, err := species.NewInstance(sp, 1)
		require.NoError(rt, err)

		for _, g := range rapid.SliceOfN(rapid.IntRange(0, 2000), 1, 15).Draw(rt, "gains") {
			inst = species.AddExperience(inst, sp, g)
		}

		assert.Less(rt, inst.Experience, inst.ExperienceToNext)
		assert.Equal(rt, stats.Grown(sp.BaseStats, sp.Growth, inst.Level), inst.Stats)
	})
}

func TestInstanceAddExperience_IgnoresNegative(t *testing.T) {
	sp := validSpecies()
	inst, err := species.NewInstance(sp, 2)
	require.NoError(t, err)

	got := species.AddExperience(inst, sp, -10)
	assert.Equal(t, inst, got)
}

func TestAddBond_Clamps(t *testing.T) {
	sp := validSpecies()
	inst, err := species.NewInstance(sp, 1)
	require.NoError(t, err)

	inst = species.AddBond(inst, 60)
	assert.Equal(t, 60, inst.Bond)
	inst = species.AddBond(inst, 200)
	assert.Equal(t, species.MaxBond, inst.Bond, "bond caps at the maximum")
	inst = species.AddBond(inst, -500)
	assert.Equal(t, 0, inst.Bond, "bond floors at zero")
}

func TestWithNickname(t *testing.T) {
	sp := validSpecies()
	inst, err := species.NewInstance(sp, 1)
	require.NoError(t, err)
	assert.Equal(t, sp.Name, inst.Nickname, "nickname defaults to the species name")

	inst = species.WithNickname(inst, "Cinder")
	assert.Equal(t, "Cinder", inst.Nickname)
	inst = species.WithNickname(inst, "")
	assert.Equal(t, "Cinder", inst.Nickname, "empty rename keeps the current nickname")
}

func TestBondCaptureFactor(t *testing.T) {
	assert.Equal(t, 1.0, species.BondCaptureFactor(0))
	assert.Equal(t, 1.25, species.BondCaptureFactor(species.MaxBond))
	assert.InDelta(t, 1.125, species.BondCaptureFactor(50), 1e-9)
	assert.Equal(t, 1.0, species.BondCaptureFactor(-10), "out-of-range bond is clamped")
	assert.Equal(t, 1.25, species.BondCaptureFactor(500))
}
