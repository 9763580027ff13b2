package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mkerrigan/wildbound/internal/game/battle"
)

// TestCaptureRate_ReferenceScenario pins the canonical case: a 0.4 device
// against a half-health target of difficulty 1.0 gives exactly 0.2.
func TestCaptureRate_ReferenceScenario(t *testing.T) {
	rate, breakdown := battle.CaptureRate(0.4, 10, 20, 1.0, nil)
	assert.InDelta(t, 0.2, rate, 1e-9)

	sources := make(map[string]float64, len(breakdown))
	for _, m := range breakdown {
		sources[m.Source] = m.Factor
	}
	assert.Equal(t, 0.4, sources["device"])
	assert.InDelta(t, 0.5, sources["target_hp"], 1e-9)
	assert.Equal(t, 1.0, sources["species_difficulty"])
}

func TestCaptureRate_FullHealthIsZero(t *testing.T) {
	rate, _ := battle.CaptureRate(1.0, 20, 20, 1.0, nil)
	assert.Zero(t, rate, "a full-health target cannot be captured")
}

func TestCaptureRate_ClampsHPInputs(t *testing.T) {
	rate, _ := battle.CaptureRate(0.4, -5, 20, 1.0, nil)
	assert.InDelta(t, 0.4, rate, 1e-9, "negative HP reads as zero HP")

	rate, _ = battle.CaptureRate(0.4, 50, 20, 1.0, nil)
	assert.Zero(t, rate, "HP above max reads as full health")
}

func TestCaptureRate_ModifiersMultiply(t *testing.T) {
	mods := []battle.CaptureModifier{
		{Source: "status", Factor: 1.3},
		{Source: "bond", Factor: 1.25},
	}
	rate, breakdown := battle.CaptureRate(0.4, 10, 20, 0.9, mods)
	assert.InDelta(t, 0.4*0.5*0.9*1.3*1.25, rate, 1e-9)
	require.Len(t, breakdown, 5, "breakdown covers the base factors and every modifier")
}

func TestCaptureRate_CapsAtOne(t *testing.T) {
	mods := []battle.CaptureModifier{{Source: "cheat", Factor: 100}}
	rate, _ := battle.CaptureRate(1.0, 1, 20, 1.0, mods)
	assert.Equal(t, 1.0, rate)
}

// TestCaptureRate_OrderIndependent verifies the commutativity the breakdown
// contract promises: reordering modifiers never changes the rate.
func TestCaptureRate_OrderIndependent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 5).Draw(rt, "n")
		mods := make([]battle.CaptureModifier, n)
		for i := range mods {
			mods[i] = battle.CaptureModifier{
				Source: "m",
				Factor: rapid.Float64Range(0.1, 2).Draw(rt, "factor"),
			}
		}
		currentHP := rapid.IntRange(0, 20).Draw(rt, "hp")

		forward, _ := battle.CaptureRate(0.4, currentHP, 20, 0.9, mods)

		reversed := make([]battle.CaptureModifier, n)
		for i := range mods {
			reversed[n-1-i] = mods[i]
		}
		backward, _ := battle.CaptureRate(0.4, currentHP, 20, 0.9, reversed)

		assert.InDelta(rt, forward, backward, 1e-12)
		assert.GreaterOrEqual(rt, forward, 0.0)
		assert.LessOrEqual(rt, forward, 1.0)
	})
}
