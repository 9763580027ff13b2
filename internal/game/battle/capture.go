package battle

import (
	"github.com/mkerrigan/wildbound/internal/game/rng"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/status"
)

// CaptureModifier is one named factor in the capture-rate computation. The
// breakdown is returned with every attempt so the UI can display exactly how
// the rate was built, success or not.
type CaptureModifier struct {
	Source string
	Factor float64
}

// CaptureResult is the committed outcome of one capture attempt.
type CaptureResult struct {
	TargetID string
	// Rate is the final success rate that was rolled against, in [0, 1].
	Rate float64
	// Breakdown lists every factor that went into Rate, including the
	// device base rate, HP factor, species difficulty, and status factor.
	Breakdown []CaptureModifier
	Success   bool
	// Instance is the monster created from the captured enemy; nil on
	// failure.
	Instance *species.Instance
}

// CaptureRate computes the final success rate for a capture attempt.
// All factors multiply, so composition is commutative: the order modifiers
// are supplied in never changes the rate.
//
// rate = clamp(base * (1 - currentHP/maxHP) * difficulty * product(mods), 0, 1)
//
// A full-health target therefore cannot be captured: the HP factor is zero.
// No randomness is involved; given fixed inputs the rate is exact.
//
// Precondition: baseRate in (0, 1]; maxHP >= 1; difficulty in (0, 1].
// Postcondition: returned rate is in [0, 1]; breakdown covers every factor.
func CaptureRate(baseRate float64, currentHP, maxHP int, difficulty float64, mods []CaptureModifier) (float64, []CaptureModifier) {
	if currentHP < 0 {
		currentHP = 0
	}
	if currentHP > maxHP {
		currentHP = maxHP
	}
	hpFactor := 1 - float64(currentHP)/float64(maxHP)

	breakdown := []CaptureModifier{
		{Source: "device", Factor: baseRate},
		{Source: "target_hp", Factor: hpFactor},
		{Source: "species_difficulty", Factor: difficulty},
	}
	rate := baseRate * hpFactor * difficulty
	for _, m := range mods {
		breakdown = append(breakdown, m)
		rate *= m.Factor
	}

	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return rate, breakdown
}

// resolveCapture computes the rate for target, rolls once, and on success
// builds the captured instance at the target's level.
//
// Precondition: target.Capturable; sp is the target's species; device
// baseRate validated by the item registry.
func resolveCapture(target *Combatant, sp *species.Species, baseRate float64, extra []CaptureModifier, src rng.Source) CaptureResult {
	mods := append([]CaptureModifier(nil), extra...)
	if f := status.CaptureFactor(target.Statuses); f != 1.0 {
		mods = append(mods, CaptureModifier{Source: "status", Factor: f})
	}

	rate, breakdown := CaptureRate(baseRate, target.Stats.CurrentHP, target.Stats.MaxHP, sp.CaptureDifficulty, mods)
	result := CaptureResult{
		TargetID:  target.ID,
		Rate:      rate,
		Breakdown: breakdown,
	}
	if !rng.Chance(src, rate) {
		return result
	}

	inst, err := species.NewInstance(sp, target.Level)
	if err != nil {
		// Level and species were validated when the combatant was built,
		// so this is unreachable in practice; report a failed attempt
		// rather than panicking mid-battle.
		return result
	}
	result.Success = true
	result.Instance = &inst
	return result
}
