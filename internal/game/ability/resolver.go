package ability

import (
	"math"

	"github.com/mkerrigan/wildbound/internal/game/element"
	"github.com/mkerrigan/wildbound/internal/game/rng"
	"github.com/mkerrigan/wildbound/internal/game/stats"
)

// damageVariance is the ± spread applied to every successful damaging hit.
const damageVariance = 0.15

// healingCoefficient scales ability power into restored HP.
const healingCoefficient = 1.5

// Profile is the view of one combatant the resolver needs: a stat snapshot
// with any status modifiers already folded in, plus elemental affinity.
// Using a local value type keeps the resolver free of battle-package types
// and avoids a circular import.
type Profile struct {
	Stats   stats.Block
	Element element.Element
	// AccuracyDelta is the flat accuracy adjustment from active status
	// modifiers on the attacker (may be negative).
	AccuracyDelta int
}

// Outcome describes what a single ability use did. The resolver never
// mutates its inputs; callers apply the reported deltas themselves.
type Outcome struct {
	// Missed is true when the accuracy roll failed. A miss carries no
	// damage, healing, or status.
	Missed bool
	// Damage is HP to remove from the target; >= 1 for any successful
	// damaging hit, 0 otherwise.
	Damage int
	// Healing is HP to restore to the target; the caller caps it at the
	// target's maximum.
	Healing int
	// ElementMultiplier is the typing multiplier that went into Damage.
	ElementMultiplier float64
	// StatusToApply is the status definition ID to attach to the target,
	// or empty when no status was rolled.
	StatusToApply string
}

// Resolve computes the full outcome of attacker using ab against defender.
// Pure given (attacker, defender, ab) and the draws taken from src: a seeded
// source reproduces the outcome exactly.
//
// Damage: max(1, atk * power/100 - def*0.5) * elemental * variance, where
// atk/def are Attack/Defense for physical abilities and the magic pair for
// magical ones. Healing: power * 1.5. Status: rolled per the payload chance
// after a hit.
//
// Precondition: ab must be non-nil and validated; src must be non-nil.
func Resolve(attacker, defender Profile, ab *Ability, src rng.Source) Outcome {
	if !rollAccuracy(attacker, ab, src) {
		return Outcome{Missed: true, ElementMultiplier: element.NormalDamage}
	}

	out := Outcome{ElementMultiplier: element.NormalDamage}

	switch ab.Kind {
	case KindPhysical:
		out.ElementMultiplier = element.Multiplier(ab.Element, defender.Element)
		out.Damage = rollDamage(attacker.Stats.Attack, defender.Stats.Defense, ab.Power, out.ElementMultiplier, src)
	case KindMagical:
		out.ElementMultiplier = element.Multiplier(ab.Element, defender.Element)
		out.Damage = rollDamage(attacker.Stats.MagicAttack, defender.Stats.MagicDefense, ab.Power, out.ElementMultiplier, src)
	case KindHealing:
		out.Healing = int(math.Floor(float64(ab.Power) * healingCoefficient))
	case KindStatus:
		// No damage or healing; the payload roll below is the effect.
	}

	if ab.Status != nil && rng.Chance(src, float64(ab.Status.Chance)/100) {
		out.StatusToApply = ab.Status.StatusID
	}
	return out
}

// rollAccuracy performs the hit check: roll * 100 < accuracy adjusted by the
// attacker's accuracy modifiers, clamped to [0, 100].
func rollAccuracy(attacker Profile, ab *Ability, src rng.Source) bool {
	acc := ab.Accuracy + attacker.AccuracyDelta
	if acc < 0 {
		acc = 0
	}
	if acc > 100 {
		acc = 100
	}
	return rng.Chance(src, float64(acc)/100)
}

// rollDamage applies the core damage formula with elemental multiplier and
// variance. The floor rule runs last: any successful hit deals at least 1.
//
// Postcondition: returns >= 1.
func rollDamage(atk, def, power int, multiplier float64, src rng.Source) int {
	base := float64(atk)*float64(power)/100 - float64(def)*0.5
	dmg := base * multiplier * rng.Variance(src, damageVariance)
	if dmg < 1 {
		return 1
	}
	return int(math.Floor(dmg))
}
