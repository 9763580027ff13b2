package status

import "fmt"

// Active tracks one applied status effect on a combatant.
type Active struct {
	Def *Definition
	// TurnsRemaining counts down once per tick; the effect is removed
	// when it reaches zero.
	TurnsRemaining int
	// AppliedBy is the combatant ID of the source.
	AppliedBy string
}

// ActiveSet tracks all status effects currently applied to one combatant.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: at most one Active per definition ID.
type ActiveSet struct {
	effects map[string]*Active
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{effects: make(map[string]*Active)}
}

// Apply adds the effect to this combatant, or refreshes the duration of an
// already-present effect of the same type. Stacking is never allowed.
//
// Precondition: def must not be nil and must have passed Validate.
// Postcondition: Has(def.ID) is true; TurnsRemaining == def.Duration.
func (s *ActiveSet) Apply(def *Definition, appliedBy string) error {
	if def == nil {
		return fmt.Errorf("status: Apply called with nil definition")
	}
	if existing, ok := s.effects[def.ID]; ok {
		existing.TurnsRemaining = def.Duration
		existing.AppliedBy = appliedBy
		return nil
	}
	s.effects[def.ID] = &Active{
		Def:            def,
		TurnsRemaining: def.Duration,
		AppliedBy:      appliedBy,
	}
	return nil
}

// Remove deletes the effect with the given ID from the set. No-op when the
// effect is not present.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.effects, id)
}

// TickResult reports the aggregate outcome of one Tick call.
type TickResult struct {
	// Damage is total HP lost to damage_over_time effects this tick.
	Damage int
	// Healing is total HP gained from heal_over_time effects this tick.
	Healing int
	// Expired lists the IDs of effects removed this tick.
	Expired []string
}

// Tick applies every over-time magnitude once, decrements all remaining
// durations, and removes effects that reach zero. Called once per combatant
// per round, before that combatant's own action.
//
// Postcondition: for every id in result.Expired, Has(id) is false.
func (s *ActiveSet) Tick() TickResult {
	var result TickResult
	for id, a := range s.effects {
		switch a.Def.Effect {
		case EffectDamageOverTime:
			result.Damage += a.Def.Magnitude
		case EffectHealOverTime:
			result.Healing += a.Def.Magnitude
		}
		a.TurnsRemaining--
		if a.TurnsRemaining <= 0 {
			result.Expired = append(result.Expired, id)
			delete(s.effects, id)
		}
	}
	return result
}

// Has reports whether the effect with id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.effects[id]
	return ok
}

// TurnsRemaining returns the remaining duration for effect id, or 0 if it is
// not active.
func (s *ActiveSet) TurnsRemaining(id string) int {
	if a, ok := s.effects[id]; ok {
		return a.TurnsRemaining
	}
	return 0
}

// All returns a slice of pointers to the active effects. The slice is a new
// allocation, but the pointed-to Active values are shared; callers must not
// modify them.
func (s *ActiveSet) All() []*Active {
	out := make([]*Active, 0, len(s.effects))
	for _, a := range s.effects {
		out = append(out, a)
	}
	return out
}

// StatDelta returns the net flat modifier to the named stat from all active
// stat_modifier effects.
func StatDelta(s *ActiveSet, stat string) int {
	total := 0
	for _, a := range s.effects {
		if a.Def.Effect == EffectStatModifier && a.Def.Stat == stat {
			total += a.Def.Magnitude
		}
	}
	return total
}

// CaptureFactor returns the combined capture-rate multiplier contributed by
// all active effects. Effects with a zero CaptureFactor contribute 1.0.
// Multiplication makes the combination commutative, so the order effects
// were applied in never changes the result.
//
// Postcondition: returns > 0.
func CaptureFactor(s *ActiveSet) float64 {
	factor := 1.0
	for _, a := range s.effects {
		if a.Def.CaptureFactor > 0 {
			factor *= a.Def.CaptureFactor
		}
	}
	return factor
}
