package species

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mkerrigan/wildbound/internal/game/stats"
)

// MaxBond is the ceiling of the bond scale between a tamer and a monster.
const MaxBond = 100

// Instance is a single captured or bred monster. Instances are value-like:
// every mutator returns an updated copy. The species is referenced by ID,
// never embedded, so static data stays shared and immutable.
type Instance struct {
	InstanceID string
	SpeciesID  string
	Nickname   string
	Level      int
	Experience int
	// ExperienceToNext caches stats.XPToNextLevel(Level).
	ExperienceToNext int
	// Stats are derived from species base + growth at the current level
	// and cached here.
	Stats stats.Block
	// Abilities are the learned ability IDs, in learnset order.
	Abilities []string
	// Traits are inherited breeding trait IDs.
	Traits []string
	// Bond is the 0-100 affinity score with the tamer.
	Bond int
	// InSquad marks squad membership; the session aggregate owns the
	// squad/storage lists themselves.
	InSquad bool
}

// NewInstance creates an Instance of sp at the given level. Stats and the
// known ability list are deterministic functions of (species, level): same
// inputs always produce the same values, only the instance ID differs.
//
// Precondition: sp must not be nil; level >= 1.
func NewInstance(sp *Species, level int) (Instance, error) {
	if sp == nil {
		return Instance{}, errors.New("species: NewInstance called with nil species")
	}
	if level < 1 {
		return Instance{}, errors.New("species: instance level must be >= 1")
	}
	return Instance{
		InstanceID:       uuid.New().String(),
		SpeciesID:        sp.ID,
		Nickname:         sp.Name,
		Level:            level,
		Experience:       0,
		ExperienceToNext: stats.XPToNextLevel(level),
		Stats:            stats.Grown(sp.BaseStats, sp.Growth, level),
		Abilities:        abilitiesAtLevel(sp, level),
	}, nil
}

// abilitiesAtLevel returns the learnset ability IDs whose level gate is met.
func abilitiesAtLevel(sp *Species, level int) []string {
	var known []string
	for _, la := range sp.Learnset {
		if la.Level <= level {
			known = append(known, la.AbilityID)
		}
	}
	return known
}

// AddExperience accumulates amount on inst and performs level-up steps while
// the total meets the threshold, mirroring the player progression loop. Each
// step recomputes stats from the species definition and learns any newly
// gated abilities. Negative amounts are ignored.
//
// Precondition: sp must be the species referenced by inst.SpeciesID.
// Postcondition: result.Experience < result.ExperienceToNext.
func AddExperience(inst Instance, sp *Species, amount int) Instance {
	if sp == nil || amount < 0 {
		return inst
	}
	inst.Experience += amount
	leveled := false
	for inst.Experience >= inst.ExperienceToNext {
		inst.Experience -= inst.ExperienceToNext
		inst.Level++
		inst.ExperienceToNext = stats.XPToNextLevel(inst.Level)
		leveled = true
	}
	if leveled {
		inst.Stats = stats.Grown(sp.BaseStats, sp.Growth, inst.Level)
		inst.Abilities = abilitiesAtLevel(sp, inst.Level)
	}
	return inst
}

// AddBond applies delta to the bond level, clamped to [0, MaxBond].
func AddBond(inst Instance, delta int) Instance {
	inst.Bond += delta
	if inst.Bond < 0 {
		inst.Bond = 0
	}
	if inst.Bond > MaxBond {
		inst.Bond = MaxBond
	}
	return inst
}

// WithNickname returns inst renamed. Empty names fall back to the current
// nickname unchanged.
func WithNickname(inst Instance, name string) Instance {
	if name != "" {
		inst.Nickname = name
	}
	return inst
}

// BondCaptureFactor returns the capture-rate multiplier granted by bond with
// monsters already on the squad: 1.0 at zero bond rising linearly to 1.25 at
// full bond.
func BondCaptureFactor(bond int) float64 {
	if bond < 0 {
		bond = 0
	}
	if bond > MaxBond {
		bond = MaxBond
	}
	return 1.0 + 0.25*float64(bond)/float64(MaxBond)
}
