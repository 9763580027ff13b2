// Package battle implements the turn-based battle engine: turn ordering,
// action resolution, capture attempts, and win/loss detection.
package battle

import (
	"github.com/google/uuid"

	"github.com/mkerrigan/wildbound/internal/game/ability"
	"github.com/mkerrigan/wildbound/internal/game/element"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/stats"
	"github.com/mkerrigan/wildbound/internal/game/status"
)

// Side distinguishes the player's squad from the enemy squad.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns a human-readable side label.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Combatant is the ephemeral per-battle wrapper around a player or monster.
// It carries a stat snapshot taken at battle start; results are written back
// to the persistent records by the caller when the battle ends.
type Combatant struct {
	ID   string
	Side Side
	Name string
	// SpeciesID is empty for the player character.
	SpeciesID string
	Level     int
	Element   element.Element
	Stats     stats.Block
	// Abilities are the ability IDs this combatant may use.
	Abilities []string
	Statuses  *status.ActiveSet
	// Capturable marks wild enemies that may be targeted by capture
	// attempts.
	Capturable bool
	// Defending halves incoming damage until the start of this
	// combatant's next turn.
	Defending bool
	// Captured marks an enemy removed from battle by a successful capture.
	// A captured combatant is out of the fight but was not defeated, so it
	// contributes no defeat rewards.
	Captured bool
}

// NewMonsterCombatant wraps a monster instance as a battle combatant.
//
// Precondition: sp must be the species referenced by inst.SpeciesID.
func NewMonsterCombatant(inst species.Instance, sp *Species, side Side, capturable bool) *Combatant {
	return &Combatant{
		ID:         inst.InstanceID,
		Side:       side,
		Name:       inst.Nickname,
		SpeciesID:  inst.SpeciesID,
		Level:      inst.Level,
		Element:    sp.Element,
		Stats:      inst.Stats,
		Abilities:  append([]string(nil), inst.Abilities...),
		Statuses:   status.NewActiveSet(),
		Capturable: capturable,
	}
}

// NewWildCombatant derives a fresh enemy combatant of sp at the given level.
func NewWildCombatant(sp *Species, level int) *Combatant {
	return &Combatant{
		ID:         uuid.New().String(),
		Side:       SideEnemy,
		Name:       sp.Name,
		SpeciesID:  sp.ID,
		Level:      level,
		Element:    sp.Element,
		Stats:      stats.Grown(sp.BaseStats, sp.Growth, level),
		Abilities:  abilityIDsAtLevel(sp, level),
		Statuses:   status.NewActiveSet(),
		Capturable: true,
	}
}

func abilityIDsAtLevel(sp *Species, level int) []string {
	var known []string
	for _, la := range sp.Learnset {
		if la.Level <= level {
			known = append(known, la.AbilityID)
		}
	}
	return known
}

// NewPlayerCombatant wraps the player character as a battle combatant.
func NewPlayerCombatant(p stats.PlayerCharacter, playerAbilities []string) *Combatant {
	return &Combatant{
		ID:        uuid.New().String(),
		Side:      SidePlayer,
		Name:      p.Name,
		Level:     p.Level,
		Element:   element.Neutral,
		Stats:     p.Stats,
		Abilities: append([]string(nil), playerAbilities...),
		Statuses:  status.NewActiveSet(),
	}
}

// Species is a local alias so combatant constructors read cleanly.
type Species = species.Species

// IsOut reports whether this combatant no longer takes turns: defeated or
// captured.
func (c *Combatant) IsOut() bool {
	return c.Captured || c.Stats.IsExhausted()
}

// IsDefeated reports whether this combatant was reduced to zero HP. Captured
// combatants are out of the battle but not defeated.
func (c *Combatant) IsDefeated() bool {
	return !c.Captured && c.Stats.IsExhausted()
}

// Knows reports whether the combatant has learned the given ability.
func (c *Combatant) Knows(abilityID string) bool {
	for _, id := range c.Abilities {
		if id == abilityID {
			return true
		}
	}
	return false
}

// EffectiveStats returns the stat snapshot with active status modifiers
// folded in and the result clamped.
func (c *Combatant) EffectiveStats() stats.Block {
	b := c.Stats
	b.Attack += status.StatDelta(c.Statuses, status.StatAttack)
	b.Defense += status.StatDelta(c.Statuses, status.StatDefense)
	b.MagicAttack += status.StatDelta(c.Statuses, status.StatMagicAttack)
	b.MagicDefense += status.StatDelta(c.Statuses, status.StatMagicDefense)
	b.Speed += status.StatDelta(c.Statuses, status.StatSpeed)
	return b.Clamped()
}

// Profile builds the resolver view of this combatant.
func (c *Combatant) Profile() ability.Profile {
	return ability.Profile{
		Stats:         c.EffectiveStats(),
		Element:       c.Element,
		AccuracyDelta: status.StatDelta(c.Statuses, status.StatAccuracy),
	}
}
