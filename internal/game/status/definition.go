// Package status provides status-effect definitions and the per-combatant
// active set with apply, tick, and expiry semantics.
package status

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Effect kinds. A definition is exactly one of these.
const (
	EffectDamageOverTime = "damage_over_time" // magnitude HP lost per tick
	EffectHealOverTime   = "heal_over_time"   // magnitude HP gained per tick
	EffectStatModifier   = "stat_modifier"    // flat delta to Stat while active
)

// Stats a stat_modifier definition may target.
const (
	StatAttack       = "attack"
	StatDefense      = "defense"
	StatMagicAttack  = "magic_attack"
	StatMagicDefense = "magic_defense"
	StatSpeed        = "speed"
	StatAccuracy     = "accuracy"
)

// Definition is the static definition of a status effect, loaded from YAML.
type Definition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Effect is one of the Effect* kind constants.
	Effect string `yaml:"effect"`
	// Duration is the number of turns the effect lasts once applied.
	Duration int `yaml:"duration"`
	// Magnitude is HP per tick for over-time effects, or the flat stat
	// delta (may be negative) for stat modifiers.
	Magnitude int `yaml:"magnitude"`
	// Stat names the stat a stat_modifier targets; empty otherwise.
	Stat string `yaml:"stat"`
	// CaptureFactor multiplies capture success while the effect is active
	// on the target. Zero means "no influence" and is treated as 1.0.
	CaptureFactor float64 `yaml:"capture_factor"`
}

// Validate checks that the definition satisfies its invariants.
//
// Precondition: d must not be nil.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("status: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("status %q: name must not be empty", d.ID)
	}
	switch d.Effect {
	case EffectDamageOverTime, EffectHealOverTime:
		if d.Magnitude < 1 {
			return fmt.Errorf("status %q: over-time magnitude must be >= 1, got %d", d.ID, d.Magnitude)
		}
	case EffectStatModifier:
		validStats := map[string]bool{
			StatAttack: true, StatDefense: true,
			StatMagicAttack: true, StatMagicDefense: true,
			StatSpeed: true, StatAccuracy: true,
		}
		if !validStats[d.Stat] {
			return fmt.Errorf("status %q: stat %q is not a modifiable stat", d.ID, d.Stat)
		}
	default:
		return fmt.Errorf("status %q: unknown effect kind %q", d.ID, d.Effect)
	}
	if d.Duration < 1 {
		return fmt.Errorf("status %q: duration must be >= 1, got %d", d.ID, d.Duration)
	}
	if d.CaptureFactor < 0 {
		return fmt.Errorf("status %q: capture_factor must be >= 0, got %f", d.ID, d.CaptureFactor)
	}
	return nil
}

// Registry holds all known status Definitions keyed by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds def to the registry, overwriting any existing entry with the
// same ID.
//
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Definition) {
	r.defs[def.ID] = def
}

// Get returns the Definition for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered Definitions.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.defs) }

// LoadDirectory reads every *.yaml file in dir, parses each as a Definition,
// and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns a non-nil Registry, or an error if any file fails
// to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading status dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Definition
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
