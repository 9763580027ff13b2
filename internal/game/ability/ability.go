// Package ability provides ability definitions and the pure combat resolver
// for damage, healing, accuracy, and status application.
package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkerrigan/wildbound/internal/game/element"
)

// Ability kinds.
const (
	KindPhysical = "physical"
	KindMagical  = "magical"
	KindStatus   = "status"
	KindHealing  = "healing"
)

// Target types.
const (
	TargetEnemy = "enemy"
	TargetSelf  = "self"
	TargetAlly  = "ally"
)

// StatusPayload names a status effect an ability may apply on hit.
type StatusPayload struct {
	StatusID string `yaml:"status"`
	// Chance is the application probability in percent; 100 is guaranteed.
	Chance int `yaml:"chance"`
}

// Ability is the static definition of a combat ability, loaded from YAML.
type Ability struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Element     element.Element `yaml:"element"`
	// Kind is one of the Kind* constants.
	Kind string `yaml:"kind"`
	// Power scales damage for physical/magical kinds and healing for the
	// healing kind; ignored for pure status abilities.
	Power int `yaml:"power"`
	// Accuracy is the base hit chance in percent.
	Accuracy int `yaml:"accuracy"`
	MPCost   int `yaml:"mp_cost"`
	// Target is one of the Target* constants.
	Target string         `yaml:"target"`
	Status *StatusPayload `yaml:"status_effect"`
}

// Validate checks that the ability satisfies its invariants.
//
// Precondition: a must not be nil.
func (a *Ability) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("ability: id must not be empty")
	}
	if a.Name == "" {
		return fmt.Errorf("ability %q: name must not be empty", a.ID)
	}
	switch a.Kind {
	case KindPhysical, KindMagical, KindHealing:
		if a.Power < 1 {
			return fmt.Errorf("ability %q: power must be >= 1 for kind %q, got %d", a.ID, a.Kind, a.Power)
		}
	case KindStatus:
		if a.Status == nil {
			return fmt.Errorf("ability %q: status kind requires a status_effect payload", a.ID)
		}
	default:
		return fmt.Errorf("ability %q: unknown kind %q", a.ID, a.Kind)
	}
	if a.Accuracy < 1 || a.Accuracy > 100 {
		return fmt.Errorf("ability %q: accuracy must be in [1, 100], got %d", a.ID, a.Accuracy)
	}
	if a.MPCost < 0 {
		return fmt.Errorf("ability %q: mp_cost must be >= 0, got %d", a.ID, a.MPCost)
	}
	switch a.Target {
	case TargetEnemy, TargetSelf, TargetAlly:
	default:
		return fmt.Errorf("ability %q: unknown target %q", a.ID, a.Target)
	}
	if a.Status != nil {
		if a.Status.StatusID == "" {
			return fmt.Errorf("ability %q: status_effect must name a status", a.ID)
		}
		if a.Status.Chance < 1 || a.Status.Chance > 100 {
			return fmt.Errorf("ability %q: status_effect chance must be in [1, 100], got %d", a.ID, a.Status.Chance)
		}
	}
	return nil
}

// Registry holds all known Abilities keyed by ID.
type Registry struct {
	abilities map[string]*Ability
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{abilities: make(map[string]*Ability)}
}

// Register adds a to the registry, overwriting any existing entry with the
// same ID.
//
// Precondition: a must not be nil and a.ID must not be empty.
func (r *Registry) Register(a *Ability) {
	r.abilities[a.ID] = a
}

// Get returns the Ability for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Ability, bool) {
	a, ok := r.abilities[id]
	return a, ok
}

// All returns a snapshot slice of all registered Abilities.
func (r *Registry) All() []*Ability {
	out := make([]*Ability, 0, len(r.abilities))
	for _, a := range r.abilities {
		out = append(out, a)
	}
	return out
}

// Len returns the number of registered abilities.
func (r *Registry) Len() int { return len(r.abilities) }

// LoadDirectory reads every *.yaml file in dir, parses each as an Ability,
// and returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns a non-nil Registry, or an error if any file fails
// to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
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
		var ab Ability
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&ab); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := ab.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&ab)
	}
	return reg, nil
}
