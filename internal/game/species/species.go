// Package species provides monster species definitions, the static registry,
// and monster instance creation and progression.
package species

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkerrigan/wildbound/internal/game/element"
	"github.com/mkerrigan/wildbound/internal/game/stats"
)

// Rarity tiers a species may be assigned in content files.
var validRarities = map[string]bool{
	"common":    true,
	"uncommon":  true,
	"rare":      true,
	"epic":      true,
	"legendary": true,
}

// LearnableAbility gates an ability behind a level requirement.
type LearnableAbility struct {
	AbilityID string `yaml:"ability"`
	Level     int    `yaml:"level"`
}

// Species defines a monster archetype loaded from YAML. Species values are
// immutable after load; instances reference them by ID.
type Species struct {
	ID          string          `yaml:"id"`
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Element     element.Element `yaml:"element"`
	Rarity      string          `yaml:"rarity"`
	BaseStats   stats.Block     `yaml:"base_stats"`
	Growth      stats.Growth    `yaml:"growth"`
	Learnset    []LearnableAbility `yaml:"learnset"`
	// CaptureDifficulty scales capture success; 1.0 is baseline, lower is
	// harder. Must be in (0, 1].
	CaptureDifficulty float64 `yaml:"capture_difficulty"`
	// BreedingGroup tags genetic compatibility; empty means the species
	// cannot breed.
	BreedingGroup string `yaml:"breeding_group"`
	// BreedingTraits are the trait IDs offspring may inherit from a parent
	// of this species.
	BreedingTraits []string `yaml:"breeding_traits"`
	Rewards        RewardTable `yaml:"rewards"`
}

// Validate checks that the species satisfies basic invariants.
//
// Precondition: s must not be nil.
// Postcondition: returns nil iff ID and Name are non-empty, Rarity is a known
// tier, base HP >= 1, CaptureDifficulty is in (0, 1], learnset level gates
// are >= 1, and the reward table validates.
func (s *Species) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("species: id must not be empty")
	}
	if s.Name == "" {
		return fmt.Errorf("species %q: name must not be empty", s.ID)
	}
	if !validRarities[s.Rarity] {
		return fmt.Errorf("species %q: unknown rarity %q", s.ID, s.Rarity)
	}
	if s.BaseStats.MaxHP < 1 {
		return fmt.Errorf("species %q: base max_hp must be >= 1", s.ID)
	}
	if s.CaptureDifficulty <= 0 || s.CaptureDifficulty > 1 {
		return fmt.Errorf("species %q: capture_difficulty must be in (0, 1], got %f", s.ID, s.CaptureDifficulty)
	}
	for i, la := range s.Learnset {
		if la.AbilityID == "" {
			return fmt.Errorf("species %q: learnset[%d] must name an ability", s.ID, i)
		}
		if la.Level < 1 {
			return fmt.Errorf("species %q: learnset[%d] level gate must be >= 1, got %d", s.ID, i, la.Level)
		}
	}
	if err := s.Rewards.Validate(); err != nil {
		return fmt.Errorf("species %q: %w", s.ID, err)
	}
	return nil
}

// LoadFromBytes parses a single species from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Species.
// Postcondition: returns a validated *Species, or an error.
func LoadFromBytes(data []byte) (*Species, error) {
	var sp Species
	if err := yaml.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	if err := sp.Validate(); err != nil {
		return nil, err
	}
	return &sp, nil
}

// LoadDirectory reads all *.yaml files in dir and returns a populated
// Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns all species or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	reg := NewRegistry()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		sp, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		reg.Register(sp)
	}
	return reg, nil
}

// Registry holds all known Species keyed by ID.
type Registry struct {
	species map[string]*Species
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{species: make(map[string]*Species)}
}

// Register adds sp to the registry, overwriting any existing entry with the
// same ID.
//
// Precondition: sp must not be nil and sp.ID must not be empty.
func (r *Registry) Register(sp *Species) {
	r.species[sp.ID] = sp
}

// Get returns the Species for id, or (nil, false) if not found. A false
// return is a non-fatal missing-data condition; callers display a fallback
// label rather than failing.
func (r *Registry) Get(id string) (*Species, bool) {
	sp, ok := r.species[id]
	return sp, ok
}

// All returns a snapshot slice of all registered Species.
func (r *Registry) All() []*Species {
	out := make([]*Species, 0, len(r.species))
	for _, sp := range r.species {
		out = append(out, sp)
	}
	return out
}

// Len returns the number of registered species.
func (r *Registry) Len() int { return len(r.species) }
