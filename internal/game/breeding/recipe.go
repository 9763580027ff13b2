// Package breeding implements compatibility scoring, offspring previews, and
// the committed breeding roll with trait inheritance and mutation.
package breeding

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OffspringOption is one possible offspring species in a recipe, with its
// selection weight.
type OffspringOption struct {
	SpeciesID string  `yaml:"species"`
	Weight    float64 `yaml:"weight"`
}

// Recipe defines the offspring pool for one unordered pair of breeding
// groups.
type Recipe struct {
	// Groups are the two breeding groups this recipe covers; order is
	// irrelevant. A recipe may pair a group with itself.
	Groups [2]string `yaml:"groups"`
	// RequiredCompatibility is the floor a pair's compatibility score must
	// meet for breeding to proceed.
	RequiredCompatibility float64           `yaml:"required_compatibility"`
	Offspring             []OffspringOption `yaml:"offspring"`
}

// Validate checks that the recipe satisfies its invariants.
func (r *Recipe) Validate() error {
	if r.Groups[0] == "" || r.Groups[1] == "" {
		return fmt.Errorf("recipe: both breeding groups must be named")
	}
	if r.RequiredCompatibility < 0 || r.RequiredCompatibility > 1 {
		return fmt.Errorf("recipe %s+%s: required_compatibility must be in [0, 1], got %f",
			r.Groups[0], r.Groups[1], r.RequiredCompatibility)
	}
	if len(r.Offspring) == 0 {
		return fmt.Errorf("recipe %s+%s: must offer at least one offspring option", r.Groups[0], r.Groups[1])
	}
	for i, opt := range r.Offspring {
		if opt.SpeciesID == "" {
			return fmt.Errorf("recipe %s+%s: offspring[%d] must name a species", r.Groups[0], r.Groups[1], i)
		}
		if opt.Weight <= 0 {
			return fmt.Errorf("recipe %s+%s: offspring[%d] weight must be > 0, got %f",
				r.Groups[0], r.Groups[1], i, opt.Weight)
		}
	}
	return nil
}

// Matches reports whether this recipe covers the unordered pair (g1, g2).
func (r *Recipe) Matches(g1, g2 string) bool {
	return (r.Groups[0] == g1 && r.Groups[1] == g2) ||
		(r.Groups[0] == g2 && r.Groups[1] == g1)
}

// Table is the static breeding content: the recipe list plus the
// mutation-only trait pool.
type Table struct {
	Recipes []Recipe `yaml:"recipes"`
	// MutationTraits is the pool a mutation draws from; these traits are
	// never inherited normally.
	MutationTraits []string `yaml:"mutation_traits"`
}

// Validate checks every recipe and the mutation pool.
func (t *Table) Validate() error {
	if len(t.MutationTraits) == 0 {
		return fmt.Errorf("breeding table: mutation_traits must not be empty")
	}
	for i := range t.Recipes {
		if err := t.Recipes[i].Validate(); err != nil {
			return fmt.Errorf("breeding table: recipe[%d]: %w", i, err)
		}
	}
	return nil
}

// Find returns the recipe covering the unordered group pair, or (nil, false).
func (t *Table) Find(g1, g2 string) (*Recipe, bool) {
	for i := range t.Recipes {
		if t.Recipes[i].Matches(g1, g2) {
			return &t.Recipes[i], true
		}
	}
	return nil, false
}

// LoadFile reads and validates a breeding table from a single YAML file.
//
// Precondition: path must be a readable file.
// Postcondition: returns a validated *Table, or an error.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading breeding table %q: %w", path, err)
	}
	var t Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("parsing breeding table %q: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating breeding table %q: %w", path, err)
	}
	return &t, nil
}
