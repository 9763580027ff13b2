package breeding

import (
	"fmt"

	"github.com/mkerrigan/wildbound/internal/game/item"
	"github.com/mkerrigan/wildbound/internal/game/rng"
	"github.com/mkerrigan/wildbound/internal/game/species"
)

// Compatibility bases by group relationship. Same-group pairs score highest;
// cross-group pairs need a recipe to score at all.
const (
	sameGroupCompatibility  = 0.9
	crossGroupCompatibility = 0.6
)

// mutationChance is the independent probability that a bred offspring gains
// one trait from the mutation-only pool.
const mutationChance = 0.05

// maxInheritedTraits caps how many traits an offspring can inherit from its
// parents. A mutation trait does not count against the cap.
const maxInheritedTraits = 4

// OffspringChance is one entry of a pair preview: a species the pair can
// produce and its normalised probability.
type OffspringChance struct {
	SpeciesID   string
	Probability float64
}

// Pair is the computed preview for two prospective parents. It carries
// everything the UI shows before the player commits: the compatibility
// score and the normalised offspring distribution.
type Pair struct {
	Parent1ID string
	Parent2ID string
	// Compatibility is the pair's score in [0, 1] after item bonuses.
	Compatibility float64
	// RequiredCompatibility is the floor from the matched recipe.
	RequiredCompatibility float64
	// PossibleOffspring probabilities sum to 1 when non-empty.
	PossibleOffspring []OffspringChance

	recipe *Recipe
}

// Result is the committed outcome of a breeding roll.
type Result struct {
	Offspring species.Instance
	// InheritedTraits lists the traits passed down from the parents, in
	// parent order.
	InheritedTraits []string
	// Mutated is true when the independent mutation roll succeeded;
	// MutationTrait then names the gained trait.
	Mutated       bool
	MutationTrait string
}

// Breeder computes pair previews and resolves breeding rolls against the
// static species registry and recipe table.
type Breeder struct {
	species *species.Registry
	table   *Table
	src     rng.Source
}

// NewBreeder creates a Breeder.
//
// Precondition: reg, table, and src must be non-nil; table must have passed
// Validate.
func NewBreeder(reg *species.Registry, table *Table, src rng.Source) *Breeder {
	return &Breeder{species: reg, table: table, src: src}
}

// NewPair builds the preview for two prospective parents. Offerings of
// breeding items raise the compatibility score by their bonuses.
//
// A pair whose species cannot breed together (no recipe, or a parent species
// without a breeding group) comes back with zero compatibility and no
// offspring; that is an expected outcome, not an error. Errors are reserved
// for instances referencing species missing from the registry.
//
// Postcondition: on nil error, PossibleOffspring probabilities sum to
// 1.0 ± epsilon when non-empty, and Compatibility is in [0, 1].
func (b *Breeder) NewPair(parent1, parent2 species.Instance, offerings []*item.Item) (Pair, error) {
	sp1, ok := b.species.Get(parent1.SpeciesID)
	if !ok {
		return Pair{}, fmt.Errorf("breeding: unknown species %q for parent %s", parent1.SpeciesID, parent1.InstanceID)
	}
	sp2, ok := b.species.Get(parent2.SpeciesID)
	if !ok {
		return Pair{}, fmt.Errorf("breeding: unknown species %q for parent %s", parent2.SpeciesID, parent2.InstanceID)
	}

	pair := Pair{
		Parent1ID: parent1.InstanceID,
		Parent2ID: parent2.InstanceID,
	}
	if sp1.BreedingGroup == "" || sp2.BreedingGroup == "" {
		return pair, nil
	}
	recipe, ok := b.table.Find(sp1.BreedingGroup, sp2.BreedingGroup)
	if !ok {
		return pair, nil
	}

	base := crossGroupCompatibility
	if sp1.BreedingGroup == sp2.BreedingGroup {
		base = sameGroupCompatibility
	}
	for _, offering := range offerings {
		if offering != nil && offering.Kind == item.KindBreeding {
			base += offering.CompatibilityBonus
		}
	}
	if base > 1 {
		base = 1
	}

	pair.Compatibility = base
	pair.RequiredCompatibility = recipe.RequiredCompatibility
	pair.recipe = recipe
	pair.PossibleOffspring = normalise(recipe.Offspring)
	return pair, nil
}

// normalise converts recipe weights into probabilities summing to 1.
func normalise(options []OffspringOption) []OffspringChance {
	var total float64
	for _, opt := range options {
		total += opt.Weight
	}
	out := make([]OffspringChance, len(options))
	for i, opt := range options {
		out[i] = OffspringChance{
			SpeciesID:   opt.SpeciesID,
			Probability: opt.Weight / total,
		}
	}
	return out
}

// CanBreed reports whether the pair meets its recipe's compatibility floor.
func (b *Breeder) CanBreed(pair Pair) bool {
	return pair.recipe != nil && pair.Compatibility >= pair.RequiredCompatibility
}

// Execute commits a breeding roll for the pair. A nil result signals the
// pair is below the compatibility floor and cannot breed; that is the
// expected refusal, not an error. The error return covers offspring species
// missing from the registry.
//
// On success: one offspring outcome is selected by probability, the new
// instance is built at level 1, up to one trait is inherited from each
// parent (weighted random, capped), and the mutation roll may attach one
// trait from the mutation-only pool.
func (b *Breeder) Execute(pair Pair, parent1, parent2 species.Instance) (*Result, error) {
	if !b.CanBreed(pair) {
		return nil, nil
	}

	weights := make([]float64, len(pair.PossibleOffspring))
	for i, oc := range pair.PossibleOffspring {
		weights[i] = oc.Probability
	}
	chosen := pair.PossibleOffspring[rng.WeightedIndex(b.src, weights)]

	childSpecies, ok := b.species.Get(chosen.SpeciesID)
	if !ok {
		return nil, fmt.Errorf("breeding: recipe offspring species %q not registered", chosen.SpeciesID)
	}
	offspring, err := species.NewInstance(childSpecies, 1)
	if err != nil {
		return nil, fmt.Errorf("breeding: creating offspring: %w", err)
	}

	result := &Result{}
	sp1, _ := b.species.Get(parent1.SpeciesID)
	sp2, _ := b.species.Get(parent2.SpeciesID)
	for _, parentSpecies := range []*species.Species{sp1, sp2} {
		if parentSpecies == nil || len(parentSpecies.BreedingTraits) == 0 {
			continue
		}
		if len(result.InheritedTraits) >= maxInheritedTraits {
			break
		}
		trait := parentSpecies.BreedingTraits[b.src.Intn(len(parentSpecies.BreedingTraits))]
		if !containsTrait(result.InheritedTraits, trait) {
			result.InheritedTraits = append(result.InheritedTraits, trait)
		}
	}
	offspring.Traits = append([]string(nil), result.InheritedTraits...)

	if rng.Chance(b.src, mutationChance) {
		trait := b.table.MutationTraits[b.src.Intn(len(b.table.MutationTraits))]
		result.Mutated = true
		result.MutationTrait = trait
		offspring.Traits = append(offspring.Traits, trait)
	}

	result.Offspring = offspring
	return result, nil
}

func containsTrait(traits []string, trait string) bool {
	for _, t := range traits {
		if t == trait {
			return true
		}
	}
	return false
}

// CompatibleCandidates filters candidates down to those that can form a
// breedable pair with parent. The parent itself and candidates whose species
// pair has no recipe are excluded. Pure: inputs are never modified.
func (b *Breeder) CompatibleCandidates(parent species.Instance, candidates []species.Instance) []species.Instance {
	parentSpecies, ok := b.species.Get(parent.SpeciesID)
	if !ok || parentSpecies.BreedingGroup == "" {
		return nil
	}
	var out []species.Instance
	for _, cand := range candidates {
		if cand.InstanceID == parent.InstanceID {
			continue
		}
		candSpecies, ok := b.species.Get(cand.SpeciesID)
		if !ok || candSpecies.BreedingGroup == "" {
			continue
		}
		if _, ok := b.table.Find(parentSpecies.BreedingGroup, candSpecies.BreedingGroup); ok {
			out = append(out, cand)
		}
	}
	return out
}
