package breeding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mkerrigan/wildbound/internal/game/breeding"
	"github.com/mkerrigan/wildbound/internal/game/element"
	"github.com/mkerrigan/wildbound/internal/game/item"
	"github.com/mkerrigan/wildbound/internal/game/rng"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/stats"
)

// scriptedSource replays queued draws so breeding rolls can be forced.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func testSpecies(id, group string, traits ...string) *species.Species {
	return &species.Species{
		ID: id, Name: id, Element: element.Neutral, Rarity: "common",
		BaseStats: stats.Block{
			MaxHP: 20, CurrentHP: 20, MaxMP: 6, CurrentMP: 6,
			Attack: 5, Defense: 5, MagicAttack: 5, MagicDefense: 5,
			Speed: 5, Luck: 5,
		},
		CaptureDifficulty: 0.9,
		BreedingGroup:     group,
		BreedingTraits:    traits,
	}
}

func testRegistry(t *testing.T) *species.Registry {
	t.Helper()
	reg := species.NewRegistry()
	reg.Register(testSpecies("embermite", "ember", "cinder_coat", "quick_hatch"))
	reg.Register(testSpecies("terrapup", "warden", "stout_heart"))
	reg.Register(testSpecies("zephyrling", "gale"))
	reg.Register(testSpecies("groupless", ""))
	return reg
}

func testTable() *breeding.Table {
	return &breeding.Table{
		Recipes: []breeding.Recipe{
			{
				Groups:                [2]string{"ember", "ember"},
				RequiredCompatibility: 0.5,
				Offspring:             []breeding.OffspringOption{{SpeciesID: "embermite", Weight: 1}},
			},
			{
				Groups:                [2]string{"ember", "warden"},
				RequiredCompatibility: 0.7,
				Offspring: []breeding.OffspringOption{
					{SpeciesID: "embermite", Weight: 3},
					{SpeciesID: "terrapup", Weight: 1},
				},
			},
		},
		MutationTraits: []string{"iridescent", "nocturne"},
	}
}

func instanceOf(t *testing.T, reg *species.Registry, id string) species.Instance {
	t.Helper()
	sp, ok := reg.Get(id)
	require.True(t, ok)
	inst, err := species.NewInstance(sp, 5)
	require.NoError(t, err)
	return inst
}

func TestNewPair_SameGroupCompatibility(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})

	pair, err := b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "embermite"), nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, pair.Compatibility, 1e-9, "same-group pairs score 0.9")
	assert.Equal(t, 0.5, pair.RequiredCompatibility)
	require.Len(t, pair.PossibleOffspring, 1)
	assert.Equal(t, 1.0, pair.PossibleOffspring[0].Probability)
	assert.True(t, b.CanBreed(pair))
}

func TestNewPair_CrossGroupCompatibility(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})

	pair, err := b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "terrapup"), nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.6, pair.Compatibility, 1e-9, "cross-group pairs score 0.6")
	assert.False(t, b.CanBreed(pair), "0.6 is below this recipe's 0.7 floor")
}

func TestNewPair_OfferingsRaiseCompatibility(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})
	honeycomb := &item.Item{ID: "honeycomb", Name: "Honeycomb", Kind: item.KindBreeding, CompatibilityBonus: 0.15}
	tonic := &item.Item{ID: "tonic", Name: "Tonic", Kind: item.KindConsumable, RestoreHP: 20}

	pair, err := b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "terrapup"),
		[]*item.Item{honeycomb, tonic, nil})
	require.NoError(t, err)

	assert.InDelta(t, 0.75, pair.Compatibility, 1e-9, "only breeding items add their bonus")
	assert.True(t, b.CanBreed(pair))

	// The score caps at 1 no matter how many offerings are stacked.
	pair, err = b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "embermite"),
		[]*item.Item{honeycomb, honeycomb, honeycomb})
	require.NoError(t, err)
	assert.Equal(t, 1.0, pair.Compatibility)
}

func TestNewPair_UnbreedableIsNotAnError(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})

	// No recipe covers ember+gale.
	pair, err := b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "zephyrling"), nil)
	require.NoError(t, err, "an unbreedable pair is an expected outcome")
	assert.Zero(t, pair.Compatibility)
	assert.Empty(t, pair.PossibleOffspring)
	assert.False(t, b.CanBreed(pair))

	// A species without a breeding group cannot pair at all.
	pair, err = b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "groupless"), nil)
	require.NoError(t, err)
	assert.False(t, b.CanBreed(pair))
}

func TestNewPair_UnknownSpeciesIsAnError(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})

	ghost := species.Instance{InstanceID: "ghost-1", SpeciesID: "ghost"}
	_, err := b.NewPair(ghost, instanceOf(t, reg, "embermite"), nil)
	require.Error(t, err, "a dangling species reference is a programmer mistake")
}

// TestNewPair_ProbabilitiesSumToOne verifies the normalisation postcondition
// for arbitrary weight vectors.
func TestNewPair_ProbabilitiesSumToOne(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		reg := testRegistry(t)
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		opts := make([]breeding.OffspringOption, n)
		for i := range opts {
			opts[i] = breeding.OffspringOption{
				SpeciesID: "embermite",
				Weight:    rapid.Float64Range(0.01, 50).Draw(rt, "weight"),
			}
		}
		table := &breeding.Table{
			Recipes: []breeding.Recipe{{
				Groups: [2]string{"ember", "ember"}, RequiredCompatibility: 0.5, Offspring: opts,
			}},
			MutationTraits: []string{"iridescent"},
		}
		b := breeding.NewBreeder(reg, table, &scriptedSource{})

		pair, err := b.NewPair(instanceOf(t, reg, "embermite"), instanceOf(t, reg, "embermite"), nil)
		require.NoError(rt, err)

		var sum float64
		for _, oc := range pair.PossibleOffspring {
			sum += oc.Probability
		}
		assert.InDelta(rt, 1.0, sum, 1e-9, "probabilities must sum to one")
	})
}

func TestExecute_BelowFloorReturnsNil(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})

	p1 := instanceOf(t, reg, "embermite")
	p2 := instanceOf(t, reg, "terrapup")
	pair, err := b.NewPair(p1, p2, nil)
	require.NoError(t, err)
	require.False(t, b.CanBreed(pair))

	result, err := b.Execute(pair, p1, p2)
	require.NoError(t, err, "refusal is not an error")
	assert.Nil(t, result, "a pair below the floor produces nothing")
}

func TestExecute_ProducesLevelOneOffspringWithTraits(t *testing.T) {
	reg := testRegistry(t)
	// Draws: offspring pick (0.0 -> first option), one trait per parent,
	// then the mutation roll fails (0.99).
	src := &scriptedSource{floats: []float64{0.0, 0.99}, ints: []int{0, 0}}
	b := breeding.NewBreeder(reg, testTable(), src)

	p1 := instanceOf(t, reg, "embermite") // traits: cinder_coat, quick_hatch
	p2 := instanceOf(t, reg, "embermite")
	pair, err := b.NewPair(p1, p2, nil)
	require.NoError(t, err)

	result, err := b.Execute(pair, p1, p2)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "embermite", result.Offspring.SpeciesID)
	assert.Equal(t, 1, result.Offspring.Level, "offspring always start at level 1")
	assert.Equal(t, []string{"cinder_coat"}, result.InheritedTraits,
		"both parents rolled the same trait; duplicates collapse")
	assert.Equal(t, result.InheritedTraits, result.Offspring.Traits)
	assert.False(t, result.Mutated)
}

func TestExecute_MutationAddsPoolTrait(t *testing.T) {
	reg := testRegistry(t)
	// Draws: offspring pick, parent traits 0 and 1, mutation roll succeeds
	// (0.01 < 0.05), mutation trait index 1.
	src := &scriptedSource{floats: []float64{0.0, 0.01}, ints: []int{0, 1, 1}}
	b := breeding.NewBreeder(reg, testTable(), src)

	p1 := instanceOf(t, reg, "embermite")
	p2 := instanceOf(t, reg, "embermite")
	pair, err := b.NewPair(p1, p2, nil)
	require.NoError(t, err)

	result, err := b.Execute(pair, p1, p2)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Mutated)
	assert.Equal(t, "nocturne", result.MutationTrait)
	assert.Equal(t, []string{"cinder_coat", "quick_hatch"}, result.InheritedTraits)
	assert.Equal(t, []string{"cinder_coat", "quick_hatch", "nocturne"}, result.Offspring.Traits,
		"the mutation trait rides on top of the inherited ones")
}

func TestExecute_SeededRunIsReproducible(t *testing.T) {
	reg := testRegistry(t)
	p1 := instanceOf(t, reg, "embermite")
	p2 := instanceOf(t, reg, "embermite")

	run := func(seed int64) *breeding.Result {
		b := breeding.NewBreeder(reg, testTable(), rng.NewSeededSource(seed))
		pair, err := b.NewPair(p1, p2, nil)
		require.NoError(t, err)
		result, err := b.Execute(pair, p1, p2)
		require.NoError(t, err)
		require.NotNil(t, result)
		return result
	}

	a, b2 := run(99), run(99)
	assert.Equal(t, a.InheritedTraits, b2.InheritedTraits)
	assert.Equal(t, a.Mutated, b2.Mutated)
	assert.Equal(t, a.Offspring.SpeciesID, b2.Offspring.SpeciesID)
}

func TestCompatibleCandidates(t *testing.T) {
	reg := testRegistry(t)
	b := breeding.NewBreeder(reg, testTable(), &scriptedSource{})

	parent := instanceOf(t, reg, "embermite")
	mate := instanceOf(t, reg, "embermite")
	warden := instanceOf(t, reg, "terrapup")
	gale := instanceOf(t, reg, "zephyrling")
	loner := instanceOf(t, reg, "groupless")

	got := b.CompatibleCandidates(parent, []species.Instance{parent, mate, warden, gale, loner})

	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.InstanceID
	}
	assert.Contains(t, ids, mate.InstanceID)
	assert.Contains(t, ids, warden.InstanceID, "a recipe exists even when the floor is unmet")
	assert.NotContains(t, ids, parent.InstanceID, "a monster cannot pair with itself")
	assert.NotContains(t, ids, gale.InstanceID, "no recipe covers ember+gale")
	assert.NotContains(t, ids, loner.InstanceID)
}
