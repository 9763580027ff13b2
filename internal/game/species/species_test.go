package species_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkerrigan/wildbound/internal/game/element"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/stats"
)

func validSpecies() *species.Species {
	return &species.Species{
		ID:      "embermite",
		Name:    "Embermite",
		Element: element.Fire,
		Rarity:  "common",
		BaseStats: stats.Block{
			MaxHP: 22, CurrentHP: 22, MaxMP: 8, CurrentMP: 8,
			Attack: 7, Defense: 4, MagicAttack: 6, MagicDefense: 4,
			Speed: 6, Luck: 4,
		},
		Growth: stats.Growth{MaxHP: 4, MaxMP: 2, Attack: 2, Defense: 1, MagicAttack: 2, MagicDefense: 1, Speed: 1, Luck: 1},
		Learnset: []species.LearnableAbility{
			{AbilityID: "ember_spit", Level: 1},
			{AbilityID: "venom_bite", Level: 4},
		},
		CaptureDifficulty: 0.9,
		BreedingGroup:     "ember",
		Rewards:           species.RewardTable{Experience: 14},
	}
}

func TestSpecies_Validate(t *testing.T) {
	require.NoError(t, validSpecies().Validate())

	sp := validSpecies()
	sp.ID = ""
	assert.Error(t, sp.Validate(), "missing id")

	sp = validSpecies()
	sp.Rarity = "mythic"
	assert.Error(t, sp.Validate(), "unknown rarity")

	sp = validSpecies()
	sp.BaseStats.MaxHP = 0
	assert.Error(t, sp.Validate(), "zero max HP")

	sp = validSpecies()
	sp.CaptureDifficulty = 0
	assert.Error(t, sp.Validate(), "capture difficulty must be in (0, 1]")

	sp = validSpecies()
	sp.CaptureDifficulty = 1.2
	assert.Error(t, sp.Validate(), "capture difficulty above 1")

	sp = validSpecies()
	sp.Learnset = []species.LearnableAbility{{AbilityID: "ember_spit", Level: 0}}
	assert.Error(t, sp.Validate(), "learnset level gate below 1")
}

func TestLoadFromBytes(t *testing.T) {
	data := []byte(`
id: aquafin
name: Aquafin
element: water
rarity: common
base_stats:
  max_hp: 24
  current_hp: 24
  max_mp: 10
  current_mp: 10
  attack: 6
  defense: 5
  magic_attack: 7
  magic_defense: 5
  speed: 8
  luck: 4
growth:
  max_hp: 4
  max_mp: 2
  attack: 1
  defense: 2
  magic_attack: 2
  magic_defense: 2
  speed: 1
  luck: 1
learnset:
  - ability: aqua_jet
    level: 1
capture_difficulty: 0.85
breeding_group: tide
`)
	sp, err := species.LoadFromBytes(data)
	require.NoError(t, err)
	assert.Equal(t, "aquafin", sp.ID)
	assert.Equal(t, element.Water, sp.Element)
	assert.Equal(t, 24, sp.BaseStats.MaxHP)
	require.Len(t, sp.Learnset, 1)
	assert.Equal(t, "aqua_jet", sp.Learnset[0].AbilityID)
}

func TestLoadFromBytes_RejectsUnknownFields(t *testing.T) {
	_, err := species.LoadFromBytes([]byte("id: x\nname: X\nshiny: true\n"))
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	reg := species.NewRegistry()
	sp := validSpecies()
	reg.Register(sp)

	got, ok := reg.Get("embermite")
	require.True(t, ok)
	assert.Same(t, sp, got)

	_, ok = reg.Get("nonexistent")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}
