// Package quest provides quest definitions and the pure objective-progress
// tracker.
package quest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Objective trigger kinds.
const (
	TriggerDefeatSpecies  = "defeat_species"
	TriggerCaptureSpecies = "capture_species"
	TriggerTalkNPC        = "talk_npc"
	TriggerCollectItem    = "collect_item"
	TriggerWinBattles     = "win_battles"
	TriggerBreedMonster   = "breed_monster"
)

var validTriggers = map[string]bool{
	TriggerDefeatSpecies:  true,
	TriggerCaptureSpecies: true,
	TriggerTalkNPC:        true,
	TriggerCollectItem:    true,
	TriggerWinBattles:     true,
	TriggerBreedMonster:   true,
}

// Objective is a single trackable sub-goal of a quest.
type Objective struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	// Trigger is one of the Trigger* constants.
	Trigger string `yaml:"trigger"`
	// TargetID filters which events count (a species, NPC, or item ID).
	// Empty means any event of the trigger kind counts.
	TargetID      string `yaml:"target"`
	RequiredCount int    `yaml:"required_count"`
}

// ItemReward is one item grant in a quest's reward definition.
type ItemReward struct {
	ItemID   string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// RewardSpec is the static reward definition applied by the caller at
// turn-in.
type RewardSpec struct {
	Experience int          `yaml:"experience"`
	Gold       int          `yaml:"gold"`
	Items      []ItemReward `yaml:"items"`
}

// Quest is the static definition of a quest, loaded from YAML.
type Quest struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Objectives  []Objective `yaml:"objectives"`
	Rewards     RewardSpec  `yaml:"rewards"`
}

// Validate checks that the quest satisfies its invariants.
//
// Precondition: q must not be nil.
func (q *Quest) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("quest: id must not be empty")
	}
	if q.Name == "" {
		return fmt.Errorf("quest %q: name must not be empty", q.ID)
	}
	if len(q.Objectives) == 0 {
		return fmt.Errorf("quest %q: must have at least one objective", q.ID)
	}
	seen := make(map[string]bool, len(q.Objectives))
	for i, obj := range q.Objectives {
		if obj.ID == "" {
			return fmt.Errorf("quest %q: objective[%d] must have an id", q.ID, i)
		}
		if seen[obj.ID] {
			return fmt.Errorf("quest %q: duplicate objective id %q", q.ID, obj.ID)
		}
		seen[obj.ID] = true
		if !validTriggers[obj.Trigger] {
			return fmt.Errorf("quest %q: objective %q has unknown trigger %q", q.ID, obj.ID, obj.Trigger)
		}
		if obj.RequiredCount < 1 {
			return fmt.Errorf("quest %q: objective %q required_count must be >= 1, got %d", q.ID, obj.ID, obj.RequiredCount)
		}
	}
	if q.Rewards.Experience < 0 || q.Rewards.Gold < 0 {
		return fmt.Errorf("quest %q: rewards must be >= 0", q.ID)
	}
	for i, ir := range q.Rewards.Items {
		if ir.ItemID == "" {
			return fmt.Errorf("quest %q: reward item[%d] must name an item", q.ID, i)
		}
		if ir.Quantity < 1 {
			return fmt.Errorf("quest %q: reward item[%d] quantity must be >= 1, got %d", q.ID, i, ir.Quantity)
		}
	}
	return nil
}

// Registry holds all known Quests keyed by ID.
type Registry struct {
	quests map[string]*Quest
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{quests: make(map[string]*Quest)}
}

// Register adds q to the registry, overwriting any existing entry with the
// same ID.
//
// Precondition: q must not be nil and q.ID must not be empty.
func (r *Registry) Register(q *Quest) {
	r.quests[q.ID] = q
}

// Get returns the Quest for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Quest, bool) {
	q, ok := r.quests[id]
	return q, ok
}

// All returns a snapshot slice of all registered Quests.
func (r *Registry) All() []*Quest {
	out := make([]*Quest, 0, len(r.quests))
	for _, q := range r.quests {
		out = append(out, q)
	}
	return out
}

// Len returns the number of registered quests.
func (r *Registry) Len() int { return len(r.quests) }

// LoadDirectory reads every *.yaml file in dir, parses each as a Quest, and
// returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns a non-nil Registry, or an error if any file fails
// to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading quest dir %q: %w", dir, err)
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
		var q Quest
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&q); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&q)
	}
	return reg, nil
}
