// Package item provides static item definitions: capture devices, battle
// consumables, and breeding offerings. Inventory quantities live on the
// session; this package only describes what each item does.
package item

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Item kinds.
const (
	KindCaptureDevice = "capture_device"
	KindConsumable    = "consumable"
	KindBreeding      = "breeding"
)

// Item is the static definition of an item, loaded from YAML.
type Item struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Kind is one of the Kind* constants.
	Kind  string `yaml:"kind"`
	Price int    `yaml:"price"`

	// CaptureRate is the base success rate of a capture device, in (0, 1].
	CaptureRate float64 `yaml:"capture_rate"`

	// RestoreHP/RestoreMP are the amounts a consumable restores.
	RestoreHP int `yaml:"restore_hp"`
	RestoreMP int `yaml:"restore_mp"`
	// CuresStatus lists status effect IDs a consumable removes.
	CuresStatus []string `yaml:"cures_status"`

	// CompatibilityBonus is added to the breeding compatibility score when
	// a breeding item is offered.
	CompatibilityBonus float64 `yaml:"compatibility_bonus"`
}

// Validate checks that the item satisfies its kind's invariants.
//
// Precondition: i must not be nil.
func (i *Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("item: id must not be empty")
	}
	if i.Name == "" {
		return fmt.Errorf("item %q: name must not be empty", i.ID)
	}
	if i.Price < 0 {
		return fmt.Errorf("item %q: price must be >= 0, got %d", i.ID, i.Price)
	}
	switch i.Kind {
	case KindCaptureDevice:
		if i.CaptureRate <= 0 || i.CaptureRate > 1 {
			return fmt.Errorf("item %q: capture_rate must be in (0, 1], got %f", i.ID, i.CaptureRate)
		}
	case KindConsumable:
		if i.RestoreHP < 0 || i.RestoreMP < 0 {
			return fmt.Errorf("item %q: restore amounts must be >= 0", i.ID)
		}
		if i.RestoreHP == 0 && i.RestoreMP == 0 && len(i.CuresStatus) == 0 {
			return fmt.Errorf("item %q: consumable must restore something or cure a status", i.ID)
		}
	case KindBreeding:
		if i.CompatibilityBonus <= 0 {
			return fmt.Errorf("item %q: compatibility_bonus must be > 0, got %f", i.ID, i.CompatibilityBonus)
		}
	default:
		return fmt.Errorf("item %q: unknown kind %q", i.ID, i.Kind)
	}
	return nil
}

// Registry holds all known Items keyed by ID.
type Registry struct {
	items map[string]*Item
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// Register adds i to the registry, overwriting any existing entry with the
// same ID.
//
// Precondition: i must not be nil and i.ID must not be empty.
func (r *Registry) Register(i *Item) {
	r.items[i.ID] = i
}

// Get returns the Item for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Item, bool) {
	i, ok := r.items[id]
	return i, ok
}

// All returns a snapshot slice of all registered Items.
func (r *Registry) All() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, i := range r.items {
		out = append(out, i)
	}
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int { return len(r.items) }

// LoadDirectory reads every *.yaml file in dir, parses each as an Item, and
// returns a populated Registry.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns a non-nil Registry, or an error if any file fails
// to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
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
		var it Item
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&it); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&it)
	}
	return reg, nil
}
