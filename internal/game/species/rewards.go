package species

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mkerrigan/wildbound/internal/game/rng"
)

// GoldDrop defines the range of gold a defeated monster yields.
type GoldDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop defines a single item entry in a reward table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// RewardTable defines the experience, gold, and item drops granted when a
// monster of this species is defeated.
type RewardTable struct {
	Experience int        `yaml:"experience"`
	Gold       *GoldDrop  `yaml:"gold"`
	Items      []ItemDrop `yaml:"items"`
}

// Validate checks that the reward table satisfies its invariants.
//
// Postcondition: returns nil iff all gold and item constraints hold; an
// empty table (no gold, no items, zero experience) is valid.
func (rt RewardTable) Validate() error {
	if rt.Experience < 0 {
		return fmt.Errorf("reward table: experience must be >= 0, got %d", rt.Experience)
	}
	if rt.Gold != nil {
		if rt.Gold.Min < 0 {
			return fmt.Errorf("reward table: gold min must be >= 0, got %d", rt.Gold.Min)
		}
		if rt.Gold.Min > rt.Gold.Max {
			return fmt.Errorf("reward table: gold min (%d) must be <= max (%d)", rt.Gold.Min, rt.Gold.Max)
		}
	}
	for i, item := range rt.Items {
		if item.ItemID == "" {
			return fmt.Errorf("reward table: item[%d] must have a non-empty item id", i)
		}
		if item.Chance <= 0 || item.Chance > 1.0 {
			return fmt.Errorf("reward table: item[%d] chance must be in (0, 1.0], got %f", i, item.Chance)
		}
		if item.MinQty < 1 {
			return fmt.Errorf("reward table: item[%d] min_qty must be >= 1, got %d", i, item.MinQty)
		}
		if item.MinQty > item.MaxQty {
			return fmt.Errorf("reward table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, item.MinQty, item.MaxQty)
		}
	}
	return nil
}

// DroppedItem represents a single item instance in a rolled reward.
type DroppedItem struct {
	ItemDefID  string
	InstanceID string
	Quantity   int
}

// RolledReward holds the generated reward from a single defeat.
type RolledReward struct {
	Experience int
	Gold       int
	Items      []DroppedItem
}

// RollRewards rolls gold and item drops from rt using src. Experience is
// fixed by the table and never randomised, so victory tests can assert it
// exactly.
//
// Precondition: rt must have passed Validate; src must be non-nil.
// Postcondition: Gold is in [Gold.Min, Gold.Max] if gold is set; each item's
// Quantity is in [MinQty, MaxQty] for items that pass the chance roll.
func RollRewards(rt RewardTable, src rng.Source) RolledReward {
	result := RolledReward{Experience: rt.Experience}

	if rt.Gold != nil && rt.Gold.Max > 0 {
		result.Gold = rng.IntBetween(src, rt.Gold.Min, rt.Gold.Max)
	}

	for _, item := range rt.Items {
		if rng.Chance(src, item.Chance) {
			result.Items = append(result.Items, DroppedItem{
				ItemDefID:  item.ItemID,
				InstanceID: uuid.New().String(),
				Quantity:   rng.IntBetween(src, item.MinQty, item.MaxQty),
			})
		}
	}
	return result
}
