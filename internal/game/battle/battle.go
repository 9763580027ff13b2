package battle

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mkerrigan/wildbound/internal/game/species"
)

// State is the battle lifecycle state.
type State int

const (
	// StateActive covers the whole start/player-turn/enemy-turn cycle;
	// whose turn it is falls out of the turn order and index.
	StateActive State = iota
	StateVictory
	StateDefeat
	StateFled
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	case StateFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Rewards is populated only when a battle reaches StateVictory.
type Rewards struct {
	// Experience is the exact sum of defeated species' reward experience.
	Experience int
	Gold       int
	Items      []species.DroppedItem
	// Captured is the monster instance created by a successful capture
	// during this battle, if any.
	Captured *species.Instance
}

// Battle is the aggregate state of one encounter. It is created at battle
// start from squad and enemy data and discarded at battle end; the caller
// writes surviving results back to the persistent records.
type Battle struct {
	ID string
	// Order is the speed-sorted turn order across both squads. Ties keep
	// original squad-insertion order (players first, then enemies).
	Order []*Combatant
	// turnIndex is the index of the current actor in Order.
	turnIndex int
	State     State
	// TurnCount increments each time the turn index wraps.
	TurnCount int
	CanFlee   bool
	// Rewards is nil until the battle reaches StateVictory.
	Rewards *Rewards
	// captured records a successful capture until rewards are settled.
	captured *species.Instance
}

// New creates a battle from the two squads. Turn order is computed once, by
// descending effective speed, with a stable sort so ties keep insertion
// order.
//
// Precondition: both squads must be non-empty.
func New(playerSquad, enemySquad []*Combatant, canFlee bool) (*Battle, error) {
	if len(playerSquad) == 0 {
		return nil, fmt.Errorf("battle: player squad must not be empty")
	}
	if len(enemySquad) == 0 {
		return nil, fmt.Errorf("battle: enemy squad must not be empty")
	}

	order := make([]*Combatant, 0, len(playerSquad)+len(enemySquad))
	order = append(order, playerSquad...)
	order = append(order, enemySquad...)
	sortBySpeedDesc(order)

	return &Battle{
		ID:      uuid.New().String(),
		Order:   order,
		State:   StateActive,
		CanFlee: canFlee,
	}, nil
}

// sortBySpeedDesc sorts combatants in place, highest speed first. Insertion
// sort with a strict comparison keeps equal-speed combatants in their
// original order.
func sortBySpeedDesc(combatants []*Combatant) {
	n := len(combatants)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && combatants[j].Stats.Speed > combatants[j-1].Stats.Speed; j-- {
			combatants[j], combatants[j-1] = combatants[j-1], combatants[j]
		}
	}
}

// CurrentActor returns the combatant whose turn it is, skipping combatants
// that are out of the battle.
//
// Postcondition: returns a combatant with IsOut() false, or nil if none
// remain.
func (b *Battle) CurrentActor() *Combatant {
	for range b.Order {
		c := b.Order[b.turnIndex]
		if !c.IsOut() {
			return c
		}
		b.advanceIndex()
	}
	return nil
}

// AdvanceTurn moves to the next combatant in turn order that is still in the
// battle. Wrapping past the end of the order increments TurnCount.
func (b *Battle) AdvanceTurn() {
	b.advanceIndex()
	for range b.Order {
		if !b.Order[b.turnIndex].IsOut() {
			return
		}
		b.advanceIndex()
	}
}

func (b *Battle) advanceIndex() {
	b.turnIndex++
	if b.turnIndex >= len(b.Order) {
		b.turnIndex = 0
		b.TurnCount++
	}
}

// Combatant returns the combatant with the given ID, or (nil, false).
func (b *Battle) Combatant(id string) (*Combatant, bool) {
	for _, c := range b.Order {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// LivingOnSide returns the combatants on side that are still in the battle.
func (b *Battle) LivingOnSide(side Side) []*Combatant {
	var alive []*Combatant
	for _, c := range b.Order {
		if c.Side == side && !c.IsOut() {
			alive = append(alive, c)
		}
	}
	return alive
}

// sideDown reports whether every combatant on side is out of the battle.
func (b *Battle) sideDown(side Side) bool {
	return len(b.LivingOnSide(side)) == 0
}
