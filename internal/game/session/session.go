// Package session defines the GameSession aggregate the top-level game loop
// owns and passes into every core call, replacing any ambient global state.
// All mutators are value-in, value-out so callers can snapshot freely.
package session

import (
	"fmt"
	"maps"
	"time"

	"github.com/mkerrigan/wildbound/internal/game/quest"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/stats"
)

// MaxSquadSize caps the battle squad.
const MaxSquadSize = 4

// Location names where a monster instance currently lives.
type Location string

const (
	LocationSquad   Location = "squad"
	LocationStorage Location = "storage"
	LocationNone    Location = ""
)

// Session is the full mutable per-playthrough state.
//
// Invariant: a monster instance ID appears in at most one of Squad and
// Storage; AddMonster and the Move functions preserve this.
type Session struct {
	Player  stats.PlayerCharacter
	Squad   []species.Instance
	Storage []species.Instance
	// Inventory maps item ID to held quantity; absent means zero.
	Inventory         map[string]int
	ActiveQuests      []quest.Progress
	CompletedQuestIDs []string
	UpdatedAt         time.Time
}

// New creates a session for a fresh playthrough.
func New(player stats.PlayerCharacter, now time.Time) Session {
	return Session{
		Player:    player,
		Inventory: make(map[string]int),
		UpdatedAt: now,
	}
}

// clone deep-copies the session's owned collections.
func clone(s Session) Session {
	cp := s
	cp.Squad = append([]species.Instance(nil), s.Squad...)
	cp.Storage = append([]species.Instance(nil), s.Storage...)
	cp.Inventory = make(map[string]int, len(s.Inventory))
	maps.Copy(cp.Inventory, s.Inventory)
	cp.ActiveQuests = append([]quest.Progress(nil), s.ActiveQuests...)
	cp.CompletedQuestIDs = append([]string(nil), s.CompletedQuestIDs...)
	return cp
}

// Find returns the instance with the given ID and where it lives.
func (s Session) Find(instanceID string) (species.Instance, Location, bool) {
	for _, inst := range s.Squad {
		if inst.InstanceID == instanceID {
			return inst, LocationSquad, true
		}
	}
	for _, inst := range s.Storage {
		if inst.InstanceID == instanceID {
			return inst, LocationStorage, true
		}
	}
	return species.Instance{}, LocationNone, false
}

// AddMonster places a newly captured or bred instance into the squad when
// there is room, otherwise into storage.
//
// Precondition: inst.InstanceID must not already be owned by the session.
// Postcondition: the instance lives in exactly one list; returns where it
// was placed.
func AddMonster(s Session, inst species.Instance, now time.Time) (Session, Location, error) {
	if _, loc, ok := s.Find(inst.InstanceID); ok {
		return s, loc, fmt.Errorf("session: instance %s already owned (in %s)", inst.InstanceID, loc)
	}
	out := clone(s)
	out.UpdatedAt = now
	if len(out.Squad) < MaxSquadSize {
		inst.InSquad = true
		out.Squad = append(out.Squad, inst)
		return out, LocationSquad, nil
	}
	inst.InSquad = false
	out.Storage = append(out.Storage, inst)
	return out, LocationStorage, nil
}

// MoveToStorage moves the squad member with instanceID into storage.
// Returns the input unchanged with ok=false when the instance is not in the
// squad.
func MoveToStorage(s Session, instanceID string, now time.Time) (Session, bool) {
	for i, inst := range s.Squad {
		if inst.InstanceID != instanceID {
			continue
		}
		out := clone(s)
		out.UpdatedAt = now
		moved := inst
		moved.InSquad = false
		out.Squad = append(out.Squad[:i], out.Squad[i+1:]...)
		out.Storage = append(out.Storage, moved)
		return out, true
	}
	return s, false
}

// MoveToSquad moves the stored instance with instanceID into the squad.
// Returns the input unchanged with ok=false when the instance is not in
// storage or the squad is full.
func MoveToSquad(s Session, instanceID string, now time.Time) (Session, bool) {
	if len(s.Squad) >= MaxSquadSize {
		return s, false
	}
	for i, inst := range s.Storage {
		if inst.InstanceID != instanceID {
			continue
		}
		out := clone(s)
		out.UpdatedAt = now
		moved := inst
		moved.InSquad = true
		out.Storage = append(out.Storage[:i], out.Storage[i+1:]...)
		out.Squad = append(out.Squad, moved)
		return out, true
	}
	return s, false
}

// UpdateInstance replaces the owned instance with the same ID, wherever it
// lives, with updated. Used to write battle results and experience gains
// back into the session. Returns ok=false when the ID is not owned.
func UpdateInstance(s Session, updated species.Instance, now time.Time) (Session, bool) {
	_, loc, ok := s.Find(updated.InstanceID)
	if !ok {
		return s, false
	}
	out := clone(s)
	out.UpdatedAt = now
	list := out.Squad
	if loc == LocationStorage {
		list = out.Storage
	}
	for i := range list {
		if list[i].InstanceID == updated.InstanceID {
			updated.InSquad = loc == LocationSquad
			list[i] = updated
			break
		}
	}
	return out, true
}

// AddItem adds qty units of itemID to the inventory. Negative quantities are
// ignored.
func AddItem(s Session, itemID string, qty int, now time.Time) Session {
	if qty <= 0 {
		return s
	}
	out := clone(s)
	out.UpdatedAt = now
	out.Inventory[itemID] += qty
	return out
}

// ConsumeItem removes one unit of itemID. Returns the input unchanged with
// ok=false when none are held; the battle engine reports item use but this
// settlement is the caller's responsibility.
func ConsumeItem(s Session, itemID string, now time.Time) (Session, bool) {
	if s.Inventory[itemID] <= 0 {
		return s, false
	}
	out := clone(s)
	out.UpdatedAt = now
	out.Inventory[itemID]--
	if out.Inventory[itemID] == 0 {
		delete(out.Inventory, itemID)
	}
	return out, true
}
