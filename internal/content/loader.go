// Package content loads the static game data directory into the registries
// the rules core consumes. Content is loaded once at startup; the registries
// are immutable afterwards.
package content

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mkerrigan/wildbound/internal/game/ability"
	"github.com/mkerrigan/wildbound/internal/game/breeding"
	"github.com/mkerrigan/wildbound/internal/game/item"
	"github.com/mkerrigan/wildbound/internal/game/quest"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/status"
)

// Store bundles every loaded registry plus the breeding table.
type Store struct {
	Species   *species.Registry
	Abilities *ability.Registry
	Statuses  *status.Registry
	Items     *item.Registry
	Quests    *quest.Registry
	Breeding  *breeding.Table
}

// Load reads the content directory layout:
//
//	<dir>/species/*.yaml
//	<dir>/abilities/*.yaml
//	<dir>/statuses/*.yaml
//	<dir>/items/*.yaml
//	<dir>/quests/*.yaml
//	<dir>/breeding.yaml
//
// Every definition is validated on load; the first failure aborts with a
// wrapped error naming the file.
//
// Postcondition: on nil error, all registries are non-nil and internally
// valid; call VerifyReferences to check cross-registry links.
func Load(dir string) (*Store, error) {
	sp, err := species.LoadDirectory(filepath.Join(dir, "species"))
	if err != nil {
		return nil, fmt.Errorf("loading species: %w", err)
	}
	ab, err := ability.LoadDirectory(filepath.Join(dir, "abilities"))
	if err != nil {
		return nil, fmt.Errorf("loading abilities: %w", err)
	}
	st, err := status.LoadDirectory(filepath.Join(dir, "statuses"))
	if err != nil {
		return nil, fmt.Errorf("loading statuses: %w", err)
	}
	it, err := item.LoadDirectory(filepath.Join(dir, "items"))
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	qs, err := quest.LoadDirectory(filepath.Join(dir, "quests"))
	if err != nil {
		return nil, fmt.Errorf("loading quests: %w", err)
	}
	br, err := breeding.LoadFile(filepath.Join(dir, "breeding.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading breeding table: %w", err)
	}
	return &Store{
		Species:   sp,
		Abilities: ab,
		Statuses:  st,
		Items:     it,
		Quests:    qs,
		Breeding:  br,
	}, nil
}

// VerifyReferences checks every cross-registry link: species learnsets name
// real abilities, ability payloads name real statuses, consumable cures name
// real statuses, breeding recipes produce registered species, and quest
// rewards grant registered items. All violations are reported together.
//
// Postcondition: returns nil iff the content is referentially closed.
func (s *Store) VerifyReferences() error {
	var errs []string

	for _, sp := range s.Species.All() {
		for _, la := range sp.Learnset {
			if _, ok := s.Abilities.Get(la.AbilityID); !ok {
				errs = append(errs, fmt.Sprintf("species %q: learnset references unknown ability %q", sp.ID, la.AbilityID))
			}
		}
	}
	for _, ab := range s.Abilities.All() {
		if ab.Status != nil {
			if _, ok := s.Statuses.Get(ab.Status.StatusID); !ok {
				errs = append(errs, fmt.Sprintf("ability %q: references unknown status %q", ab.ID, ab.Status.StatusID))
			}
		}
	}
	for _, it := range s.Items.All() {
		for _, sid := range it.CuresStatus {
			if _, ok := s.Statuses.Get(sid); !ok {
				errs = append(errs, fmt.Sprintf("item %q: cures unknown status %q", it.ID, sid))
			}
		}
	}
	for _, recipe := range s.Breeding.Recipes {
		for _, opt := range recipe.Offspring {
			if _, ok := s.Species.Get(opt.SpeciesID); !ok {
				errs = append(errs, fmt.Sprintf("breeding recipe %s+%s: offspring references unknown species %q",
					recipe.Groups[0], recipe.Groups[1], opt.SpeciesID))
			}
		}
	}
	for _, q := range s.Quests.All() {
		for _, ir := range q.Rewards.Items {
			if _, ok := s.Items.Get(ir.ItemID); !ok {
				errs = append(errs, fmt.Sprintf("quest %q: reward references unknown item %q", q.ID, ir.ItemID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("content reference check failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
