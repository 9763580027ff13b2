package stats

import "errors"

// PlayerCharacter is the player's persistent progression state. All mutators
// are value-in, value-out: they return an updated copy and never modify the
// receiver, so callers can snapshot freely.
type PlayerCharacter struct {
	Name       string
	Level      int
	Experience int
	// ExperienceToNext caches XPToNextLevel(Level).
	ExperienceToNext int
	Stats            Block
	Growth           Growth
	Gold             int
}

// startingStats is the fixed level 1 template for new players.
var startingStats = Block{
	MaxHP:        30,
	CurrentHP:    30,
	MaxMP:        12,
	CurrentMP:    12,
	Attack:       8,
	Defense:      6,
	MagicAttack:  7,
	MagicDefense: 5,
	Speed:        7,
	Luck:         5,
}

// startingGrowth is the fixed per-level gain for players.
var startingGrowth = Growth{
	MaxHP:        6,
	MaxMP:        3,
	Attack:       2,
	Defense:      2,
	MagicAttack:  2,
	MagicDefense: 1,
	Speed:        1,
	Luck:         1,
}

// NewPlayer creates a level 1 player with the starting stat template and no
// experience or gold.
//
// Precondition: name must be non-empty.
func NewPlayer(name string) (PlayerCharacter, error) {
	if name == "" {
		return PlayerCharacter{}, errors.New("player name must not be empty")
	}
	return PlayerCharacter{
		Name:             name,
		Level:            1,
		Experience:       0,
		ExperienceToNext: XPToNextLevel(1),
		Stats:            startingStats,
		Growth:           startingGrowth,
	}, nil
}

// AddExperience accumulates amount and performs level-up steps while the
// total meets the threshold, supporting multi-level gains in one call. Each
// step raises the max stats by the growth rates and restores both pools to
// the new maximums. Negative amounts are ignored.
//
// Postcondition: result.Experience < result.ExperienceToNext.
func AddExperience(p PlayerCharacter, amount int) PlayerCharacter {
	if amount < 0 {
		return p
	}
	base := levelOneBaseline(p.Stats, p.Growth, p.Level)
	p.Experience += amount
	leveled := false
	for p.Experience >= p.ExperienceToNext {
		p.Experience -= p.ExperienceToNext
		p.Level++
		p.ExperienceToNext = XPToNextLevel(p.Level)
		leveled = true
	}
	if leveled {
		p.Stats = Grown(base, p.Growth, p.Level)
	}
	return p
}

// levelOneBaseline recovers the level 1 stat template by unwinding the growth
// already applied at the given level, so Grown can recompute the max stats
// from a single deterministic formula instead of compounding increments.
func levelOneBaseline(b Block, g Growth, level int) Block {
	steps := level - 1
	b.MaxHP -= g.MaxHP * steps
	b.MaxMP -= g.MaxMP * steps
	b.Attack -= g.Attack * steps
	b.Defense -= g.Defense * steps
	b.MagicAttack -= g.MagicAttack * steps
	b.MagicDefense -= g.MagicDefense * steps
	b.Speed -= g.Speed * steps
	b.Luck -= g.Luck * steps
	return b
}

// FullHeal restores both pools to their maximums.
func FullHeal(p PlayerCharacter) PlayerCharacter {
	p.Stats = p.Stats.FullyRestored()
	return p
}

// AddGold applies delta to the player's gold, clamping at zero. Clamping is
// the policy: spending more than the player holds silently empties the purse
// rather than failing.
//
// Postcondition: result.Gold >= 0.
func AddGold(p PlayerCharacter, delta int) PlayerCharacter {
	p.Gold += delta
	if p.Gold < 0 {
		p.Gold = 0
	}
	return p
}
