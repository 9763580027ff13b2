// Package stats defines the core stat block and the pure progression rules
// shared by players and monsters.
package stats

// Block holds the ten combat-relevant stats for a player or monster.
// All fields are non-negative; CurrentHP <= MaxHP and CurrentMP <= MaxMP
// after every mutation (enforced by Clamped).
type Block struct {
	MaxHP        int `yaml:"max_hp"`
	CurrentHP    int `yaml:"current_hp"`
	MaxMP        int `yaml:"max_mp"`
	CurrentMP    int `yaml:"current_mp"`
	Attack       int `yaml:"attack"`
	Defense      int `yaml:"defense"`
	MagicAttack  int `yaml:"magic_attack"`
	MagicDefense int `yaml:"magic_defense"`
	Speed        int `yaml:"speed"`
	Luck         int `yaml:"luck"`
}

// Clamped returns a copy of b with every field floored at zero and the
// current pools capped at their maximums. Every mutator in this package and
// in the battle engine runs its result through Clamped, so invariant
// violations are prevented at the point of mutation rather than detected
// after the fact.
func (b Block) Clamped() Block {
	if b.MaxHP < 0 {
		b.MaxHP = 0
	}
	if b.MaxMP < 0 {
		b.MaxMP = 0
	}
	if b.CurrentHP < 0 {
		b.CurrentHP = 0
	}
	if b.CurrentHP > b.MaxHP {
		b.CurrentHP = b.MaxHP
	}
	if b.CurrentMP < 0 {
		b.CurrentMP = 0
	}
	if b.CurrentMP > b.MaxMP {
		b.CurrentMP = b.MaxMP
	}
	if b.Attack < 0 {
		b.Attack = 0
	}
	if b.Defense < 0 {
		b.Defense = 0
	}
	if b.MagicAttack < 0 {
		b.MagicAttack = 0
	}
	if b.MagicDefense < 0 {
		b.MagicDefense = 0
	}
	if b.Speed < 0 {
		b.Speed = 0
	}
	if b.Luck < 0 {
		b.Luck = 0
	}
	return b
}

// WithDamage returns a copy of b with CurrentHP reduced by amount, floored
// at zero.
//
// Precondition: amount >= 0.
// Postcondition: result.CurrentHP >= 0.
func (b Block) WithDamage(amount int) Block {
	b.CurrentHP -= amount
	return b.Clamped()
}

// WithHealing returns a copy of b with CurrentHP raised by amount, capped at
// MaxHP.
//
// Precondition: amount >= 0.
func (b Block) WithHealing(amount int) Block {
	b.CurrentHP += amount
	return b.Clamped()
}

// WithMPSpent returns a copy of b with CurrentMP reduced by cost, floored at
// zero. Callers check affordability first; this is the settlement step.
func (b Block) WithMPSpent(cost int) Block {
	b.CurrentMP -= cost
	return b.Clamped()
}

// WithMPRestored returns a copy of b with CurrentMP raised by amount, capped
// at MaxMP.
func (b Block) WithMPRestored(amount int) Block {
	b.CurrentMP += amount
	return b.Clamped()
}

// FullyRestored returns a copy of b with both pools at their maximums.
func (b Block) FullyRestored() Block {
	b.CurrentHP = b.MaxHP
	b.CurrentMP = b.MaxMP
	return b
}

// IsExhausted reports whether CurrentHP has reached zero.
func (b Block) IsExhausted() bool { return b.CurrentHP <= 0 }

// Growth holds the additive per-level stat gains for a species or class.
// Pools grow through MaxHP/MaxMP; current values are not part of growth.
type Growth struct {
	MaxHP        int `yaml:"max_hp"`
	MaxMP        int `yaml:"max_mp"`
	Attack       int `yaml:"attack"`
	Defense      int `yaml:"defense"`
	MagicAttack  int `yaml:"magic_attack"`
	MagicDefense int `yaml:"magic_defense"`
	Speed        int `yaml:"speed"`
	Luck         int `yaml:"luck"`
}

// Grown returns base advanced by growth applied (level-1) times. The result
// has full pools. Deterministic: Grown(base, g, level) always yields the same
// Block for the same inputs, and every stat is monotonically non-decreasing
// in level for non-negative growth.
//
// Precondition: level >= 1.
func Grown(base Block, g Growth, level int) Block {
	if level < 1 {
		level = 1
	}
	steps := level - 1
	b := Block{
		MaxHP:        base.MaxHP + g.MaxHP*steps,
		MaxMP:        base.MaxMP + g.MaxMP*steps,
		Attack:       base.Attack + g.Attack*steps,
		Defense:      base.Defense + g.Defense*steps,
		MagicAttack:  base.MagicAttack + g.MagicAttack*steps,
		MagicDefense: base.MagicDefense + g.MagicDefense*steps,
		Speed:        base.Speed + g.Speed*steps,
		Luck:         base.Luck + g.Luck*steps,
	}
	return b.FullyRestored().Clamped()
}
