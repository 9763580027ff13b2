// Package element defines the elemental typing chart used by damage
// resolution and species definitions.
package element

import "fmt"

// Element is the elemental affinity of a species or ability.
// The zero value is Neutral, which neither boosts nor resists anything.
type Element int

const (
	Neutral Element = iota
	Fire
	Water
	Earth
	Air
	Shadow
)

// String returns the lowercase element name used in content files.
func (e Element) String() string {
	switch e {
	case Neutral:
		return "neutral"
	case Fire:
		return "fire"
	case Water:
		return "water"
	case Earth:
		return "earth"
	case Air:
		return "air"
	case Shadow:
		return "shadow"
	default:
		return "unknown"
	}
}

// Parse converts a content-file element name into an Element.
//
// Postcondition: returns a valid Element, or an error naming the bad input.
func Parse(s string) (Element, error) {
	switch s {
	case "", "neutral":
		return Neutral, nil
	case "fire":
		return Fire, nil
	case "water":
		return Water, nil
	case "earth":
		return Earth, nil
	case "air":
		return Air, nil
	case "shadow":
		return Shadow, nil
	default:
		return Neutral, fmt.Errorf("unknown element %q", s)
	}
}

// UnmarshalYAML decodes an element from its content-file name.
func (e *Element) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalYAML encodes an element as its content-file name.
func (e Element) MarshalYAML() (any, error) {
	return e.String(), nil
}

// Effectiveness multipliers. These are the canonical defaults for the
// four-element cycle (fire > air > earth > water > fire), with same-element
// hits resisted and shadow mutually super-effective against itself.
const (
	SuperEffective = 1.5
	Resisted       = 0.5
	NormalDamage   = 1.0
)

// advantage maps attacker element to the defender element it is strong
// against. The reverse pairing is resisted.
var advantage = map[Element]Element{
	Fire:  Air,
	Air:   Earth,
	Earth: Water,
	Water: Fire,
}

// Multiplier returns the damage multiplier for an attack of element atk
// against a defender of element def.
//
// Postcondition: returns exactly one of SuperEffective, Resisted, or
// NormalDamage.
func Multiplier(atk, def Element) float64 {
	if atk == Neutral || def == Neutral {
		return NormalDamage
	}
	if atk == Shadow && def == Shadow {
		return SuperEffective
	}
	if atk == def {
		return Resisted
	}
	if advantage[atk] == def {
		return SuperEffective
	}
	if advantage[def] == atk {
		return Resisted
	}
	return NormalDamage
}
