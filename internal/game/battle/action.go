package battle

// ActionType identifies what the current actor intends to do on their turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack                    // basic physical strike at a single target
	ActionAbility                   // use a learned ability
	ActionItem                      // use a consumable from the caller's inventory
	ActionCapture                   // throw a capture device at a wild enemy
	ActionFlee                      // attempt to escape the battle
	ActionDefend                    // halve incoming damage until next turn
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	case ActionItem:
		return "item"
	case ActionCapture:
		return "capture"
	case ActionFlee:
		return "flee"
	case ActionDefend:
		return "defend"
	default:
		return "unknown"
	}
}

// Action is the tagged union the UI submits for the current actor's turn.
// Which payload fields are read depends on Type; the engine matches Type
// exhaustively and reports unexpected payloads as invalid results.
type Action struct {
	Type ActionType
	// TargetID selects the target combatant for attack, ability, item, and
	// capture actions.
	TargetID string
	// AbilityID names the ability for ActionAbility.
	AbilityID string
	// ItemID names the item for ActionItem and the capture device for
	// ActionCapture. Consuming the unit from inventory is the caller's
	// responsibility; the engine only reports that it was used.
	ItemID string
	// CaptureModifiers are caller-supplied named bonus factors for
	// ActionCapture (held charms, bond bonuses). The engine adds the
	// target's status factor and species difficulty itself.
	CaptureModifiers []CaptureModifier
}
