package battle

import (
	"github.com/mkerrigan/wildbound/internal/game/ability"
	"github.com/mkerrigan/wildbound/internal/game/status"
)

// ResultKind tags what actually happened when an action was submitted.
type ResultKind int

const (
	// ResultInvalid reports an expected failure (unknown ability,
	// insufficient MP, bad capture target). The battle state is unchanged
	// and the actor's turn is not consumed.
	ResultInvalid ResultKind = iota
	ResultAttack
	ResultAbility
	ResultItem
	ResultCapture
	ResultFlee
	ResultDefend
	// ResultCollapsed reports that the actor fell to its own status tick
	// before acting; the submitted action never ran.
	ResultCollapsed
)

// String returns the human-readable name of the ResultKind.
func (k ResultKind) String() string {
	switch k {
	case ResultInvalid:
		return "invalid"
	case ResultAttack:
		return "attack"
	case ResultAbility:
		return "ability"
	case ResultItem:
		return "item"
	case ResultCapture:
		return "capture"
	case ResultFlee:
		return "flee"
	case ResultDefend:
		return "defend"
	case ResultCollapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Result describes everything one submitted action did, for the UI to
// render. Expected game failures arrive here as ResultInvalid with a Reason;
// the engine returns a Go error only for programmer mistakes such as unknown
// combatant IDs.
type Result struct {
	Kind      ResultKind
	ActorID   string
	ActorName string
	TargetID  string
	// Reason is set only for ResultInvalid.
	Reason string
	// Tick is the actor's pre-action status tick, nil when the actor had
	// no active effects.
	Tick *status.TickResult
	// Outcome is set for attack and ability results.
	Outcome *ability.Outcome
	// StatusApplied is the status definition ID attached to the target.
	StatusApplied string
	// Item-use reporting. Inventory mutation stays with the caller.
	ItemUsed      string
	RestoredHP    int
	RestoredMP    int
	CuredStatuses []string
	// Capture is set for ResultCapture, success or failure.
	Capture *CaptureResult
	// FleeChance and Fled are set for ResultFlee.
	FleeChance float64
	Fled       bool
	// State is the battle state after the action resolved.
	State State
	// TurnCount is the battle turn counter after the action resolved.
	TurnCount int
	// Rewards is non-nil only when State is StateVictory.
	Rewards *Rewards
}
