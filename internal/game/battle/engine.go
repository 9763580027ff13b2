package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mkerrigan/wildbound/internal/game/ability"
	"github.com/mkerrigan/wildbound/internal/game/element"
	"github.com/mkerrigan/wildbound/internal/game/item"
	"github.com/mkerrigan/wildbound/internal/game/rng"
	"github.com/mkerrigan/wildbound/internal/game/species"
	"github.com/mkerrigan/wildbound/internal/game/status"
)

// basicStrike is the built-in default attack every combatant can always use.
var basicStrike = &ability.Ability{
	ID:       "basic_strike",
	Name:     "Strike",
	Element:  element.Neutral,
	Kind:     ability.KindPhysical,
	Power:    50,
	Accuracy: 95,
	Target:   ability.TargetEnemy,
}

// Flee probability bounds and speed scaling.
const (
	fleeBaseChance  = 0.5
	fleePerSpeed    = 0.02
	fleeMinChance   = 0.1
	fleeMaxChance   = 0.95
)

// Engine resolves submitted actions against a Battle. It holds the static
// registries and the randomness source; all battle state lives on the Battle
// aggregate passed into Take.
type Engine struct {
	species   *species.Registry
	abilities *ability.Registry
	statuses  *status.Registry
	items     *item.Registry
	src       rng.Source
	logger    *zap.Logger
}

// NewEngine creates an Engine over the given registries.
//
// Precondition: all registries, src, and logger must be non-nil. Pass
// zap.NewNop() to discard engine logging.
func NewEngine(sp *species.Registry, ab *ability.Registry, st *status.Registry, it *item.Registry, src rng.Source, logger *zap.Logger) *Engine {
	return &Engine{
		species:   sp,
		abilities: ab,
		statuses:  st,
		items:     it,
		src:       src,
		logger:    logger,
	}
}

// Take resolves one action for the current actor of b. Expected game
// failures (miss, insufficient MP, invalid target) come back as Result
// variants with the battle unchanged; a Go error means a programmer mistake
// (nil battle, resolved battle, unknown combatant ID).
//
// Postcondition: on a nil error with Kind != ResultInvalid, the turn was
// consumed and Result.State reflects the battle after terminal checks.
func (e *Engine) Take(b *Battle, act Action) (Result, error) {
	if b == nil {
		return Result{}, fmt.Errorf("battle: Take called with nil battle")
	}
	if b.State != StateActive {
		return Result{}, fmt.Errorf("battle %s: already resolved as %s", b.ID, b.State)
	}
	actor := b.CurrentActor()
	if actor == nil {
		return Result{}, fmt.Errorf("battle %s: no living combatants", b.ID)
	}

	// Validate before mutating anything: an invalid action must not
	// consume the turn or tick the actor's statuses.
	if reason := e.validate(b, actor, act); reason != "" {
		return Result{
			Kind:      ResultInvalid,
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Reason:    reason,
			State:     b.State,
			TurnCount: b.TurnCount,
		}, nil
	}

	res := Result{
		ActorID:   actor.ID,
		ActorName: actor.Name,
	}

	// Defend wears off at the start of the defender's next turn.
	actor.Defending = false

	// Status effects tick before the actor's own action.
	if tick := actor.Statuses.Tick(); tick.Damage > 0 || tick.Healing > 0 || len(tick.Expired) > 0 {
		actor.Stats = actor.Stats.WithDamage(tick.Damage).WithHealing(tick.Healing)
		res.Tick = &tick
	}
	if actor.IsOut() {
		res.Kind = ResultCollapsed
		e.finishTurn(b, &res)
		return res, nil
	}

	if err := e.execute(b, actor, act, &res); err != nil {
		return Result{}, err
	}

	e.finishTurn(b, &res)
	e.logger.Debug("action resolved",
		zap.String("battle", b.ID),
		zap.String("actor", actor.Name),
		zap.String("kind", res.Kind.String()),
		zap.String("state", res.State.String()),
	)
	return res, nil
}

// validate checks an action for expected failures without mutating state.
// Returns an empty string when the action may execute.
func (e *Engine) validate(b *Battle, actor *Combatant, act Action) string {
	switch act.Type {
	case ActionAttack:
		return ""
	case ActionAbility:
		ab, ok := e.abilities.Get(act.AbilityID)
		if !ok {
			return fmt.Sprintf("unknown ability %q", act.AbilityID)
		}
		if !actor.Knows(ab.ID) {
			return fmt.Sprintf("%s does not know %s", actor.Name, ab.Name)
		}
		if actor.Stats.CurrentMP < ab.MPCost {
			return fmt.Sprintf("insufficient MP for %s: need %d, have %d", ab.Name, ab.MPCost, actor.Stats.CurrentMP)
		}
		return ""
	case ActionItem:
		it, ok := e.items.Get(act.ItemID)
		if !ok {
			return fmt.Sprintf("unknown item %q", act.ItemID)
		}
		if it.Kind != item.KindConsumable {
			return fmt.Sprintf("%s cannot be used in battle", it.Name)
		}
		return ""
	case ActionCapture:
		it, ok := e.items.Get(act.ItemID)
		if !ok {
			return fmt.Sprintf("unknown item %q", act.ItemID)
		}
		if it.Kind != item.KindCaptureDevice {
			return fmt.Sprintf("%s is not a capture device", it.Name)
		}
		target, ok := b.Combatant(act.TargetID)
		if !ok || target.IsOut() || target.Side != SideEnemy || !target.Capturable {
			return "invalid capture target"
		}
		if _, ok := e.species.Get(target.SpeciesID); !ok {
			return fmt.Sprintf("unknown species %q", target.SpeciesID)
		}
		return ""
	case ActionFlee:
		if !b.CanFlee {
			return "cannot flee from this battle"
		}
		return ""
	case ActionDefend:
		return ""
	default:
		return "unknown action type"
	}
}

// execute runs a validated action. Go errors here are programmer mistakes
// (unknown combatant IDs); everything expected was filtered by validate.
func (e *Engine) execute(b *Battle, actor *Combatant, act Action, res *Result) error {
	switch act.Type {
	case ActionAttack:
		target, err := e.pickTarget(b, actor, act.TargetID)
		if err != nil {
			return err
		}
		res.Kind = ResultAttack
		res.TargetID = target.ID
		e.applyAbility(actor, target, basicStrike, res)
		return nil

	case ActionAbility:
		ab, _ := e.abilities.Get(act.AbilityID)
		actor.Stats = actor.Stats.WithMPSpent(ab.MPCost)
		target, err := e.resolveAbilityTarget(b, actor, ab, act.TargetID)
		if err != nil {
			return err
		}
		res.Kind = ResultAbility
		res.TargetID = target.ID
		e.applyAbility(actor, target, ab, res)
		return nil

	case ActionItem:
		it, _ := e.items.Get(act.ItemID)
		target := actor
		if act.TargetID != "" {
			t, ok := b.Combatant(act.TargetID)
			if !ok {
				return fmt.Errorf("battle %s: unknown combatant %q", b.ID, act.TargetID)
			}
			target = t
		}
		res.Kind = ResultItem
		res.TargetID = target.ID
		res.ItemUsed = it.ID
		before := target.Stats
		target.Stats = target.Stats.WithHealing(it.RestoreHP).WithMPRestored(it.RestoreMP)
		res.RestoredHP = target.Stats.CurrentHP - before.CurrentHP
		res.RestoredMP = target.Stats.CurrentMP - before.CurrentMP
		for _, sid := range it.CuresStatus {
			if target.Statuses.Has(sid) {
				target.Statuses.Remove(sid)
				res.CuredStatuses = append(res.CuredStatuses, sid)
			}
		}
		return nil

	case ActionCapture:
		it, _ := e.items.Get(act.ItemID)
		target, _ := b.Combatant(act.TargetID)
		sp, _ := e.species.Get(target.SpeciesID)
		capture := resolveCapture(target, sp, it.CaptureRate, act.CaptureModifiers, e.src)
		res.Kind = ResultCapture
		res.TargetID = target.ID
		res.ItemUsed = it.ID
		res.Capture = &capture
		if capture.Success {
			target.Captured = true
			b.captured = capture.Instance
		}
		return nil

	case ActionFlee:
		chance := fleeChance(actor, b.LivingOnSide(opposing(actor.Side)))
		res.Kind = ResultFlee
		res.FleeChance = chance
		if rng.Chance(e.src, chance) {
			res.Fled = true
			b.State = StateFled
		}
		return nil

	case ActionDefend:
		actor.Defending = true
		res.Kind = ResultDefend
		return nil

	default:
		return fmt.Errorf("battle %s: unhandled action type %v", b.ID, act.Type)
	}
}

// applyAbility resolves ab from actor against target and applies the
// reported deltas: damage (halved while the target defends), healing, and
// status attachment.
func (e *Engine) applyAbility(actor, target *Combatant, ab *ability.Ability, res *Result) {
	out := ability.Resolve(actor.Profile(), target.Profile(), ab, e.src)
	res.Outcome = &out
	if out.Missed {
		return
	}

	if out.Damage > 0 {
		dmg := out.Damage
		if target.Defending {
			dmg /= 2
			if dmg < 1 {
				dmg = 1
			}
		}
		target.Stats = target.Stats.WithDamage(dmg)
	}
	if out.Healing > 0 {
		target.Stats = target.Stats.WithHealing(out.Healing)
	}
	if out.StatusToApply != "" {
		// Unknown status IDs in content are tolerated: the hit still
		// lands, the rider is just dropped.
		if def, ok := e.statuses.Get(out.StatusToApply); ok {
			_ = target.Statuses.Apply(def, actor.ID)
			res.StatusApplied = def.ID
		}
	}
}

// pickTarget returns the combatant for id, or the first living combatant on
// the opposing side when id is empty.
func (e *Engine) pickTarget(b *Battle, actor *Combatant, id string) (*Combatant, error) {
	if id != "" {
		t, ok := b.Combatant(id)
		if !ok {
			return nil, fmt.Errorf("battle %s: unknown combatant %q", b.ID, id)
		}
		return t, nil
	}
	living := b.LivingOnSide(opposing(actor.Side))
	if len(living) == 0 {
		return nil, fmt.Errorf("battle %s: no living targets", b.ID)
	}
	return living[0], nil
}

// resolveAbilityTarget applies the ability's target type: self-targeted
// abilities ignore the submitted target ID.
func (e *Engine) resolveAbilityTarget(b *Battle, actor *Combatant, ab *ability.Ability, id string) (*Combatant, error) {
	if ab.Target == ability.TargetSelf {
		return actor, nil
	}
	if ab.Target == ability.TargetAlly && id == "" {
		return actor, nil
	}
	return e.pickTarget(b, actor, id)
}

// fleeChance computes the escape probability from the speed differential
// against the fastest remaining opponent.
//
// Postcondition: returns a value in [fleeMinChance, fleeMaxChance].
func fleeChance(actor *Combatant, opponents []*Combatant) float64 {
	fastest := 0
	for _, o := range opponents {
		if s := o.EffectiveStats().Speed; s > fastest {
			fastest = s
		}
	}
	chance := fleeBaseChance + fleePerSpeed*float64(actor.EffectiveStats().Speed-fastest)
	if chance < fleeMinChance {
		chance = fleeMinChance
	}
	if chance > fleeMaxChance {
		chance = fleeMaxChance
	}
	return chance
}

func opposing(s Side) Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// finishTurn runs terminal checks, settles rewards on victory, and advances
// the turn when the battle continues.
func (e *Engine) finishTurn(b *Battle, res *Result) {
	if b.State == StateActive {
		switch {
		case b.sideDown(SideEnemy):
			b.State = StateVictory
			b.Rewards = e.settleRewards(b)
		case b.sideDown(SidePlayer):
			b.State = StateDefeat
		}
	}
	if b.State == StateActive {
		b.AdvanceTurn()
	}
	res.State = b.State
	res.TurnCount = b.TurnCount
	res.Rewards = b.Rewards
}

// settleRewards sums the reward tables of every defeated (not captured)
// enemy. Experience is summed exactly; gold and drops are rolled. Species
// missing from the registry contribute nothing rather than failing.
func (e *Engine) settleRewards(b *Battle) *Rewards {
	r := &Rewards{Captured: b.captured}
	for _, c := range b.Order {
		if c.Side != SideEnemy || !c.IsDefeated() {
			continue
		}
		sp, ok := e.species.Get(c.SpeciesID)
		if !ok {
			e.logger.Warn("defeated enemy has unknown species",
				zap.String("battle", b.ID),
				zap.String("species", c.SpeciesID),
			)
			continue
		}
		rolled := species.RollRewards(sp.Rewards, e.src)
		r.Experience += rolled.Experience
		r.Gold += rolled.Gold
		r.Items = append(r.Items, rolled.Items...)
	}
	return r
}
