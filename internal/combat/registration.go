package combat

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// RegisterResult reports the effect of one registration.
type RegisterResult struct {
	Accepted       bool
	ReadyToResolve bool
	WaitingFor     []string // Pending-action keys still missing, in join order

	// Set when the registration completed a pending switch.
	Switch       *SwitchResult
	TurnResolved bool
}

// RegisterAction validates and stores an action for one of a battler's
// slots. While a switch is pending, only the waiting battler may act and
// only with a switch, which is executed immediately.
func (e *Engine) RegisterAction(ctx context.Context, battleID string, battlerID int64, action Action) (*RegisterResult, error) {
	b, err := e.GetBattle(battleID)
	if err != nil {
		return nil, err
	}
	if b.Over {
		return nil, ErrBattleOver
	}
	battler, ok := b.Battler(battlerID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrBattlerNotFound, battlerID)
	}

	switch b.Phase() {
	case PhaseDazed:
		b.dazed = false
		if err := b.transition(ctx, evAwait); err != nil {
			return nil, err
		}
	case PhaseForcedSwitch, PhaseVoltSwitch:
		waiter, _, _ := b.currentSwitchWaiter()
		if waiter == nil || waiter.ID != battlerID {
			return nil, ErrWaitingForSwitch
		}
		if action.Kind != ActionSwitch {
			return nil, ErrSwitchRequired
		}
		sw, err := e.completePendingSwitch(ctx, b, battler, action.SwitchTo)
		if err != nil {
			return nil, err
		}
		result := &RegisterResult{Accepted: true, Switch: sw, TurnResolved: sw.TurnResolved}
		result.WaitingFor = b.waitingFor()
		result.ReadyToResolve = len(result.WaitingFor) == 0 && b.Phase() == PhaseWaitingActions
		return result, nil
	}

	if err := e.validateAction(b, battler, action); err != nil {
		return nil, err
	}

	key := actionKey(b.Format, battler.ID, action.Slot)
	b.PendingActions[key] = action
	b.seq++
	b.actionSeq[key] = b.seq

	e.log.Debug().
		Str("battle_id", b.ID).
		Int64("battler_id", battler.ID).
		Str("key", key).
		Str("kind", string(action.Kind)).
		Msg("action registered")

	result := &RegisterResult{Accepted: true}
	result.WaitingFor = b.waitingFor()
	result.ReadyToResolve = len(result.WaitingFor) == 0
	return result, nil
}

func (e *Engine) validateAction(b *Battle, battler *Battler, a Action) error {
	c := battler.ActiveCombatant(a.Slot)
	if a.Kind != ActionFlee && (c == nil || !c.IsAlive()) {
		return fmt.Errorf("%w: slot %d cannot act", ErrInvalidAction, a.Slot)
	}

	switch a.Kind {
	case ActionMove:
		if a.MoveID == "" {
			return fmt.Errorf("%w: no move given", ErrInvalidAction)
		}
		if a.MoveID == gamedata.StruggleID {
			if hasPP(c) {
				return fmt.Errorf("%w: %s still has moves with PP", ErrInvalidAction, c.GetName())
			}
			break
		}
		known, ok := lo.Find(c.GetMoves(), func(m MoveSlot) bool { return m.MoveID == a.MoveID })
		if !ok {
			return fmt.Errorf("%w: %s does not know %s", ErrInvalidAction, c.GetName(), a.MoveID)
		}
		if known.PP <= 0 {
			return fmt.Errorf("%w: %s has no PP left", ErrInvalidAction, a.MoveID)
		}
	case ActionSwitch:
		if !battler.CanSwitch {
			return fmt.Errorf("%w: %s cannot switch", ErrInvalidAction, battler.Name)
		}
		if !battler.CanSwitchTo(a.SwitchTo) {
			return fmt.Errorf("%w: party index %d", ErrInvalidSwitch, a.SwitchTo)
		}
	case ActionItem:
		if !battler.CanUseItems || a.ItemID == "" {
			return fmt.Errorf("%w: %s cannot use items", ErrInvalidAction, battler.Name)
		}
		if a.ItemTarget < 0 || a.ItemTarget >= len(battler.Party) {
			return fmt.Errorf("%w: item target %d", ErrInvalidAction, a.ItemTarget)
		}
	case ActionFlee:
		if !battler.CanFlee {
			return fmt.Errorf("%w: %s cannot flee", ErrInvalidAction, battler.Name)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
	}
	return nil
}

// hasPP is true while any move has PP left. Struggle is only legal once it
// is false.
func hasPP(c Combatant) bool {
	return lo.SomeBy(c.GetMoves(), func(m MoveSlot) bool { return m.PP > 0 })
}

// waitingFor lists the pending-action keys still required before the turn
// can resolve. AI battlers never block.
func (b *Battle) waitingFor() []string {
	var missing []string
	for _, battler := range b.Battlers() {
		if battler.IsAI || battler.Eliminated || !battler.HasUsable() {
			continue
		}
		for slot := range battler.Active {
			c := battler.ActiveCombatant(slot)
			if c == nil || !c.IsAlive() {
				continue
			}
			key := actionKey(b.Format, battler.ID, slot)
			if _, ok := b.PendingActions[key]; !ok {
				missing = append(missing, key)
			}
		}
	}
	return missing
}

// ReadyToResolve reports whether every required action is present.
func (b *Battle) ReadyToResolve() bool {
	return !b.Over && b.Phase() == PhaseWaitingActions && len(b.waitingFor()) == 0
}

// WaitingFor returns the pending-action keys still missing.
func (b *Battle) WaitingFor() []string {
	return b.waitingFor()
}
