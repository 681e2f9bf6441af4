package combat

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// ActionGroup is the narration produced by one executed action.
type ActionGroup struct {
	BattlerID int64
	Actor     string
	Kind      ActionKind
	Messages  []string
}

// SwitchEvent records one combatant replacing another.
type SwitchEvent struct {
	BattlerID int64
	Slot      int
	Out       string
	In        string
	Forced    bool
}

// TurnResult is everything a caller needs to present one resolved turn.
type TurnResult struct {
	Turn     int // The turn that was resolved
	Messages []string
	Groups   []ActionGroup
	Switches []SwitchEvent

	Phase         Phase
	WaitingSwitch int64 // Battler that must switch next, 0 when none
	Dazed         bool
	Over          bool
	Winner        string
	Fled          bool
}

// ProcessTurn resolves the current turn: it fills AI slots, orders every
// pending action, executes them, runs end-of-turn effects and reports what
// happened. Every living human slot must have an action first.
func (e *Engine) ProcessTurn(ctx context.Context, battleID string) (*TurnResult, error) {
	b, err := e.GetBattle(battleID)
	if err != nil {
		return nil, err
	}
	if b.Over {
		return nil, ErrBattleOver
	}
	switch b.Phase() {
	case PhaseForcedSwitch, PhaseVoltSwitch:
		return nil, ErrWaitingForSwitch
	}
	if missing := b.waitingFor(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: waiting for %s", ErrNotReady, strings.Join(missing, ", "))
	}

	ctx, span := e.tracer.Start(ctx, "battle.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("battle_id", b.ID),
		attribute.Int("turn", b.Turn),
		attribute.Int("actions", len(b.PendingActions)),
	)

	if err := b.transition(ctx, evResolve); err != nil {
		return nil, err
	}
	b.dazed = false
	b.switches = nil

	e.fillAIActions(b)
	b.TurnLog = nil
	e.resetTurnState(b)

	result := &TurnResult{Turn: b.Turn}
	for _, qa := range e.orderActions(b) {
		if b.Over || b.dazed {
			break
		}
		if !e.canAct(b, qa) {
			continue
		}

		mark := len(b.TurnLog)
		e.executeAction(ctx, b, qa)
		if qa.action.Kind == ActionSwitch {
			continue
		}
		if qa.action.Kind == ActionMove && len(b.TurnLog) == mark {
			b.say(fmt.Sprintf("%s used %s!", qa.battler.ActiveCombatant(qa.action.Slot).GetName(), e.moveName(qa.action.MoveID)))
		}
		result.Groups = append(result.Groups, ActionGroup{
			BattlerID: qa.battler.ID,
			Actor:     e.actorName(qa),
			Kind:      qa.action.Kind,
			Messages:  append([]string(nil), b.TurnLog[mark:]...),
		})
	}

	if !b.dazed && !b.Over {
		if b.hasPendingVolt() {
			// Held until the volt switch is chosen.
			b.deferredEndOfTurn = true
		} else {
			e.endOfTurn(ctx, b)
			e.resolveAISwitches(ctx, b)
		}
	}

	e.checkBattleEnd(b)
	clear(b.PendingActions)
	clear(b.actionSeq)
	b.Turn++

	if err := e.settlePhase(ctx, b); err != nil {
		return nil, err
	}

	result.Messages = append([]string(nil), b.TurnLog...)
	result.Switches = append([]SwitchEvent(nil), b.switches...)
	result.Phase = b.Phase()
	result.Dazed = b.dazed
	result.Over = b.Over
	result.Winner = b.Winner
	result.Fled = b.Fled
	if waiter, _, ok := b.currentSwitchWaiter(); ok {
		result.WaitingSwitch = waiter.ID
	}

	span.SetAttributes(
		attribute.Int("messages", len(result.Messages)),
		attribute.Bool("over", result.Over),
		attribute.String("phase", string(result.Phase)),
	)
	e.log.Debug().
		Str("battle_id", b.ID).
		Int("turn", result.Turn).
		Str("phase", string(result.Phase)).
		Bool("over", result.Over).
		Msg("turn resolved")

	return result, nil
}

// fillAIActions synthesizes actions for AI slots nobody filled.
func (e *Engine) fillAIActions(b *Battle) {
	for _, battler := range b.Battlers() {
		if !battler.IsAI || battler.Eliminated {
			continue
		}
		for slot := range battler.Active {
			c := battler.ActiveCombatant(slot)
			if c == nil || !c.IsAlive() {
				continue
			}
			key := actionKey(b.Format, battler.ID, slot)
			if _, ok := b.PendingActions[key]; ok {
				continue
			}
			b.PendingActions[key] = e.generateAIAction(b, battler, slot)
			b.seq++
			b.actionSeq[key] = b.seq
		}
	}
}

// resetTurnState clears the conditions that only last one turn.
func (e *Engine) resetTurnState(b *Battle) {
	for _, ref := range b.activeRefs(b.Battlers()) {
		c := ref.combatant()
		if c == nil {
			continue
		}
		for _, v := range turnVolatiles {
			c.Status().RemoveVolatile(v)
		}
		if t := ref.transient(); t != nil {
			t.HitsTakenThisTurn = 0
		}
	}
}

// orderActions sorts pending actions by priority then effective speed,
// both descending. Ties go to the earlier battler in join order, then the
// lower slot, then the earlier registration.
func (e *Engine) orderActions(b *Battle) []queuedAction {
	queue := make([]queuedAction, 0, len(b.PendingActions))
	for key, a := range b.PendingActions {
		battler := e.ownerOfKey(b, key)
		if battler == nil {
			continue
		}
		priority, speed := e.sortKey(b, battler, a)
		queue = append(queue, queuedAction{
			battler:  battler,
			action:   a,
			priority: priority,
			speed:    speed,
			seq:      b.actionSeq[key],
		})
	}

	slices.SortStableFunc(queue, func(x, y queuedAction) int {
		if c := cmp.Compare(y.priority, x.priority); c != 0 {
			return c
		}
		if c := cmp.Compare(y.speed, x.speed); c != 0 {
			return c
		}
		if c := cmp.Compare(x.battler.order, y.battler.order); c != 0 {
			return c
		}
		if c := cmp.Compare(x.action.Slot, y.action.Slot); c != 0 {
			return c
		}
		return cmp.Compare(x.seq, y.seq)
	})
	return queue
}

func (e *Engine) ownerOfKey(b *Battle, key string) *Battler {
	for _, battler := range b.Battlers() {
		for slot := range battler.Active {
			if actionKey(b.Format, battler.ID, slot) == key {
				return battler
			}
		}
	}
	return nil
}

// canAct applies the skip rules for one queued action.
func (e *Engine) canAct(b *Battle, qa queuedAction) bool {
	if qa.battler.Eliminated {
		return false
	}
	if qa.action.Kind == ActionFlee {
		return true
	}
	c := qa.battler.ActiveCombatant(qa.action.Slot)
	if c == nil || !c.IsAlive() {
		return false
	}
	if ps, ok := b.PendingSwitches[qa.battler.ID]; ok && ps.Kind != SwitchAI && ps.Slot == qa.action.Slot {
		return false
	}
	return true
}

func (e *Engine) executeAction(ctx context.Context, b *Battle, qa queuedAction) {
	switch qa.action.Kind {
	case ActionSwitch:
		if _, err := e.switchIn(ctx, b, qa.battler, qa.action.Slot, qa.action.SwitchTo, false); err != nil {
			b.say(fmt.Sprintf("%s couldn't switch!", qa.battler.Name))
		}
	case ActionItem:
		e.useItem(b, qa.battler, qa.action)
	case ActionFlee:
		e.flee(b, qa.battler)
	case ActionMove:
		e.executeMove(ctx, b, slotRef{battler: qa.battler, slot: qa.action.Slot}, qa.action)
	}
}

func (e *Engine) useItem(b *Battle, battler *Battler, a Action) {
	target := battler.Party[a.ItemTarget]
	msgs, err := e.items.UseBagItem(a.ItemID, target)
	if err != nil {
		b.say(fmt.Sprintf("%s couldn't use %s!", battler.Name, gamedata.DisplayName(a.ItemID)))
		return
	}
	b.say(fmt.Sprintf("%s used %s!", battler.Name, gamedata.DisplayName(a.ItemID)))
	b.say(msgs...)
}

func (e *Engine) flee(b *Battle, battler *Battler) {
	if b.Type != TypeWild || !battler.CanFlee {
		b.say("Can't escape!")
		return
	}
	b.Over = true
	b.Fled = true
	b.Winner = ""
	b.say("Got away safely!")
}

// checkBattleEnd decides the winner once a whole team has no usable
// combatant. It runs after every faint.
func (e *Engine) checkBattleEnd(b *Battle) bool {
	if b.Over {
		return true
	}
	defeated := [2]bool{true, true}
	for _, battler := range b.Battlers() {
		if !battler.RecomputeEliminated() {
			defeated[battler.Side] = false
		}
	}

	switch {
	case defeated[SideTrainer] && defeated[SideOpponent]:
		b.Winner = WinnerDraw
	case defeated[SideTrainer]:
		b.Winner = WinnerOpponent
	case defeated[SideOpponent]:
		b.Winner = WinnerTrainer
	default:
		return false
	}
	b.Over = true
	clear(b.PendingSwitches)
	b.deferredEndOfTurn = false
	return true
}

// settlePhase moves the phase machine to wherever the battle now stands.
func (e *Engine) settlePhase(ctx context.Context, b *Battle) error {
	switch {
	case b.Over:
		return b.transition(ctx, evEnd)
	case b.dazed:
		return b.transition(ctx, evDaze)
	}
	if _, ps, ok := b.currentSwitchWaiter(); ok {
		if ps.Kind == SwitchVolt {
			return b.transition(ctx, evVoltSwitch)
		}
		return b.transition(ctx, evForceSwitch)
	}
	return b.transition(ctx, evAwait)
}

func (e *Engine) moveName(moveID string) string {
	if move, ok := e.moves.Move(moveID); ok {
		return move.DisplayName()
	}
	return gamedata.DisplayName(moveID)
}

func (e *Engine) actorName(qa queuedAction) string {
	if c := qa.battler.ActiveCombatant(qa.action.Slot); c != nil && qa.action.Kind == ActionMove {
		return c.GetName()
	}
	return qa.battler.Name
}
