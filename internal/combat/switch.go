package combat

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
)

// SwitchResult reports a completed pending switch.
type SwitchResult struct {
	Event    SwitchEvent
	Messages []string

	// TurnResolved is set when the switch released end-of-turn processing
	// that a volt switch had been holding back.
	TurnResolved bool

	Phase         Phase
	WaitingSwitch int64 // Next battler that must switch, 0 when none
	Over          bool
	Winner        string
}

// ForceSwitch resolves a pending forced or volt switch outside of normal
// registration.
func (e *Engine) ForceSwitch(ctx context.Context, battleID string, battlerID int64, partyIndex int) (*SwitchResult, error) {
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
	ps, ok := b.PendingSwitches[battlerID]
	if !ok || ps.Kind == SwitchAI {
		return nil, ErrNoPendingSwitch
	}
	if waiter, _, _ := b.currentSwitchWaiter(); waiter != battler {
		return nil, ErrWaitingForSwitch
	}
	return e.completePendingSwitch(ctx, b, battler, partyIndex)
}

// completePendingSwitch performs the waiting battler's replacement. The
// battle is left untouched when the choice is invalid.
func (e *Engine) completePendingSwitch(ctx context.Context, b *Battle, battler *Battler, partyIndex int) (*SwitchResult, error) {
	ps, ok := b.PendingSwitches[battler.ID]
	if !ok {
		return nil, ErrNoPendingSwitch
	}
	if !battler.CanSwitchTo(partyIndex) {
		return nil, fmt.Errorf("%w: party index %d", ErrInvalidSwitch, partyIndex)
	}

	b.TurnLog = nil
	delete(b.PendingSwitches, battler.ID)
	if t := battler.Transient(battler.Active[ps.Slot]); t != nil {
		t.ShouldSelfSwitch = false
	}

	ev, err := e.switchIn(ctx, b, battler, ps.Slot, partyIndex, ps.Kind == SwitchForced)
	if err != nil {
		b.PendingSwitches[battler.ID] = ps
		return nil, err
	}

	result := &SwitchResult{Event: ev}
	if ps.Kind == SwitchVolt && b.deferredEndOfTurn && !b.hasPendingVolt() && !b.Over {
		b.deferredEndOfTurn = false
		e.endOfTurn(ctx, b)
		e.resolveAISwitches(ctx, b)
		result.TurnResolved = true
	}

	e.checkBattleEnd(b)
	e.rescanPendingSwitches(b)
	if err := e.settlePhase(ctx, b); err != nil {
		return nil, err
	}

	result.Messages = append([]string(nil), b.TurnLog...)
	result.Phase = b.Phase()
	result.Over = b.Over
	result.Winner = b.Winner
	if waiter, _, ok := b.currentSwitchWaiter(); ok {
		result.WaitingSwitch = waiter.ID
	}
	return result, nil
}

// rescanPendingSwitches queues forced switches for human slots that
// fainted while another switch was pending.
func (e *Engine) rescanPendingSwitches(b *Battle) {
	if b.Over {
		return
	}
	for _, battler := range b.Battlers() {
		if battler.IsAI {
			continue
		}
		if _, pending := b.PendingSwitches[battler.ID]; pending {
			continue
		}
		if len(battler.Bench()) == 0 {
			continue
		}
		for slot := range battler.Active {
			if c := battler.ActiveCombatant(slot); c != nil && !c.IsAlive() {
				b.PendingSwitches[battler.ID] = PendingSwitch{Slot: slot, Kind: SwitchForced}
				break
			}
		}
	}
}

// resolveAISwitches performs the AI replacements queued by faints this
// turn, then fills any other fainted AI slot that has a bench. A
// replacement knocked out by entry hazards is replaced in turn. No AI
// entry survives for a slot that holds a living combatant.
func (e *Engine) resolveAISwitches(ctx context.Context, b *Battle) {
	if b.Over {
		return
	}
	for _, battler := range b.Battlers() {
		if !battler.IsAI {
			continue
		}
		if ps, ok := b.PendingSwitches[battler.ID]; ok && ps.Kind == SwitchAI {
			delete(b.PendingSwitches, battler.ID)
			if c := battler.ActiveCombatant(ps.Slot); c != nil && !c.IsAlive() {
				to := ps.PartyIndex
				if !battler.CanSwitchTo(to) {
					to = lo.FirstOr(battler.Bench(), -1)
				}
				if to >= 0 {
					e.aiSwitch(ctx, b, battler, ps.Slot, to)
				}
			}
		}
		if b.Type != TypeWild {
			for slot := range battler.Active {
				e.refill(ctx, b, battler, slot)
			}
		}
		if ps, ok := b.PendingSwitches[battler.ID]; ok && ps.Kind == SwitchAI {
			if c := battler.ActiveCombatant(ps.Slot); c != nil && c.IsAlive() {
				delete(b.PendingSwitches, battler.ID)
			}
		}
	}
}

// refill sends in bench members until the slot holds a living combatant
// or the bench is empty.
func (e *Engine) refill(ctx context.Context, b *Battle, battler *Battler, slot int) {
	for !b.Over {
		c := battler.ActiveCombatant(slot)
		bench := battler.Bench()
		if c == nil || c.IsAlive() || len(bench) == 0 {
			return
		}
		if !e.aiSwitch(ctx, b, battler, slot, bench[0]) {
			return
		}
	}
}

func (e *Engine) aiSwitch(ctx context.Context, b *Battle, battler *Battler, slot, partyIndex int) bool {
	if _, err := e.switchIn(ctx, b, battler, slot, partyIndex, true); err != nil {
		e.log.Warn().Err(err).Str("battle_id", b.ID).Msg("ai switch failed")
		return false
	}
	return true
}

// switchIn is the one executor for every switch. Forced switches send a
// replacement in for a fainted combatant; voluntary ones withdraw first.
func (e *Engine) switchIn(ctx context.Context, b *Battle, battler *Battler, slot, partyIndex int, forced bool) (SwitchEvent, error) {
	if slot < 0 || slot >= len(battler.Active) {
		return SwitchEvent{}, fmt.Errorf("%w: slot %d", ErrInvalidSwitch, slot)
	}
	if !battler.CanSwitchTo(partyIndex) {
		return SwitchEvent{}, fmt.Errorf("%w: party index %d", ErrInvalidSwitch, partyIndex)
	}

	_, span := e.tracer.Start(ctx, "battle.switch")
	defer span.End()

	outIdx := battler.Active[slot]
	out := battler.Party[outIdx]
	in := battler.Party[partyIndex]

	if forced {
		b.say(fmt.Sprintf("%s sent out %s!", battler.Name, in.GetName()))
	} else {
		b.say(fmt.Sprintf("%s, come back!", out.GetName()))
		b.say(fmt.Sprintf("%s sent out %s!", battler.Name, in.GetName()))
	}

	battler.Active[slot] = partyIndex

	if t := battler.Transient(outIdx); t != nil {
		t.ChoiceLock = ""
		t.ProtectStreak = 0
		t.ShouldSelfSwitch = false
	}
	out.Status().ClearVolatiles()
	out.ResetStages()

	if t := battler.Transient(partyIndex); t != nil {
		t.ProtectStreak = 0
		t.HitsTakenThisTurn = 0
	}

	ev := SwitchEvent{
		BattlerID: battler.ID,
		Slot:      slot,
		Out:       out.GetName(),
		In:        in.GetName(),
		Forced:    forced,
	}
	b.switches = append(b.switches, ev)

	span.SetAttributes(
		attribute.String("battle_id", b.ID),
		attribute.Int64("battler_id", battler.ID),
		attribute.String("out", ev.Out),
		attribute.String("in", ev.In),
		attribute.Bool("forced", forced),
	)

	b.say(e.entryMessages(ctx, b, in)...)
	ref := slotRef{battler: battler, slot: slot}
	e.applyHazards(b, ref)
	if !in.IsAlive() {
		e.handleFaint(b, ref)
	}
	return ev, nil
}

// entryMessages runs the on-entry ability hook. A failing hook yields no
// messages.
func (e *Engine) entryMessages(ctx context.Context, b *Battle, c Combatant) (msgs []string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Interface("panic", r).Str("combatant", c.GetName()).Msg("entry ability failed")
			msgs = nil
		}
	}()
	return e.abilities.OnEntry(ctx, c, b)
}

// applyHazards applies the entry hazards of the combatant's side.
func (e *Engine) applyHazards(b *Battle, ref slotRef) {
	c := ref.combatant()
	hazards := b.Field.Hazards[ref.battler.Side]
	if len(hazards) == 0 {
		return
	}

	if hazards[HazardStealthRock] > 0 {
		mult := e.chart.Effectiveness("rock", c.GetTypes())
		damage := max(int(float64(c.GetMaxHP())*mult/8), 1)
		c.TakeDamage(damage)
		b.say(fmt.Sprintf("Pointed stones dug into %s!", c.GetName()))
	}

	if !e.abilities.Grounded(c) || !c.IsAlive() {
		return
	}

	if layers := hazards[HazardSpikes]; layers > 0 {
		divisor := map[int]int{1: 8, 2: 6}[layers]
		if divisor == 0 {
			divisor = 4
		}
		c.TakeDamage(max(c.GetMaxHP()/divisor, 1))
		b.say(fmt.Sprintf("%s was hurt by the spikes!", c.GetName()))
	}

	if layers := hazards[HazardToxicSpikes]; layers > 0 && c.IsAlive() {
		switch {
		case hasType(c, "poison"):
			delete(hazards, HazardToxicSpikes)
			b.say(fmt.Sprintf("%s absorbed the poison spikes!", c.GetName()))
		case hasType(c, "steel"):
		default:
			status := StatusPoison
			if layers >= 2 {
				status = StatusToxic
			}
			if ok, msg := c.Status().ApplyStatus(status); ok {
				b.say(msg)
			}
		}
	}

	if hazards[HazardStickyWeb] > 0 && c.IsAlive() {
		b.say(fmt.Sprintf("%s was caught in a sticky web!", c.GetName()))
		if changed := c.ModifyStage(StatSpeed, -1); changed != 0 {
			b.say(stageMessage(c.GetName(), StatSpeed, changed))
		}
	}
}

func hasType(c Combatant, typ string) bool {
	for _, t := range c.GetTypes() {
		if t == typ {
			return true
		}
	}
	return false
}
