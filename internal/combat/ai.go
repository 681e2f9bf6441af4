package combat

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Candidate pool weights.
const (
	weightSuperEffective = 6
	weightOffensive      = 3
	weightSupport        = 1
	weightSetup          = 1

	// Moves that failed this many times are no longer considered.
	failureLimit = 2
	// Support moves are only considered in the opening turns.
	supportTurns = 3
)

// GenerateAIAction picks an action for an AI-controlled slot.
func (e *Engine) GenerateAIAction(battleID string, battlerID int64, slot int) (Action, error) {
	b, err := e.GetBattle(battleID)
	if err != nil {
		return Action{}, err
	}
	battler, ok := b.Battler(battlerID)
	if !ok {
		return Action{}, fmt.Errorf("%w: %d", ErrBattlerNotFound, battlerID)
	}
	if c := battler.ActiveCombatant(slot); c == nil || !c.IsAlive() {
		return Action{}, fmt.Errorf("%w: slot %d cannot act", ErrInvalidAction, slot)
	}
	return e.generateAIAction(b, battler, slot), nil
}

// generateAIAction builds a weighted pool from the usable moves, samples it
// and aims the chosen move.
func (e *Engine) generateAIAction(b *Battle, battler *Battler, slot int) Action {
	user := slotRef{battler: battler, slot: slot}
	c := user.combatant()
	t := user.transient()

	usable := lo.FilterMap(c.GetMoves(), func(m MoveSlot, _ int) (*gamedata.MoveDef, bool) {
		if m.PP <= 0 {
			return nil, false
		}
		return e.moves.Move(m.MoveID)
	})
	if len(usable) == 0 {
		return MoveAction(slot, gamedata.StruggleID)
	}

	own, opposing := b.TeamsOf(battler.ID)
	foes := b.livingRefs(opposing)
	allies := lo.Filter(b.livingRefs(own), func(r slotRef, _ int) bool { return r != user })

	var pool []*gamedata.MoveDef
	add := func(m *gamedata.MoveDef, weight int) {
		for range weight {
			pool = append(pool, m)
		}
	}

	for _, m := range usable {
		if t != nil && (t.Ineffective[m.ID] || t.Failures[m.ID] >= failureLimit) {
			continue
		}
		switch {
		case !m.IsStatus():
			best := e.bestEffectiveness(m, foes)
			switch {
			case best >= 2:
				add(m, weightSuperEffective)
			case best > 0:
				add(m, weightOffensive)
			}
		case m.TargetsOpponents():
			add(m, weightOffensive)
		case m.IsSupport():
			if len(allies) > 0 && b.Turn <= supportTurns {
				add(m, weightSupport)
			}
		case m.IsSetup():
			if b.Turn == 1 {
				add(m, weightSetup)
			}
		}
	}
	if len(pool) == 0 {
		pool = usable
	}

	move := pool[e.rng.Intn(len(pool))]
	return aimMove(MoveAction(slot, move.ID), move, user, allies, foes)
}

// bestEffectiveness is the highest multiplier of a move against any foe.
// With no foe on the field every move counts as neutral.
func (e *Engine) bestEffectiveness(m *gamedata.MoveDef, foes []slotRef) float64 {
	if len(foes) == 0 {
		return 1
	}
	return lo.Max(lo.Map(foes, func(r slotRef, _ int) float64 {
		return e.chart.Effectiveness(m.Type, r.combatant().GetTypes())
	}))
}

func aimMove(a Action, m *gamedata.MoveDef, user slotRef, allies, foes []slotRef) Action {
	switch {
	case m.Target == gamedata.TargetAlly:
		if len(allies) > 0 {
			return a.Target(allies[0].battler.ID, allies[0].slot)
		}
		return a.Target(user.battler.ID, user.slot)
	case m.IsSetup() || m.Target == gamedata.TargetAllAllies:
		return a
	case len(foes) == 0:
		return a
	case m.IsSpread():
		return a.Target(foes[0].battler.ID, foes[0].slot)
	default:
		bulkiest := lo.MaxBy(foes, func(x, y slotRef) bool { return bulk(x.combatant()) > bulk(y.combatant()) })
		return a.Target(bulkiest.battler.ID, bulkiest.slot)
	}
}

func bulk(c Combatant) int {
	return c.GetHP() + c.GetDefense() + c.GetSpDefense()
}
