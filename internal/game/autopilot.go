package game

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/telemetry"
)

// DefaultTurnLimit bounds simulated battles.
const DefaultTurnLimit = 200

// ErrTurnLimit is returned when a simulated battle is still running after
// the turn limit. The battle is ended without a winner.
var ErrTurnLimit = errors.New("turn limit reached")

// Simulate plays a battle to the end, letting the AI choose for every
// human battler too, and ends it. A wild battle ends without a winner once
// the wild combatant is dazed. maxTurns <= 0 means DefaultTurnLimit.
func Simulate(ctx context.Context, e *combat.Engine, battleID string, maxTurns int) (*combat.Summary, error) {
	if maxTurns <= 0 {
		maxTurns = DefaultTurnLimit
	}
	b, err := e.GetBattle(battleID)
	if err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.simulate")
	defer span.End()
	span.SetAttributes(telemetry.BattleAttributes(battleID, string(b.Type), string(b.Format))...)

	for !b.Over {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b.Turn > maxTurns {
			summary, err := e.EndBattle(ctx, battleID)
			if err != nil {
				return nil, err
			}
			return summary, ErrTurnLimit
		}
		if b.Phase() == combat.PhaseDazed {
			// Nothing else can happen to a dazed wild combatant; the
			// encounter ends as a capture.
			span.SetAttributes(attribute.Bool("captured", true))
			return e.EndBattle(ctx, battleID)
		}
		if err := autoSwitch(ctx, e, b, 0); err != nil {
			return nil, err
		}
		if b.Over {
			break
		}
		if err := autoRegister(ctx, e, b, 0); err != nil {
			return nil, err
		}
		if _, err := e.ProcessTurn(ctx, battleID); err != nil {
			return nil, fmt.Errorf("turn %d: %w", b.Turn, err)
		}
	}

	span.SetAttributes(attribute.String("winner", b.Winner))
	return e.EndBattle(ctx, battleID)
}

// autoRegister registers an AI-chosen action for every living slot of the
// human battlers other than except that has none yet.
func autoRegister(ctx context.Context, e *combat.Engine, b *combat.Battle, except int64) error {
	for _, battler := range b.Battlers() {
		if battler.IsAI || battler.ID == except || battler.Eliminated {
			continue
		}
		for slot := range battler.Active {
			c := battler.ActiveCombatant(slot)
			if c == nil || !c.IsAlive() {
				continue
			}
			a, err := e.GenerateAIAction(b.ID, battler.ID, slot)
			if err != nil {
				return err
			}
			if _, err := e.RegisterAction(ctx, b.ID, battler.ID, a); err != nil {
				return fmt.Errorf("register for %s: %w", battler.Name, err)
			}
		}
	}
	return nil
}

// autoSwitch completes pending replacements of the human battlers other
// than except, sending in the first bench member. It stops when except is
// the one waiting.
func autoSwitch(ctx context.Context, e *combat.Engine, b *combat.Battle, except int64) error {
	for !b.Over {
		waiter := switchWaiter(b)
		if waiter == nil || waiter.ID == except {
			return nil
		}
		bench := waiter.Bench()
		if len(bench) == 0 {
			return fmt.Errorf("%s must switch with an empty bench", waiter.Name)
		}
		if _, err := e.ForceSwitch(ctx, b.ID, waiter.ID, bench[0]); err != nil {
			return fmt.Errorf("switch for %s: %w", waiter.Name, err)
		}
	}
	return nil
}

// switchWaiter is the battler the battle waits on for a replacement, or
// nil.
func switchWaiter(b *combat.Battle) *combat.Battler {
	switch b.Phase() {
	case combat.PhaseForcedSwitch, combat.PhaseVoltSwitch:
	default:
		return nil
	}
	for _, x := range b.Battlers() {
		if ps, ok := b.PendingSwitches[x.ID]; ok && ps.Kind != combat.SwitchAI {
			return x
		}
	}
	return nil
}
