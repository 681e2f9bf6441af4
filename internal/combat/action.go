package combat

import (
	"fmt"
	"math"
)

// ActionKind tags the Action union.
type ActionKind string

const (
	ActionMove   ActionKind = "move"
	ActionSwitch ActionKind = "switch"
	ActionItem   ActionKind = "item"
	ActionFlee   ActionKind = "flee"
)

// PartyRef names one party member of one battler.
type PartyRef struct {
	BattlerID  int64
	PartyIndex int
}

// Action is one intended action for one active slot.
type Action struct {
	Kind ActionKind
	Slot int // Acting slot

	// Move
	MoveID          string
	TargetPosition  int   // Slot of the target
	TargetBattlerID int64 // Owner of the target; NoBattler means the opposing leader
	Revive          *PartyRef

	// Switch
	SwitchTo int

	// Item
	ItemID     string
	ItemTarget int // Party index of the target
}

// MoveAction builds a move action.
func MoveAction(slot int, moveID string) Action {
	return Action{Kind: ActionMove, Slot: slot, MoveID: moveID}
}

// SwitchAction builds a switch action.
func SwitchAction(slot, partyIndex int) Action {
	return Action{Kind: ActionSwitch, Slot: slot, SwitchTo: partyIndex}
}

// ItemAction builds a bag item action.
func ItemAction(slot int, itemID string, partyIndex int) Action {
	return Action{Kind: ActionItem, Slot: slot, ItemID: itemID, ItemTarget: partyIndex}
}

// FleeAction builds a flee action.
func FleeAction() Action {
	return Action{Kind: ActionFlee}
}

// Target returns a copy of the move action aimed at a specific slot.
func (a Action) Target(battlerID int64, position int) Action {
	a.TargetBattlerID = battlerID
	a.TargetPosition = position
	return a
}

// actionKey is the pending-action key for a battler's slot.
func actionKey(format Format, battlerID int64, slot int) string {
	if format == FormatSingles {
		return fmt.Sprintf("%d", battlerID)
	}
	return fmt.Sprintf("%d_%d", battlerID, slot)
}

// queuedAction is an action plus its derived sort key. The key is never
// stored on the battle.
type queuedAction struct {
	battler  *Battler
	action   Action
	priority int
	speed    float64
	seq      int
}

// Sort brackets for non-move actions.
const (
	switchPriority = 100
	itemPriority   = 90
	fleePriority   = -100
)

func (e *Engine) sortKey(b *Battle, battler *Battler, a Action) (int, float64) {
	switch a.Kind {
	case ActionSwitch:
		return switchPriority, math.Inf(1)
	case ActionItem:
		return itemPriority, math.Inf(1)
	case ActionFlee:
		return fleePriority, math.Inf(-1)
	}

	priority := 0
	if move, ok := e.moves.Move(a.MoveID); ok {
		priority = move.Priority
	}
	c := battler.ActiveCombatant(a.Slot)
	if c == nil {
		return priority, 0
	}
	speed := e.effectiveSpeed(b, c)
	if b.Field.TrickRoom() {
		speed = -speed
	}
	return priority, speed
}

func (e *Engine) effectiveSpeed(b *Battle, c Combatant) float64 {
	return float64(c.GetSpeed()) * e.abilities.SpeedModifier(c, b) * e.items.SpeedMultiplier(c)
}
