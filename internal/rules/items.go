package rules

import (
	"errors"
	"fmt"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Bag item errors.
var (
	ErrNotBagItem = errors.New("not a bag item")
	ErrNoEffect   = errors.New("it won't have any effect")
)

// Items applies held and bag item effects from the item data.
type Items struct {
	registry *gamedata.ItemRegistry
}

// NewItems creates an item manager.
func NewItems(registry *gamedata.ItemRegistry) *Items {
	return &Items{registry: registry}
}

func (m *Items) held(c combat.Combatant) *gamedata.ItemDef {
	id := c.GetHeldItem()
	if id == "" {
		return nil
	}
	return m.registry.GetByID(id)
}

// CheckMove keeps a choice item holder on the move it is locked into.
func (m *Items) CheckMove(holder combat.Combatant, locked, moveID string) (bool, string) {
	item := m.held(holder)
	if item == nil || !item.ChoiceLock || locked == "" || locked == moveID {
		return true, ""
	}
	return false, fmt.Sprintf("%s can only use %s because of its %s!",
		holder.GetName(), gamedata.DisplayName(locked), item.DisplayName())
}

// LocksChoice reports whether the holder's item locks it into one move.
func (m *Items) LocksChoice(holder combat.Combatant) bool {
	item := m.held(holder)
	return item != nil && item.ChoiceLock
}

// ModifyIncomingDamage lets a Focus Sash style item keep a full-health
// holder at 1 HP.
func (m *Items) ModifyIncomingDamage(holder combat.Combatant, damage int) (int, []string) {
	item := m.held(holder)
	if item == nil || !item.SurviveAtFullHP {
		return damage, nil
	}
	if holder.GetHP() < holder.GetMaxHP() || damage < holder.GetHP() {
		return damage, nil
	}
	if item.ConsumedOnEffect {
		holder.SetHeldItem("")
	}
	return holder.GetHP() - 1, []string{fmt.Sprintf("%s hung on using its %s!", holder.GetName(), item.DisplayName())}
}

// AfterDamage applies recoil items once the holder has dealt damage.
func (m *Items) AfterDamage(holder combat.Combatant, dealt int) []string {
	item := m.held(holder)
	if item == nil || item.RecoilFraction <= 0 || dealt <= 0 || !holder.IsAlive() {
		return nil
	}
	holder.TakeDamage(max(int(float64(holder.GetMaxHP())*item.RecoilFraction), 1))
	return []string{fmt.Sprintf("%s lost some of its HP!", holder.GetName())}
}

// EndOfTurn applies healing items.
func (m *Items) EndOfTurn(holder combat.Combatant) []string {
	item := m.held(holder)
	if item == nil || item.EndOfTurnHeal <= 0 || !holder.IsAlive() || holder.GetHP() >= holder.GetMaxHP() {
		return nil
	}
	holder.Heal(max(int(float64(holder.GetMaxHP())*item.EndOfTurnHeal), 1))
	return []string{fmt.Sprintf("%s restored a little HP using its %s!", holder.GetName(), item.DisplayName())}
}

// SpeedMultiplier returns the held item speed factor.
func (m *Items) SpeedMultiplier(holder combat.Combatant) float64 {
	if item := m.held(holder); item != nil && item.SpeedMultiplier > 0 {
		return item.SpeedMultiplier
	}
	return 1
}

// UseBagItem uses a bag item on a party member. An item that would do
// nothing is refused.
func (m *Items) UseBagItem(itemID string, target combat.Combatant) ([]string, error) {
	item := m.registry.GetByID(itemID)
	if item == nil || !item.Bag {
		return nil, fmt.Errorf("%w: %s", ErrNotBagItem, itemID)
	}
	if !target.IsAlive() {
		return nil, fmt.Errorf("%w: %s has fainted", ErrNoEffect, target.GetName())
	}

	var msgs []string
	if item.HealAmount > 0 {
		if healed := target.Heal(item.HealAmount); healed > 0 {
			msgs = append(msgs, fmt.Sprintf("%s regained %d HP!", target.GetName(), healed))
		}
	}
	if item.CuresStatus && target.Status().Major() != "" {
		target.Status().ClearStatus()
		msgs = append(msgs, fmt.Sprintf("%s was cured of its status condition!", target.GetName()))
	}
	if len(msgs) == 0 {
		return nil, ErrNoEffect
	}
	return msgs, nil
}

var _ combat.ItemManager = (*Items)(nil)
