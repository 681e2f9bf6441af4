package combat

import (
	"github.com/samber/lo"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// resolveTargets turns a move's target shape into concrete slots. Self and
// field moves resolve to the user or to nothing.
func (e *Engine) resolveTargets(b *Battle, user slotRef, move *gamedata.MoveDef, a Action) []slotRef {
	own, opposing := b.TeamsOf(user.battler.ID)
	foes := b.livingRefs(opposing)
	allies := lo.Filter(b.livingRefs(own), func(r slotRef, _ int) bool { return r != user })

	switch move.Target {
	case gamedata.TargetSingle:
		if len(foes) == 0 {
			return nil
		}
		return []slotRef{pickFoe(foes, opposing, a)}
	case gamedata.TargetAllOpponents:
		return foes
	case gamedata.TargetAllAdjacent, gamedata.TargetAll:
		return append(foes, allies...)
	case gamedata.TargetAllAllies:
		return append([]slotRef{user}, allies...)
	case gamedata.TargetAlly:
		if len(allies) == 0 {
			return []slotRef{user}
		}
		for _, r := range allies {
			if r.battler.ID == a.TargetBattlerID && r.slot == a.TargetPosition {
				return []slotRef{r}
			}
		}
		return allies[:1]
	case gamedata.TargetSelf:
		return []slotRef{user}
	default:
		return nil
	}
}

// pickFoe chooses the target of a single-target move. A combatant that drew
// attention with follow-me wins over the requested position; a requested
// position that is gone falls back to the first living foe.
func pickFoe(foes []slotRef, opposing []*Battler, a Action) slotRef {
	for _, r := range foes {
		if r.combatant().Status().HasVolatile(VolatileFollowMe) {
			return r
		}
	}

	wanted := a.TargetBattlerID
	if wanted == NoBattler && len(opposing) > 0 {
		wanted = opposing[0].ID
	}
	for _, r := range foes {
		if r.battler.ID == wanted && r.slot == a.TargetPosition {
			return r
		}
	}
	return foes[0]
}
