package rules

import (
	"fmt"
	"slices"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Rulesets answers format legality from the ruleset data. Unknown rulesets
// allow everything.
type Rulesets struct {
	registry *gamedata.RulesetRegistry
}

// NewRulesets creates a ruleset handler.
func NewRulesets(registry *gamedata.RulesetRegistry) *Rulesets {
	return &Rulesets{registry: registry}
}

// IsMoveAllowed reports whether moveID may be used under ruleset.
func (r *Rulesets) IsMoveAllowed(moveID, ruleset string) (bool, string) {
	def := r.registry.GetByID(ruleset)
	if def == nil || !slices.Contains(def.BannedMoves, moveID) {
		return true, ""
	}
	return false, fmt.Sprintf("%s is banned under %s rules!", gamedata.DisplayName(moveID), def.Name)
}

// IsItemAllowed reports whether itemID may be held under ruleset.
func (r *Rulesets) IsItemAllowed(itemID, ruleset string) (bool, string) {
	def := r.registry.GetByID(ruleset)
	if def == nil || !slices.Contains(def.BannedItems, itemID) {
		return true, ""
	}
	return false, fmt.Sprintf("%s is banned under %s rules!", gamedata.DisplayName(itemID), def.Name)
}

var _ combat.RulesetHandler = (*Rulesets)(nil)
