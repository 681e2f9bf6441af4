package rules

import (
	"fmt"
	"math/rand"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Defaults loads the embedded game data and wires every default handler.
// The damage calculator draws from its own source seeded with seed.
func Defaults(seed int64) (combat.Collaborators, error) {
	moves, err := gamedata.LoadMoveRegistry()
	if err != nil {
		return combat.Collaborators{}, fmt.Errorf("load moves: %w", err)
	}
	chart, err := gamedata.LoadTypeChart()
	if err != nil {
		return combat.Collaborators{}, fmt.Errorf("load type chart: %w", err)
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return combat.Collaborators{}, fmt.Errorf("load items: %w", err)
	}
	rulesets, err := gamedata.LoadRulesetRegistry()
	if err != nil {
		return combat.Collaborators{}, fmt.Errorf("load rulesets: %w", err)
	}

	return combat.Collaborators{
		Moves:      moves,
		Chart:      chart,
		Calculator: NewCalculator(chart, items, rand.New(rand.NewSource(seed))),
		Abilities:  NewAbilities(items),
		Items:      NewItems(items),
		Rulesets:   NewRulesets(rulesets),
	}, nil
}
