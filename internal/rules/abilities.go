package rules

import (
	"context"
	"fmt"
	"slices"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Abilities that set the field when their holder enters.
var (
	weatherSetters = map[string]string{
		"drizzle":      combat.WeatherRain,
		"drought":      combat.WeatherSun,
		"sand-stream":  combat.WeatherSandstorm,
		"snow-warning": combat.WeatherHail,
	}
	terrainSetters = map[string]string{
		"electric-surge": combat.TerrainElectric,
		"grassy-surge":   combat.TerrainGrassy,
		"psychic-surge":  combat.TerrainPsychic,
		"misty-surge":    combat.TerrainMisty,
	}
)

// Weather immunities.
var (
	sandImmuneTypes     = []string{"rock", "ground", "steel"}
	sandImmuneAbilities = []string{"sand-force", "sand-rush", "sand-veil", "magic-guard", "overcoat"}
	hailImmuneAbilities = []string{"ice-body", "snow-cloak", "magic-guard", "overcoat"}
)

// speedDoublers double speed under the given weather or terrain.
var speedDoublers = map[string]string{
	"swift-swim":   combat.WeatherRain,
	"chlorophyll":  combat.WeatherSun,
	"sand-rush":    combat.WeatherSandstorm,
	"slush-rush":   combat.WeatherHail,
	"surge-surfer": combat.TerrainElectric,
}

// Abilities is the default ability handler. Abilities it does not know
// have no effect.
type Abilities struct {
	items *gamedata.ItemRegistry
}

// NewAbilities creates the handler. items is consulted for held items that
// lift their holder off the ground; it may be nil.
func NewAbilities(items *gamedata.ItemRegistry) *Abilities {
	return &Abilities{items: items}
}

// OnEntry runs entry abilities: weather and terrain setters, Intimidate
// and Pressure.
func (a *Abilities) OnEntry(_ context.Context, c combat.Combatant, b *combat.Battle) []string {
	ability := c.GetAbility()
	announce := fmt.Sprintf("[%s's %s]", c.GetName(), gamedata.DisplayName(ability))

	if w, ok := weatherSetters[ability]; ok {
		if !b.StartWeather(w) {
			return nil
		}
		return []string{announce, combat.WeatherStartMessage(w)}
	}
	if t, ok := terrainSetters[ability]; ok {
		if !b.StartTerrain(t) {
			return nil
		}
		return []string{announce, combat.TerrainStartMessage(t)}
	}

	switch ability {
	case "intimidate":
		owner, _, ok := b.Locate(c)
		if !ok {
			return nil
		}
		msgs := []string{announce}
		for _, foe := range b.ActiveOn(owner.Side.Other()) {
			if foe.ModifyStage(combat.StatAttack, -1) == 0 {
				msgs = append(msgs, fmt.Sprintf("%s's Attack won't go any lower!", foe.GetName()))
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s's Attack fell!", foe.GetName()))
		}
		return msgs
	case "pressure":
		return []string{fmt.Sprintf("%s is exerting its pressure!", c.GetName())}
	}
	return nil
}

// WeatherTick returns the HP change weather causes this turn.
func (a *Abilities) WeatherTick(c combat.Combatant, weather string) (int, string) {
	ability := c.GetAbility()
	name := c.GetName()
	sixteenth := max(c.GetMaxHP()/16, 1)
	eighth := max(c.GetMaxHP()/8, 1)
	full := c.GetHP() >= c.GetMaxHP()

	switch weather {
	case combat.WeatherSandstorm:
		if slices.ContainsFunc(sandImmuneTypes, func(t string) bool { return hasType(c, t) }) ||
			slices.Contains(sandImmuneAbilities, ability) {
			return 0, ""
		}
		return -sixteenth, fmt.Sprintf("%s is buffeted by the sandstorm!", name)
	case combat.WeatherHail:
		if ability == "ice-body" && !full {
			return sixteenth, fmt.Sprintf("%s's Ice Body restored its HP!", name)
		}
		if hasType(c, "ice") || slices.Contains(hailImmuneAbilities, ability) {
			return 0, ""
		}
		return -sixteenth, fmt.Sprintf("%s is pelted by hail!", name)
	case combat.WeatherRain:
		switch {
		case full:
		case ability == "rain-dish":
			return sixteenth, fmt.Sprintf("%s's Rain Dish restored its HP!", name)
		case ability == "dry-skin":
			return eighth, fmt.Sprintf("%s's Dry Skin restored its HP!", name)
		}
	case combat.WeatherSun:
		if ability == "dry-skin" || ability == "solar-power" {
			return -eighth, fmt.Sprintf("%s was hurt by the harsh sunlight!", name)
		}
	}
	return 0, ""
}

// SpeedModifier doubles speed for weather and terrain speed abilities, and
// boosts Quick Feet holders with a major status.
func (a *Abilities) SpeedModifier(c combat.Combatant, b *combat.Battle) float64 {
	ability := c.GetAbility()
	if cond, ok := speedDoublers[ability]; ok && b != nil {
		if b.Field.Weather == cond || b.Field.Terrain == cond {
			return 2
		}
	}
	if ability == "quick-feet" && c.Status().Major() != "" {
		return 1.5
	}
	return 1
}

// Grounded reports whether hazards and terrain reach c.
func (a *Abilities) Grounded(c combat.Combatant) bool {
	if hasType(c, "flying") || c.GetAbility() == "levitate" {
		return false
	}
	if a.items != nil {
		if item := a.items.GetByID(c.GetHeldItem()); item != nil && item.Levitates {
			return false
		}
	}
	return true
}

var _ combat.AbilityHandler = (*Abilities)(nil)
