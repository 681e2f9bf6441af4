package combat

import (
	"context"
	"fmt"
	"maps"
	"slices"
)

// endOfTurn runs the effects that close a turn: status and held item ticks,
// weather damage and the field countdowns.
func (e *Engine) endOfTurn(ctx context.Context, b *Battle) {
	_, span := e.tracer.Start(ctx, "battle.end_of_turn")
	defer span.End()

	for _, ref := range b.activeRefs(b.Battlers()) {
		if b.Over {
			return
		}
		if ref.battler.Eliminated || !ref.alive() {
			continue
		}
		c := ref.combatant()
		b.say(c.Status().EndOfTurn()...)
		if c.IsAlive() {
			b.say(e.items.EndOfTurn(c)...)
		}
		if !c.IsAlive() {
			e.handleFaint(b, ref)
		}
	}
	if b.Over {
		return
	}

	e.weatherTick(b)
	if b.Over {
		return
	}
	e.countdownField(b)
}

// weatherTick applies the active weather to every living combatant.
func (e *Engine) weatherTick(b *Battle) {
	weather := b.Field.Weather
	if weather == "" {
		return
	}
	for _, ref := range b.livingRefs(b.Battlers()) {
		c := ref.combatant()
		delta, msg := e.abilities.WeatherTick(c, weather)
		switch {
		case delta < 0:
			c.TakeDamage(-delta)
		case delta > 0:
			c.Heal(delta)
		}
		b.say(msg)
		if !c.IsAlive() {
			e.handleFaint(b, ref)
		}
	}
	e.checkBattleEnd(b)
}

// countdownField ages weather, terrain, trick room and screens. Expired
// temporary weather or terrain gives way to the permanent one, if any.
func (e *Engine) countdownField(b *Battle) {
	f := &b.Field
	permanent := e.settings.PermanentFieldTurns

	if f.Weather != "" {
		f.WeatherTurns--
		if f.WeatherTurns <= 0 {
			expired := f.Weather
			switch {
			case f.PermanentWeather == "":
				f.Weather = ""
				f.WeatherTurns = 0
				b.say(weatherEndMessage(expired))
			case f.PermanentWeather == expired:
				f.WeatherTurns = permanent
			default:
				b.SetWeather(f.PermanentWeather, permanent)
				b.say(weatherEndMessage(expired), weatherReturnMessage(f.PermanentWeather))
			}
		}
	}

	if f.Terrain != "" {
		f.TerrainTurns--
		if f.TerrainTurns <= 0 {
			expired := f.Terrain
			switch {
			case f.PermanentTerrain == "":
				f.Terrain = ""
				f.TerrainTurns = 0
				b.say(terrainEndMessage(expired))
			case f.PermanentTerrain == expired:
				f.TerrainTurns = permanent
			default:
				b.SetTerrain(f.PermanentTerrain, permanent)
				b.say(terrainEndMessage(expired), terrainReturnMessage(f.PermanentTerrain))
			}
		}
	}

	if f.TrickRoomTurns > 0 {
		f.TrickRoomTurns--
		if f.TrickRoomTurns == 0 {
			b.say("The twisted dimensions returned to normal!")
		}
	}

	for side, screens := range f.Screens {
		for _, screen := range slices.Sorted(maps.Keys(screens)) {
			turns := screens[screen]
			if turns <= 1 {
				delete(screens, screen)
				b.say(fmt.Sprintf("The %s team's %s wore off!", Side(side), screenName(screen)))
				continue
			}
			screens[screen] = turns - 1
		}
	}
}

func screenName(screen string) string {
	switch screen {
	case ScreenReflect:
		return "Reflect"
	case ScreenLightScreen:
		return "Light Screen"
	default:
		return screen
	}
}
