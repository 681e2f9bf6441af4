package combat

import (
	"fmt"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Weather and terrain names.
const (
	WeatherRain      = "rain"
	WeatherSun       = "sun"
	WeatherSandstorm = "sandstorm"
	WeatherHail      = "hail"

	TerrainElectric = "electric"
	TerrainGrassy   = "grassy"
	TerrainPsychic  = "psychic"
	TerrainMisty    = "misty"
)

// WeatherStartMessage narrates weather starting.
func WeatherStartMessage(weather string) string {
	switch weather {
	case WeatherRain:
		return "It started to rain!"
	case WeatherSun:
		return "The sunlight turned harsh!"
	case WeatherSandstorm:
		return "A sandstorm kicked up!"
	case WeatherHail:
		return "It started to hail!"
	default:
		return fmt.Sprintf("The weather became %s!", weather)
	}
}

func weatherEndMessage(weather string) string {
	switch weather {
	case WeatherRain:
		return "The rain stopped."
	case WeatherSun:
		return "The harsh sunlight faded."
	case WeatherSandstorm:
		return "The sandstorm subsided."
	case WeatherHail:
		return "The hail stopped."
	default:
		return "The weather cleared."
	}
}

func weatherReturnMessage(weather string) string {
	return fmt.Sprintf("The %s returned!", weatherNoun(weather))
}

func weatherNoun(weather string) string {
	switch weather {
	case WeatherSun:
		return "harsh sunlight"
	default:
		return weather
	}
}

// TerrainStartMessage narrates terrain starting.
func TerrainStartMessage(terrain string) string {
	return fmt.Sprintf("%s Terrain spread across the battlefield!", gamedata.DisplayName(terrain))
}

func terrainEndMessage(terrain string) string {
	return fmt.Sprintf("The %s Terrain disappeared.", gamedata.DisplayName(terrain))
}

func terrainReturnMessage(terrain string) string {
	return fmt.Sprintf("The %s Terrain returned!", gamedata.DisplayName(terrain))
}

func hazardSetMessage(hazard string) string {
	switch hazard {
	case HazardStealthRock:
		return "Pointed stones float in the air around the opposing team!"
	case HazardSpikes:
		return "Spikes were scattered on the ground around the opposing team!"
	case HazardToxicSpikes:
		return "Poison spikes were scattered on the ground around the opposing team!"
	case HazardStickyWeb:
		return "A sticky web spreads out on the ground around the opposing team!"
	default:
		return "A trap was laid around the opposing team!"
	}
}

func volatileMessage(volatile, name string) string {
	switch volatile {
	case VolatileProtect:
		return fmt.Sprintf("%s protected itself!", name)
	case VolatileEndure:
		return fmt.Sprintf("%s braced itself!", name)
	case VolatileFollowMe:
		return fmt.Sprintf("%s became the center of attention!", name)
	case VolatileHelpingHand:
		return fmt.Sprintf("%s is ready to help!", name)
	case VolatileFocusEnergy:
		return fmt.Sprintf("%s is getting pumped!", name)
	case VolatileTaunt:
		return fmt.Sprintf("%s fell for the taunt!", name)
	default:
		return fmt.Sprintf("%s is affected by %s!", name, gamedata.DisplayName(volatile))
	}
}

var statLabels = map[string]string{
	StatAttack:    "Attack",
	StatDefense:   "Defense",
	StatSpAttack:  "Sp. Atk",
	StatSpDefense: "Sp. Def",
	StatSpeed:     "Speed",
}

func statLabel(stat string) string {
	if label, ok := statLabels[stat]; ok {
		return label
	}
	return stat
}

func stageMessage(name, stat string, changed int) string {
	label := statLabel(stat)
	switch {
	case changed >= 3:
		return fmt.Sprintf("%s's %s rose drastically!", name, label)
	case changed == 2:
		return fmt.Sprintf("%s's %s rose sharply!", name, label)
	case changed == 1:
		return fmt.Sprintf("%s's %s rose!", name, label)
	case changed == -1:
		return fmt.Sprintf("%s's %s fell!", name, label)
	case changed == -2:
		return fmt.Sprintf("%s's %s harshly fell!", name, label)
	default:
		return fmt.Sprintf("%s's %s severely fell!", name, label)
	}
}

func stageCappedMessage(name, stat string, delta int) string {
	if delta > 0 {
		return fmt.Sprintf("%s's %s won't go any higher!", name, statLabel(stat))
	}
	return fmt.Sprintf("%s's %s won't go any lower!", name, statLabel(stat))
}
