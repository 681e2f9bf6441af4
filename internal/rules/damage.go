// Package rules holds the default battle collaborators: the damage
// calculator, ability hooks, held and bag items, and format rulesets.
package rules

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// ErrIncompleteRequest is returned when a damage request lacks a
// participant or the move.
var ErrIncompleteRequest = errors.New("incomplete damage request")

// Damage modifiers.
const (
	stabBonus        = 1.5
	critBonus        = 1.5
	weatherBoost     = 1.5
	weatherPenalty   = 0.5
	terrainBoost     = 1.3
	helpingHandBonus = 1.5
	burnPenalty      = 0.5
	screenSingles    = 0.5
	screenMulti      = 2732.0 / 4096.0

	baseCritChance  = 1.0 / 24.0
	focusCritChance = 0.5
)

// Calculator computes move damage with the standard formula.
type Calculator struct {
	chart combat.TypeChart
	items *gamedata.ItemRegistry

	mu  sync.Mutex
	rng *rand.Rand
}

// NewCalculator creates a calculator. items may be nil, in which case held
// items never boost power.
func NewCalculator(chart combat.TypeChart, items *gamedata.ItemRegistry, rng *rand.Rand) *Calculator {
	return &Calculator{chart: chart, items: items, rng: rng}
}

// Calculate returns the damage req.Move would deal. It never mutates the
// combatants.
func (c *Calculator) Calculate(ctx context.Context, req combat.DamageRequest) (combat.DamageResult, error) {
	if err := ctx.Err(); err != nil {
		return combat.DamageResult{}, err
	}
	if req.Attacker == nil || req.Defender == nil || req.Move == nil {
		return combat.DamageResult{}, ErrIncompleteRequest
	}

	move := req.Move
	attacker, defender := req.Attacker, req.Defender
	eff := c.chart.Effectiveness(move.Type, defender.GetTypes())
	res := combat.DamageResult{Effectiveness: eff}
	if move.IsStatus() || eff == 0 {
		return res, nil
	}

	var atk, def int
	if move.Category == gamedata.CategorySpecial {
		atk, def = attacker.GetSpAttack(), defender.GetSpDefense()
	} else {
		atk, def = attacker.GetAttack(), defender.GetDefense()
	}
	def = max(def, 1)

	level := attacker.GetLevel()
	base := math.Floor(math.Floor(float64(2*level)/5+2) * float64(move.Power) * float64(atk) / float64(def))
	damage := math.Floor(base/50) + 2

	res.Crit = c.rollCrit(attacker)
	roll := c.rollRandom()

	mod := req.Modifier
	if mod <= 0 {
		mod = 1
	}
	mod *= weatherModifier(req.Weather, move.Type)
	mod *= terrainModifier(req.Terrain, move.Type)
	if res.Crit {
		mod *= critBonus
	}
	mod *= roll
	if hasType(attacker, move.Type) {
		mod *= stabBonus
	}
	mod *= eff
	if move.Category == gamedata.CategoryPhysical && attacker.Status().HasStatus(combat.StatusBurn) {
		mod *= burnPenalty
	}
	if !res.Crit {
		mod *= screenModifier(req, move)
	}
	if attacker.Status().HasVolatile(combat.VolatileHelpingHand) {
		mod *= helpingHandBonus
	}
	mod *= c.itemModifier(attacker, move)

	res.Damage = max(int(math.Floor(damage*mod)), 1)
	return res, nil
}

func (c *Calculator) rollCrit(attacker combat.Combatant) bool {
	chance := baseCritChance
	if attacker.Status().HasVolatile(combat.VolatileFocusEnergy) {
		chance = focusCritChance
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.Float64() < chance
}

// rollRandom returns the 85% to 100% damage spread.
func (c *Calculator) rollRandom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(85+c.rng.Intn(16)) / 100
}

func (c *Calculator) itemModifier(attacker combat.Combatant, move *gamedata.MoveDef) float64 {
	if c.items == nil {
		return 1
	}
	item := c.items.GetByID(attacker.GetHeldItem())
	if item == nil || item.PowerMultiplier <= 0 {
		return 1
	}
	if item.Boosts != "" && item.Boosts != move.Category {
		return 1
	}
	return item.PowerMultiplier
}

func weatherModifier(weather, moveType string) float64 {
	switch {
	case weather == combat.WeatherRain && moveType == "water":
		return weatherBoost
	case weather == combat.WeatherRain && moveType == "fire":
		return weatherPenalty
	case weather == combat.WeatherSun && moveType == "fire":
		return weatherBoost
	case weather == combat.WeatherSun && moveType == "water":
		return weatherPenalty
	}
	return 1
}

var terrainTypes = map[string]string{
	combat.TerrainElectric: "electric",
	combat.TerrainGrassy:   "grass",
	combat.TerrainPsychic:  "psychic",
}

func terrainModifier(terrain, moveType string) float64 {
	if terrain == combat.TerrainMisty && moveType == "dragon" {
		return 0.5
	}
	if t, ok := terrainTypes[terrain]; ok && t == moveType {
		return terrainBoost
	}
	return 1
}

// screenModifier applies Reflect to physical and Light Screen to special
// hits on the defending side.
func screenModifier(req combat.DamageRequest, move *gamedata.MoveDef) float64 {
	if req.Battle == nil {
		return 1
	}
	screen := combat.ScreenReflect
	if move.Category == gamedata.CategorySpecial {
		screen = combat.ScreenLightScreen
	}
	if req.Battle.Field.Screens[req.DefenderSide][screen] <= 0 {
		return 1
	}
	if req.Battle.Format == combat.FormatSingles {
		return screenSingles
	}
	return screenMulti
}

func hasType(c combat.Combatant, typ string) bool {
	for _, t := range c.GetTypes() {
		if t == typ {
			return true
		}
	}
	return false
}
