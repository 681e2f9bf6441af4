package combat

import (
	"context"
	"errors"
	"time"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// MoveSource looks up move definitions by id.
type MoveSource interface {
	Move(id string) (*gamedata.MoveDef, bool)
}

// TypeChart answers type-effectiveness queries.
type TypeChart interface {
	Effectiveness(attackType string, defendTypes []string) float64
}

// DamageRequest carries everything a damage calculator may look at.
type DamageRequest struct {
	Attacker     Combatant
	Defender     Combatant
	DefenderSide Side
	Move         *gamedata.MoveDef
	Weather      string
	Terrain      string
	Battle       *Battle
	Modifier     float64 // Spread reduction, 1 for single-target hits
}

// DamageResult is the outcome of one damage calculation. The engine applies
// the damage; calculators must not mutate combatants.
type DamageResult struct {
	Damage        int
	Crit          bool
	Effectiveness float64
	Messages      []string
}

// DamageCalculator computes move damage.
type DamageCalculator interface {
	Calculate(ctx context.Context, req DamageRequest) (DamageResult, error)
}

// AbilityHandler runs ability hooks.
type AbilityHandler interface {
	// OnEntry fires when a combatant becomes active.
	OnEntry(ctx context.Context, c Combatant, b *Battle) []string
	// WeatherTick returns the HP change weather causes this turn
	// (negative for damage) and its narration.
	WeatherTick(c Combatant, weather string) (int, string)
	// SpeedModifier multiplies effective speed.
	SpeedModifier(c Combatant, b *Battle) float64
	// Grounded reports whether ground-level hazards reach the combatant.
	Grounded(c Combatant) bool
}

// ItemManager applies held and bag item effects.
type ItemManager interface {
	// CheckMove reports whether the holder may use moveID given the move it
	// is currently locked into ("" when unlocked).
	CheckMove(holder Combatant, locked, moveID string) (bool, string)
	// LocksChoice reports whether using a move locks the holder into it.
	LocksChoice(holder Combatant) bool
	// ModifyIncomingDamage may reduce damage about to hit the holder.
	ModifyIncomingDamage(holder Combatant, damage int) (int, []string)
	// AfterDamage runs after the holder dealt damage with a move.
	AfterDamage(holder Combatant, dealt int) []string
	EndOfTurn(holder Combatant) []string
	SpeedMultiplier(holder Combatant) float64
	UseBagItem(itemID string, target Combatant) ([]string, error)
}

// RulesetHandler decides format legality.
type RulesetHandler interface {
	IsMoveAllowed(moveID, ruleset string) (bool, string)
}

// Summary describes a finished battle.
type Summary struct {
	BattleID     string
	Type         BattleType
	Format       Format
	Winner       string
	Fled         bool
	Turns        int
	Participants []string
	Log          []string
	EndedAt      time.Time
}

// Recorder stores summaries of finished battles.
type Recorder interface {
	RecordBattle(ctx context.Context, summary Summary) error
}

// nopAbilities is used when no ability handler is configured.
type nopAbilities struct{}

func (nopAbilities) OnEntry(context.Context, Combatant, *Battle) []string { return nil }
func (nopAbilities) WeatherTick(Combatant, string) (int, string)          { return 0, "" }
func (nopAbilities) SpeedModifier(Combatant, *Battle) float64             { return 1 }
func (nopAbilities) Grounded(c Combatant) bool                            { return !hasType(c, "flying") }

// nopItems is used when no item manager is configured.
type nopItems struct{}

func (nopItems) CheckMove(Combatant, string, string) (bool, string)      { return true, "" }
func (nopItems) LocksChoice(Combatant) bool                              { return false }
func (nopItems) ModifyIncomingDamage(_ Combatant, d int) (int, []string) { return d, nil }
func (nopItems) AfterDamage(Combatant, int) []string                     { return nil }
func (nopItems) EndOfTurn(Combatant) []string                            { return nil }
func (nopItems) SpeedMultiplier(Combatant) float64                       { return 1 }
func (nopItems) UseBagItem(string, Combatant) ([]string, error) {
	return nil, errors.New("no item manager configured")
}
