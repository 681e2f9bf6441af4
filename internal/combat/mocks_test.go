package combat

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// mockCombatant is a test implementation of the Combatant interface.
type mockCombatant struct {
	name    string
	types   []string
	ability string

	hp, maxHP int
	attack    int
	defense   int
	spAttack  int
	spDefense int
	speed     int
	stages    map[string]int

	moves  []MoveSlot
	item   string
	status *mockStatus
}

func newMon(name string, types []string, hp, speed int, moves ...string) *mockCombatant {
	m := &mockCombatant{
		name:      name,
		types:     types,
		hp:        hp,
		maxHP:     hp,
		attack:    10,
		defense:   10,
		spAttack:  10,
		spDefense: 10,
		speed:     speed,
		stages:    map[string]int{},
	}
	for _, id := range moves {
		m.moves = append(m.moves, MoveSlot{MoveID: id, PP: 10, MaxPP: 10})
	}
	m.status = &mockStatus{owner: m, volatiles: map[string]bool{}}
	return m
}

func (m *mockCombatant) GetName() string          { return m.name }
func (m *mockCombatant) GetSpecies() string       { return strings.ToLower(m.name) }
func (m *mockCombatant) GetTypes() []string       { return m.types }
func (m *mockCombatant) GetAbility() string       { return m.ability }
func (m *mockCombatant) GetLevel() int            { return 50 }
func (m *mockCombatant) IsAlive() bool            { return m.hp > 0 }
func (m *mockCombatant) GetHP() int               { return m.hp }
func (m *mockCombatant) GetMaxHP() int            { return m.maxHP }
func (m *mockCombatant) GetAttack() int           { return m.attack }
func (m *mockCombatant) GetDefense() int          { return m.defense }
func (m *mockCombatant) GetSpAttack() int         { return m.spAttack }
func (m *mockCombatant) GetSpDefense() int        { return m.spDefense }
func (m *mockCombatant) GetSpeed() int            { return m.speed }
func (m *mockCombatant) GetStage(stat string) int { return m.stages[stat] }
func (m *mockCombatant) GetMoves() []MoveSlot     { return m.moves }
func (m *mockCombatant) GetHeldItem() string      { return m.item }
func (m *mockCombatant) SetHeldItem(id string)    { m.item = id }
func (m *mockCombatant) Status() StatusManager    { return m.status }
func (m *mockCombatant) ResetStages()             { clear(m.stages) }

func (m *mockCombatant) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.hp)
	m.hp -= actual
	return actual
}

func (m *mockCombatant) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, m.maxHP-m.hp)
	m.hp += actual
	return actual
}

func (m *mockCombatant) ModifyStage(stat string, delta int) int {
	old := m.stages[stat]
	m.stages[stat] = max(-6, min(6, old+delta))
	return m.stages[stat] - old
}

func (m *mockCombatant) UsePP(moveID string) bool {
	for i := range m.moves {
		if m.moves[i].MoveID == moveID {
			if m.moves[i].PP <= 0 {
				return false
			}
			m.moves[i].PP--
			return true
		}
	}
	return false
}

func (m *mockCombatant) pp(moveID string) int {
	for _, s := range m.moves {
		if s.MoveID == moveID {
			return s.PP
		}
	}
	return -1
}

// mockStatus keeps conditions in plain fields.
type mockStatus struct {
	owner     *mockCombatant
	major     string
	volatiles map[string]bool
	blocked   string // When set, CanMove refuses with this message
	tick      int    // End-of-turn damage while a major status is set
}

func (s *mockStatus) CanMove(*rand.Rand) (bool, string) {
	if s.blocked != "" {
		return false, s.blocked
	}
	return true, ""
}

func (s *mockStatus) Major() string              { return s.major }
func (s *mockStatus) HasStatus(name string) bool { return s.major == name }
func (s *mockStatus) ClearStatus()               { s.major = "" }
func (s *mockStatus) HasVolatile(name string) bool {
	return s.volatiles[name]
}
func (s *mockStatus) AddVolatile(name string)    { s.volatiles[name] = true }
func (s *mockStatus) RemoveVolatile(name string) { delete(s.volatiles, name) }
func (s *mockStatus) ClearVolatiles()            { clear(s.volatiles) }

func (s *mockStatus) ApplyStatus(name string) (bool, string) {
	if s.major != "" {
		return false, fmt.Sprintf("%s is already afflicted!", s.owner.name)
	}
	s.major = name
	return true, fmt.Sprintf("%s was afflicted with %s!", s.owner.name, name)
}

func (s *mockStatus) EndOfTurn() []string {
	if s.major == "" || s.tick <= 0 {
		return nil
	}
	s.owner.TakeDamage(s.tick)
	return []string{fmt.Sprintf("%s is hurt by its %s!", s.owner.name, s.major)}
}

// fixedCalc deals a fixed amount of damage, scaled by the request modifier,
// with effectiveness taken from the real chart.
type fixedCalc struct {
	damage   int
	damageBy map[string]int // Per attacker name
	chart    TypeChart
	err      error
	panics   bool

	calls        int
	lastModifier float64
}

func (c *fixedCalc) Calculate(_ context.Context, req DamageRequest) (DamageResult, error) {
	c.calls++
	c.lastModifier = req.Modifier
	if c.panics {
		panic("calculator exploded")
	}
	if c.err != nil {
		return DamageResult{}, c.err
	}
	damage := c.damage
	if d, ok := c.damageBy[req.Attacker.GetName()]; ok {
		damage = d
	}
	eff := 1.0
	if c.chart != nil {
		eff = c.chart.Effectiveness(req.Move.Type, req.Defender.GetTypes())
	}
	if eff == 0 {
		return DamageResult{Effectiveness: 0}, nil
	}
	return DamageResult{Damage: int(float64(damage) * req.Modifier), Effectiveness: eff}, nil
}

// stubAbilities grounds everything but flying types and levitate users.
type stubAbilities struct {
	entry        map[string][]string
	weatherDelta int
}

func (s *stubAbilities) OnEntry(_ context.Context, c Combatant, _ *Battle) []string {
	return s.entry[c.GetName()]
}

func (s *stubAbilities) WeatherTick(c Combatant, weather string) (int, string) {
	if s.weatherDelta == 0 {
		return 0, ""
	}
	return s.weatherDelta, fmt.Sprintf("%s is buffeted by the %s!", c.GetName(), weather)
}

func (s *stubAbilities) SpeedModifier(Combatant, *Battle) float64 { return 1 }

func (s *stubAbilities) Grounded(c Combatant) bool {
	return !hasType(c, "flying") && c.GetAbility() != "levitate"
}

// choiceItems locks every holder into its first move.
type choiceItems struct{ nopItems }

func (choiceItems) LocksChoice(Combatant) bool { return true }

func (choiceItems) CheckMove(holder Combatant, locked, moveID string) (bool, string) {
	if locked != "" && locked != moveID {
		return false, fmt.Sprintf("%s is locked into %s!", holder.GetName(), gamedata.DisplayName(locked))
	}
	return true, ""
}

type stubRulesets struct {
	banned map[string]bool
}

func (s stubRulesets) IsMoveAllowed(moveID, ruleset string) (bool, string) {
	if ruleset == "competitive" && s.banned[moveID] {
		return false, fmt.Sprintf("%s is banned in %s battles!", gamedata.DisplayName(moveID), ruleset)
	}
	return true, ""
}

type stubRecorder struct {
	summaries []Summary
	err       error
}

func (r *stubRecorder) RecordBattle(_ context.Context, s Summary) error {
	r.summaries = append(r.summaries, s)
	return r.err
}

var errCalcDown = errors.New("calculator unavailable")

// fixedSource makes every Float64 draw return the same value.
type fixedSource float64

func (f fixedSource) Int63() int64 { return int64(float64(f) * (1 << 63)) }
func (fixedSource) Seed(int64)     {}

func testMoves() *gamedata.MoveRegistry {
	physical, special, status := gamedata.CategoryPhysical, gamedata.CategorySpecial, gamedata.CategoryStatus
	single, self, field := gamedata.TargetSingle, gamedata.TargetSelf, gamedata.TargetField
	return gamedata.NewMoveRegistry([]gamedata.MoveDef{
		{ID: "struggle", Type: "", Category: physical, Power: 50, Target: single, PP: 1},
		{ID: "tackle", Type: "normal", Category: physical, Power: 40, Target: single, PP: 35},
		{ID: "quick-attack", Type: "normal", Category: physical, Power: 40, Priority: 1, Target: single, PP: 30},
		{ID: "ember", Type: "fire", Category: special, Power: 40, Target: single, PP: 25},
		{ID: "water-gun", Type: "water", Category: special, Power: 40, Target: single, PP: 25},
		{ID: "thunderbolt", Type: "electric", Category: special, Power: 90, Target: single, PP: 15},
		{ID: "volt-switch", Type: "electric", Category: special, Power: 70, Target: single, PP: 20, SelfSwitch: true},
		{ID: "rock-slide", Type: "rock", Category: physical, Power: 75, Target: gamedata.TargetAllOpponents, PP: 10},
		{ID: "earthquake", Type: "ground", Category: physical, Power: 100, Target: gamedata.TargetAllAdjacent, PP: 10},
		{ID: "sheer-cold", Type: "ice", Category: special, Power: 200, Target: single, PP: 5},
		{ID: "protect", Type: "normal", Category: status, Priority: 4, Target: self, PP: 10, Protect: true, Volatile: VolatileProtect},
		{ID: "endure", Type: "normal", Category: status, Priority: 4, Target: self, PP: 10, Volatile: VolatileEndure},
		{ID: "follow-me", Type: "normal", Category: status, Priority: 2, Target: self, PP: 20, Volatile: VolatileFollowMe},
		{ID: "helping-hand", Type: "normal", Category: status, Priority: 5, Target: gamedata.TargetAlly, PP: 20, Volatile: VolatileHelpingHand},
		{ID: "swords-dance", Type: "normal", Category: status, Target: self, PP: 20, StatChanges: map[string]int{StatAttack: 2}},
		{ID: "taunt", Type: "dark", Category: status, Target: single, PP: 20, Volatile: VolatileTaunt},
		{ID: "thunder-wave", Type: "electric", Category: status, Target: single, PP: 20, Status: StatusParalysis},
		{ID: "stealth-rock", Type: "rock", Category: status, Target: field, PP: 20, Hazard: HazardStealthRock},
		{ID: "rain-dance", Type: "water", Category: status, Target: field, PP: 5, Weather: WeatherRain},
		{ID: "trick-room", Type: "psychic", Category: status, Priority: -7, Target: field, PP: 5, TrickRoom: true},
		{ID: "revival-blessing", Type: "normal", Category: status, Target: self, PP: 1, Revive: true},
	})
}

var testChart = gamedata.MustLoadTypeChart()

type testEngine struct {
	*Engine
	calc      *fixedCalc
	abilities *stubAbilities
	recorder  *stubRecorder
}

func newTestEngine(t *testing.T, items ItemManager) *testEngine {
	t.Helper()
	calc := &fixedCalc{damage: 10, chart: testChart}
	abilities := &stubAbilities{}
	recorder := &stubRecorder{}
	e := NewEngine(Collaborators{
		Moves:      testMoves(),
		Chart:      testChart,
		Calculator: calc,
		Abilities:  abilities,
		Items:      items,
		Rulesets:   stubRulesets{banned: map[string]bool{"sheer-cold": true}},
	}, DefaultSettings(), WithRand(rand.New(rand.NewSource(1))), WithRecorder(recorder))
	return &testEngine{Engine: e, calc: calc, abilities: abilities, recorder: recorder}
}

func contains(msgs []string, substr string) bool {
	return slices.ContainsFunc(msgs, func(m string) bool { return strings.Contains(m, substr) })
}

func mustRegister(t *testing.T, e *Engine, b *Battle, battlerID int64, a Action) *RegisterResult {
	t.Helper()
	res, err := e.RegisterAction(context.Background(), b.ID, battlerID, a)
	if err != nil {
		t.Fatalf("RegisterAction(%d, %+v) error = %v", battlerID, a, err)
	}
	return res
}

func mustProcess(t *testing.T, e *Engine, b *Battle) *TurnResult {
	t.Helper()
	res, err := e.ProcessTurn(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if res == nil {
		t.Fatal("ProcessTurn() returned nil result")
	}
	return res
}
