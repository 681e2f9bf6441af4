package combat

import (
	"context"
	"errors"
	"time"

	"github.com/looplab/fsm"
	"github.com/samber/lo"
)

// BattleType distinguishes encounters by who the opponent is.
type BattleType string

const (
	TypeWild    BattleType = "wild"
	TypeTrainer BattleType = "trainer"
	TypePvP     BattleType = "pvp"
)

// Format is the shape of a battle.
type Format string

const (
	FormatSingles Format = "singles"
	FormatDoubles Format = "doubles"
	FormatMulti   Format = "multi"
	FormatRaid    Format = "raid"
)

// Winner values.
const (
	WinnerTrainer  = "trainer"
	WinnerOpponent = "opponent"
	WinnerDraw     = "draw"
)

// Phase is the battle's position in the turn cycle.
type Phase string

const (
	PhaseStart          Phase = "start"
	PhaseWaitingActions Phase = "waiting_actions"
	PhaseResolving      Phase = "resolving"
	PhaseForcedSwitch   Phase = "forced_switch"
	PhaseVoltSwitch     Phase = "volt_switch"
	PhaseDazed          Phase = "dazed"
	PhaseEnded          Phase = "ended"
)

// Phase machine events.
const (
	evBegin       = "begin"
	evResolve     = "resolve"
	evAwait       = "await"
	evForceSwitch = "force_switch"
	evVoltSwitch  = "volt_switch"
	evDaze        = "daze"
	evEnd         = "end"
)

func newPhaseMachine() *fsm.FSM {
	waiting := string(PhaseWaitingActions)
	resolving := string(PhaseResolving)
	forced := string(PhaseForcedSwitch)
	volt := string(PhaseVoltSwitch)
	dazed := string(PhaseDazed)

	return fsm.NewFSM(
		string(PhaseStart),
		fsm.Events{
			{Name: evBegin, Src: []string{string(PhaseStart)}, Dst: waiting},
			{Name: evResolve, Src: []string{waiting, dazed}, Dst: resolving},
			{Name: evAwait, Src: []string{resolving, forced, volt, dazed}, Dst: waiting},
			{Name: evForceSwitch, Src: []string{resolving, forced, volt}, Dst: forced},
			{Name: evVoltSwitch, Src: []string{resolving, forced, volt}, Dst: volt},
			{Name: evDaze, Src: []string{resolving}, Dst: dazed},
			{Name: evEnd, Src: []string{string(PhaseStart), waiting, resolving, forced, volt, dazed, string(PhaseEnded)}, Dst: string(PhaseEnded)},
		},
		fsm.Callbacks{},
	)
}

// Hazard and screen names.
const (
	HazardStealthRock = "stealth_rock"
	HazardSpikes      = "spikes"
	HazardToxicSpikes = "toxic_spikes"
	HazardStickyWeb   = "sticky_web"

	ScreenReflect     = "reflect"
	ScreenLightScreen = "light_screen"
)

var hazardLayers = map[string]int{
	HazardStealthRock: 1,
	HazardSpikes:      3,
	HazardToxicSpikes: 2,
	HazardStickyWeb:   1,
}

// Field holds the conditions shared by every combatant.
type Field struct {
	Weather      string
	WeatherTurns int
	Terrain      string
	TerrainTurns int

	// Boss-intrinsic conditions restored when a temporary one expires
	PermanentWeather string
	PermanentTerrain string

	TrickRoomTurns int

	Hazards [2]map[string]int // Indexed by Side
	Screens [2]map[string]int
}

func newField() Field {
	return Field{
		Hazards: [2]map[string]int{{}, {}},
		Screens: [2]map[string]int{{}, {}},
	}
}

// TrickRoom reports whether speed order is reversed.
func (f *Field) TrickRoom() bool {
	return f.TrickRoomTurns > 0
}

// SwitchKind says why a battler must replace an active combatant.
type SwitchKind string

const (
	SwitchForced SwitchKind = "forced" // Human replacement after a faint
	SwitchVolt   SwitchKind = "volt"   // Human choice after a self-switch move
	SwitchAI     SwitchKind = "ai"     // AI replacement, performed after end of turn
)

// PendingSwitch is one queued replacement.
type PendingSwitch struct {
	Slot       int
	Kind       SwitchKind
	PartyIndex int // Chosen replacement, AI switches only
}

// Battle is the root aggregate of one match.
type Battle struct {
	ID      string
	Type    BattleType
	Format  Format
	Ruleset string

	Trainer         *Battler
	Opponent        *Battler
	TrainerPartner  *Battler
	OpponentPartner *Battler
	RaidAllies      []*Battler

	Turn  int
	Field Field

	PendingActions  map[string]Action
	PendingSwitches map[int64]PendingSwitch

	Over   bool
	Winner string
	Fled   bool

	Log     []string
	TurnLog []string

	StartedAt time.Time

	phase             *fsm.FSM
	fieldTurns        int
	dazed             bool // Wild combatant dazed during the current turn
	deferredEndOfTurn bool
	seq               int
	actionSeq         map[string]int
	switches          []SwitchEvent
}

func newBattle(id string) *Battle {
	return &Battle{
		ID:              id,
		Turn:            1,
		Field:           newField(),
		fieldTurns:      5,
		PendingActions:  make(map[string]Action),
		PendingSwitches: make(map[int64]PendingSwitch),
		StartedAt:       time.Now(),
		phase:           newPhaseMachine(),
		actionSeq:       make(map[string]int),
	}
}

// Phase returns the current phase.
func (b *Battle) Phase() Phase {
	return Phase(b.phase.Current())
}

// transition fires a phase event. Firing an event that leaves the phase
// unchanged is not an error.
func (b *Battle) transition(ctx context.Context, event string) error {
	err := b.phase.Event(ctx, event)
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return err
}

// Battlers returns every participant in join order.
func (b *Battle) Battlers() []*Battler {
	all := []*Battler{b.Trainer, b.Opponent, b.TrainerPartner, b.OpponentPartner}
	all = append(all, b.RaidAllies...)
	return lo.Filter(all, func(x *Battler, _ int) bool { return x != nil })
}

// Battler returns the participant with the given id.
func (b *Battle) Battler(id int64) (*Battler, bool) {
	return lo.Find(b.Battlers(), func(x *Battler) bool { return x.ID == id })
}

// TeamsOf returns a battler's own team (itself first) and the opposing
// team without eliminated battlers.
func (b *Battle) TeamsOf(battlerID int64) (own, opposing []*Battler) {
	self, ok := b.Battler(battlerID)
	if !ok {
		return nil, nil
	}
	own = []*Battler{self}
	for _, x := range b.Battlers() {
		switch {
		case x == self:
		case x.Side == self.Side:
			own = append(own, x)
		case !x.Eliminated:
			opposing = append(opposing, x)
		}
	}
	return own, opposing
}

// Locate finds the battler and slot of an active combatant.
func (b *Battle) Locate(c Combatant) (*Battler, int, bool) {
	for _, x := range b.Battlers() {
		for slot := range x.Active {
			if x.ActiveCombatant(slot) == c {
				return x, slot, true
			}
		}
	}
	return nil, -1, false
}

// ActiveOn returns the living active combatants of one side.
func (b *Battle) ActiveOn(side Side) []Combatant {
	var out []Combatant
	for _, ref := range b.activeRefs(b.Battlers()) {
		if ref.battler.Side == side && ref.alive() {
			out = append(out, ref.combatant())
		}
	}
	return out
}

func (b *Battle) activeRefs(battlers []*Battler) []slotRef {
	var refs []slotRef
	for _, x := range battlers {
		for slot := range x.Active {
			refs = append(refs, slotRef{battler: x, slot: slot})
		}
	}
	return refs
}

func (b *Battle) livingRefs(battlers []*Battler) []slotRef {
	return lo.Filter(b.activeRefs(battlers), func(r slotRef, _ int) bool { return r.alive() })
}

// SetWeather starts a weather condition for the given number of turns.
func (b *Battle) SetWeather(weather string, turns int) {
	b.Field.Weather = weather
	b.Field.WeatherTurns = turns
}

// SetTerrain starts a terrain for the given number of turns.
func (b *Battle) SetTerrain(terrain string, turns int) {
	b.Field.Terrain = terrain
	b.Field.TerrainTurns = turns
}

// StartWeather starts weather with the standard duration. It returns false
// when that weather is already active.
func (b *Battle) StartWeather(weather string) bool {
	if b.Field.Weather == weather {
		return false
	}
	b.SetWeather(weather, b.fieldTurns)
	return true
}

// StartTerrain starts terrain with the standard duration. It returns false
// when that terrain is already active.
func (b *Battle) StartTerrain(terrain string) bool {
	if b.Field.Terrain == terrain {
		return false
	}
	b.SetTerrain(terrain, b.fieldTurns)
	return true
}

// currentSwitchWaiter is the first human battler, in join order, that must
// pick a replacement. It is the only battler allowed to act.
func (b *Battle) currentSwitchWaiter() (*Battler, PendingSwitch, bool) {
	for _, x := range b.Battlers() {
		ps, ok := b.PendingSwitches[x.ID]
		if ok && ps.Kind != SwitchAI {
			return x, ps, true
		}
	}
	return nil, PendingSwitch{}, false
}

func (b *Battle) hasPendingVolt() bool {
	return lo.SomeBy(lo.Values(b.PendingSwitches), func(ps PendingSwitch) bool {
		return ps.Kind == SwitchVolt
	})
}

// say appends narration to the turn and battle logs.
func (b *Battle) say(lines ...string) {
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.TurnLog = append(b.TurnLog, line)
		b.Log = append(b.Log, line)
	}
}
