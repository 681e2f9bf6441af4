// Package combat is the turn engine for creature battles: action
// registration, ordering, the move pipeline, end-of-turn effects and
// switching, shared by singles, doubles, multi and raid formats.
package combat

import "math/rand"

// Combatant is the interface for any creature that can take part in a battle.
// The engine never owns combatants; it only reaches them through a Battler's
// party.
type Combatant interface {
	// Identity
	GetName() string
	GetSpecies() string
	GetTypes() []string
	GetAbility() string
	GetLevel() int
	IsAlive() bool

	// Stats (stage-adjusted)
	GetHP() int
	GetMaxHP() int
	GetAttack() int
	GetDefense() int
	GetSpAttack() int
	GetSpDefense() int
	GetSpeed() int
	GetStage(stat string) int

	// Mutations
	TakeDamage(amount int) int              // Returns actual damage taken
	Heal(amount int) int                    // Returns actual amount healed
	ModifyStage(stat string, delta int) int // Returns actual stage change
	ResetStages()

	// Moves
	GetMoves() []MoveSlot
	UsePP(moveID string) bool // Returns false if the move has no PP left

	// Held item
	GetHeldItem() string
	SetHeldItem(id string)

	// Status conditions
	Status() StatusManager
}

// MoveSlot is one known move and its remaining PP.
type MoveSlot struct {
	MoveID string
	PP     int
	MaxPP  int
}

// Stat names accepted by GetStage and ModifyStage.
const (
	StatAttack    = "attack"
	StatDefense   = "defense"
	StatSpAttack  = "spAttack"
	StatSpDefense = "spDefense"
	StatSpeed     = "speed"
)

// Major status conditions.
const (
	StatusBurn      = "brn"
	StatusParalysis = "par"
	StatusPoison    = "psn"
	StatusToxic     = "tox"
	StatusSleep     = "slp"
	StatusFreeze    = "frz"
)

// Volatile conditions the engine reads or sets.
const (
	VolatileProtect     = "protect"
	VolatileEndure      = "endure"
	VolatileFollowMe    = "follow_me"
	VolatileHelpingHand = "helping_hand"
	VolatileFocusEnergy = "focus_energy"
	VolatileTaunt       = "taunt"
	VolatileFlinch      = "flinch"
)

// turnVolatiles only last for the turn they were set in.
var turnVolatiles = []string{
	VolatileProtect,
	VolatileEndure,
	VolatileFollowMe,
	VolatileHelpingHand,
	VolatileFlinch,
}

// StatusManager tracks the major status and volatile conditions of one
// combatant. Each combatant owns its own manager.
type StatusManager interface {
	// CanMove reports whether the holder may act this turn, with the
	// narration explaining why not (or a wake-up/thaw line when it can).
	CanMove(rng *rand.Rand) (bool, string)

	Major() string
	HasStatus(name string) bool
	ApplyStatus(name string) (bool, string)
	ClearStatus()

	HasVolatile(name string) bool
	AddVolatile(name string)
	RemoveVolatile(name string)
	ClearVolatiles()

	// EndOfTurn applies damage ticks and countdowns, returning narration.
	EndOfTurn() []string
}
