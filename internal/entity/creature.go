// Package entity provides the concrete battle creatures and the builders
// that assemble parties and wild encounters from game data.
package entity

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// DefaultLevel is the level creatures are built at unless stated otherwise.
const DefaultLevel = 50

// Stage limits.
const (
	minStage = -6
	maxStage = 6
)

// ErrUnknownMove is returned when a species lists a move that is not in the
// move data.
var ErrUnknownMove = errors.New("unknown move")

// Creature is a single battling creature.
type Creature struct {
	Name     string // Nickname, defaults to the species name
	Species  string
	Types    []string
	Ability  string
	Level    int
	HeldItem string
	Color    tcell.Color

	HP, MaxHP int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int

	Moves  []combat.MoveSlot
	stages map[string]int
	status *Conditions
}

// NewCreature builds a creature of the given species and level. Its moves are
// the species default moveset with full PP.
func NewCreature(def *gamedata.SpeciesDef, moves combat.MoveSource, level int) (*Creature, error) {
	if def == nil {
		return nil, errors.New("species definition is required")
	}
	if level <= 0 {
		level = DefaultLevel
	}

	c := &Creature{
		Name:      def.Name,
		Species:   def.ID,
		Types:     append([]string(nil), def.Types...),
		Ability:   def.Ability,
		Level:     level,
		Color:     def.TCellColor(),
		MaxHP:     hpStat(def.Stats.HP, level),
		Attack:    otherStat(def.Stats.Attack, level),
		Defense:   otherStat(def.Stats.Defense, level),
		SpAttack:  otherStat(def.Stats.SpAttack, level),
		SpDefense: otherStat(def.Stats.SpDefense, level),
		Speed:     otherStat(def.Stats.Speed, level),
		stages:    make(map[string]int),
	}
	c.HP = c.MaxHP
	c.status = NewConditions(c)

	for _, id := range def.Moves {
		m, ok := moves.Move(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s (species %s)", ErrUnknownMove, id, def.ID)
		}
		c.Moves = append(c.Moves, combat.MoveSlot{MoveID: m.ID, PP: m.PP, MaxPP: m.PP})
	}
	return c, nil
}

// Stats assume perfect individual values, no effort values and a neutral
// nature.
func hpStat(base, level int) int {
	return (2*base+31)*level/100 + level + 10
}

func otherStat(base, level int) int {
	return (2*base+31)*level/100 + 5
}

// stageMultiplier returns the stat multiplier of a stage in [-6, 6].
func stageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

func (c *Creature) staged(stat string, value int) int {
	return max(int(float64(value)*stageMultiplier(c.stages[stat])), 1)
}

func (c *Creature) GetName() string    { return c.Name }
func (c *Creature) GetSpecies() string { return c.Species }
func (c *Creature) GetTypes() []string { return c.Types }
func (c *Creature) GetAbility() string { return c.Ability }
func (c *Creature) GetLevel() int      { return c.Level }
func (c *Creature) IsAlive() bool      { return c.HP > 0 }

func (c *Creature) GetHP() int        { return c.HP }
func (c *Creature) GetMaxHP() int     { return c.MaxHP }
func (c *Creature) GetAttack() int    { return c.staged(combat.StatAttack, c.Attack) }
func (c *Creature) GetDefense() int   { return c.staged(combat.StatDefense, c.Defense) }
func (c *Creature) GetSpAttack() int  { return c.staged(combat.StatSpAttack, c.SpAttack) }
func (c *Creature) GetSpDefense() int { return c.staged(combat.StatSpDefense, c.SpDefense) }

// GetSpeed returns stage-adjusted speed, halved while paralyzed.
func (c *Creature) GetSpeed() int {
	speed := c.staged(combat.StatSpeed, c.Speed)
	if c.status.HasStatus(combat.StatusParalysis) {
		speed = max(speed/2, 1)
	}
	return speed
}

// GetStage returns the current stage of a stat.
func (c *Creature) GetStage(stat string) int { return c.stages[stat] }

// TakeDamage reduces HP and returns actual damage taken.
func (c *Creature) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, c.HP)
	c.HP -= actual
	return actual
}

// Heal restores HP and returns actual amount healed. It also works on a
// fainted creature, which is how revival brings it back.
func (c *Creature) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, c.MaxHP-c.HP)
	c.HP += actual
	return actual
}

// ModifyStage shifts a stat stage, clamped to [-6, 6], and returns the
// change actually applied.
func (c *Creature) ModifyStage(stat string, delta int) int {
	before := c.stages[stat]
	after := min(max(before+delta, minStage), maxStage)
	c.stages[stat] = after
	return after - before
}

// ResetStages clears every stat stage.
func (c *Creature) ResetStages() {
	clear(c.stages)
}

// GetMoves returns the move slots.
func (c *Creature) GetMoves() []combat.MoveSlot { return c.Moves }

// UsePP spends one PP of a known move.
func (c *Creature) UsePP(moveID string) bool {
	for i := range c.Moves {
		if c.Moves[i].MoveID != moveID {
			continue
		}
		if c.Moves[i].PP <= 0 {
			return false
		}
		c.Moves[i].PP--
		return true
	}
	return false
}

// RestorePP refills every move.
func (c *Creature) RestorePP() {
	for i := range c.Moves {
		c.Moves[i].PP = c.Moves[i].MaxPP
	}
}

func (c *Creature) GetHeldItem() string          { return c.HeldItem }
func (c *Creature) SetHeldItem(id string)        { c.HeldItem = id }
func (c *Creature) Status() combat.StatusManager { return c.status }

// Conditions returns the concrete status manager.
func (c *Creature) Conditions() *Conditions { return c.status }

var _ combat.Combatant = (*Creature)(nil)
