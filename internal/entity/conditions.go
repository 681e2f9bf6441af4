package entity

import (
	"fmt"
	"math/rand"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
)

// Condition tuning.
const (
	TauntTurns     = 3
	thawChance     = 0.2
	fullParaChance = 0.25
	minSleepTurns  = 1
	maxSleepTurns  = 3
)

// statusImmunities lists the types that can never receive a major status.
var statusImmunities = map[string][]string{
	combat.StatusBurn:      {"fire"},
	combat.StatusParalysis: {"electric"},
	combat.StatusPoison:    {"poison", "steel"},
	combat.StatusToxic:     {"poison", "steel"},
	combat.StatusFreeze:    {"ice"},
}

// Conditions is the status manager of one creature.
type Conditions struct {
	owner     *Creature
	major     string
	volatiles map[string]bool

	sleepTurns int // Turns left asleep, 0 until rolled on the first attempt to move
	toxicCount int
	tauntTurns int
}

// NewConditions returns an empty manager for owner.
func NewConditions(owner *Creature) *Conditions {
	return &Conditions{
		owner:     owner,
		volatiles: make(map[string]bool),
	}
}

// CanMove reports whether the owner may act this turn.
func (s *Conditions) CanMove(rng *rand.Rand) (bool, string) {
	name := s.owner.Name
	if s.volatiles[combat.VolatileFlinch] {
		delete(s.volatiles, combat.VolatileFlinch)
		return false, fmt.Sprintf("%s flinched and couldn't move!", name)
	}

	switch s.major {
	case combat.StatusSleep:
		if s.sleepTurns == 0 {
			s.sleepTurns = minSleepTurns + rng.Intn(maxSleepTurns-minSleepTurns+1) + 1
		}
		s.sleepTurns--
		if s.sleepTurns == 0 {
			s.ClearStatus()
			return true, fmt.Sprintf("%s woke up!", name)
		}
		return false, fmt.Sprintf("%s is fast asleep.", name)
	case combat.StatusFreeze:
		if rng.Float64() < thawChance {
			s.ClearStatus()
			return true, fmt.Sprintf("%s thawed out!", name)
		}
		return false, fmt.Sprintf("%s is frozen solid!", name)
	case combat.StatusParalysis:
		if rng.Float64() < fullParaChance {
			return false, fmt.Sprintf("%s is paralyzed! It can't move!", name)
		}
	}
	return true, ""
}

// Major returns the current major status, "" when healthy.
func (s *Conditions) Major() string { return s.major }

// HasStatus reports whether name is the current major status.
func (s *Conditions) HasStatus(name string) bool { return s.major != "" && s.major == name }

// ApplyStatus inflicts a major status. A creature holds at most one, and
// some types are immune to some conditions.
func (s *Conditions) ApplyStatus(name string) (bool, string) {
	owner := s.owner.Name
	if s.major == name {
		return false, fmt.Sprintf("%s is already %s!", owner, statusAdjective(name))
	}
	if s.major != "" || !s.owner.IsAlive() {
		return false, "But it failed!"
	}
	for _, immune := range statusImmunities[name] {
		for _, t := range s.owner.Types {
			if t == immune {
				return false, fmt.Sprintf("It doesn't affect %s...", owner)
			}
		}
	}

	s.major = name
	s.sleepTurns = 0
	s.toxicCount = 0
	return true, statusInflictedMessage(owner, name)
}

// ClearStatus cures the major status.
func (s *Conditions) ClearStatus() {
	s.major = ""
	s.sleepTurns = 0
	s.toxicCount = 0
}

func (s *Conditions) HasVolatile(name string) bool { return s.volatiles[name] }

func (s *Conditions) AddVolatile(name string) {
	s.volatiles[name] = true
	if name == combat.VolatileTaunt {
		s.tauntTurns = TauntTurns
	}
}

func (s *Conditions) RemoveVolatile(name string) {
	delete(s.volatiles, name)
	if name == combat.VolatileTaunt {
		s.tauntTurns = 0
	}
}

func (s *Conditions) ClearVolatiles() {
	clear(s.volatiles)
	s.tauntTurns = 0
}

// EndOfTurn applies burn and poison damage and counts the taunt down.
func (s *Conditions) EndOfTurn() []string {
	var msgs []string
	c := s.owner
	if !c.IsAlive() {
		return nil
	}

	switch s.major {
	case combat.StatusBurn:
		c.TakeDamage(max(c.MaxHP/16, 1))
		msgs = append(msgs, fmt.Sprintf("%s was hurt by its burn!", c.Name))
	case combat.StatusPoison:
		c.TakeDamage(max(c.MaxHP/8, 1))
		msgs = append(msgs, fmt.Sprintf("%s was hurt by poison!", c.Name))
	case combat.StatusToxic:
		s.toxicCount++
		c.TakeDamage(max(c.MaxHP*s.toxicCount/16, 1))
		msgs = append(msgs, fmt.Sprintf("%s was hurt by poison!", c.Name))
	}

	if s.tauntTurns > 0 {
		s.tauntTurns--
		if s.tauntTurns == 0 {
			delete(s.volatiles, combat.VolatileTaunt)
			msgs = append(msgs, fmt.Sprintf("%s shook off the taunt!", c.Name))
		}
	}
	return msgs
}

func statusAdjective(status string) string {
	switch status {
	case combat.StatusBurn:
		return "burned"
	case combat.StatusParalysis:
		return "paralyzed"
	case combat.StatusPoison, combat.StatusToxic:
		return "poisoned"
	case combat.StatusSleep:
		return "asleep"
	case combat.StatusFreeze:
		return "frozen"
	default:
		return status
	}
}

func statusInflictedMessage(name, status string) string {
	switch status {
	case combat.StatusBurn:
		return fmt.Sprintf("%s was burned!", name)
	case combat.StatusParalysis:
		return fmt.Sprintf("%s is paralyzed! It may be unable to move!", name)
	case combat.StatusPoison:
		return fmt.Sprintf("%s was poisoned!", name)
	case combat.StatusToxic:
		return fmt.Sprintf("%s was badly poisoned!", name)
	case combat.StatusSleep:
		return fmt.Sprintf("%s fell asleep!", name)
	case combat.StatusFreeze:
		return fmt.Sprintf("%s was frozen solid!", name)
	default:
		return fmt.Sprintf("%s was afflicted with %s!", name, status)
	}
}

var _ combat.StatusManager = (*Conditions)(nil)
