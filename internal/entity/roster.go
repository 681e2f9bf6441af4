package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samber/lo"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// ErrUnknownSpecies is returned for a species id missing from the data.
var ErrUnknownSpecies = errors.New("unknown species")

// Roster builds creatures, parties and wild encounters from game data.
type Roster struct {
	species *gamedata.SpeciesRegistry
	moves   *gamedata.MoveRegistry
	level   int
}

// NewRoster creates a roster that builds creatures at the given level.
func NewRoster(species *gamedata.SpeciesRegistry, moves *gamedata.MoveRegistry, level int) *Roster {
	if level <= 0 {
		level = DefaultLevel
	}
	return &Roster{species: species, moves: moves, level: level}
}

// Creature builds one creature of the given species.
func (r *Roster) Creature(speciesID string) (*Creature, error) {
	def := r.species.GetByID(speciesID)
	if def == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpecies, speciesID)
	}
	return NewCreature(def, r.moves, r.level)
}

// Party builds a party in the order given.
func (r *Roster) Party(speciesIDs ...string) ([]combat.Combatant, error) {
	party := make([]combat.Combatant, 0, len(speciesIDs))
	for _, id := range speciesIDs {
		c, err := r.Creature(id)
		if err != nil {
			return nil, err
		}
		party = append(party, c)
	}
	return party, nil
}

// RandomParty builds a party of distinct species drawn with rng.
func (r *Roster) RandomParty(rng *rand.Rand, size int) ([]combat.Combatant, error) {
	all := r.species.All()
	if size <= 0 || size > len(all) {
		return nil, fmt.Errorf("party size %d out of range [1, %d]", size, len(all))
	}
	ids := lo.Map(rng.Perm(len(all))[:size], func(i int, _ int) string {
		return all[i].ID
	})
	return r.Party(ids...)
}

// Wild rolls a wild encounter, weighted by species spawn weight.
func (r *Roster) Wild(rng *rand.Rand) (*Creature, error) {
	def := r.species.SpawnRandom(rng)
	if def == nil {
		return nil, errors.New("no species can appear in the wild")
	}
	return NewCreature(def, r.moves, r.level)
}
