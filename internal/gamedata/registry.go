package gamedata

import (
	"errors"
	"math/rand"
)

// =============================================================================
// MoveRegistry
// =============================================================================

// MoveRegistry holds loaded move definitions and provides lookup utilities.
type MoveRegistry struct {
	moves map[string]*MoveDef
	all   []MoveDef
}

// NewMoveRegistry creates a registry from loaded move definitions.
func NewMoveRegistry(moves []MoveDef) *MoveRegistry {
	registry := &MoveRegistry{
		moves: make(map[string]*MoveDef, len(moves)),
		all:   moves,
	}
	for i := range moves {
		registry.moves[moves[i].ID] = &moves[i]
	}
	return registry
}

// LoadMoveRegistry loads and creates a registry from the embedded moves.json.
func LoadMoveRegistry() (*MoveRegistry, error) {
	moves, err := LoadMoves()
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, errors.New("no moves loaded from moves.json")
	}
	return NewMoveRegistry(moves), nil
}

// MustLoadMoveRegistry loads a registry, panicking on error.
func MustLoadMoveRegistry() *MoveRegistry {
	registry, err := LoadMoveRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Move returns the move definition with the given id.
func (r *MoveRegistry) Move(id string) (*MoveDef, bool) {
	m, ok := r.moves[id]
	return m, ok
}

// GetByID returns the move definition with the given ID, or nil if not found.
func (r *MoveRegistry) GetByID(id string) *MoveDef {
	return r.moves[id]
}

// All returns all move definitions.
func (r *MoveRegistry) All() []MoveDef {
	return r.all
}

// Count returns the number of moves in the registry.
func (r *MoveRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// SpeciesRegistry
// =============================================================================

// SpeciesRegistry holds loaded species and provides wild spawning.
type SpeciesRegistry struct {
	species     []SpeciesDef
	totalWeight int
}

// NewSpeciesRegistry creates a registry from loaded species definitions.
func NewSpeciesRegistry(species []SpeciesDef) *SpeciesRegistry {
	totalWeight := 0
	for _, s := range species {
		totalWeight += s.SpawnWeight
	}
	return &SpeciesRegistry{
		species:     species,
		totalWeight: totalWeight,
	}
}

// LoadSpeciesRegistry loads and creates a registry from the embedded species.json.
func LoadSpeciesRegistry() (*SpeciesRegistry, error) {
	species, err := LoadSpecies()
	if err != nil {
		return nil, err
	}
	if len(species) == 0 {
		return nil, errors.New("no species loaded from species.json")
	}
	return NewSpeciesRegistry(species), nil
}

// MustLoadSpeciesRegistry loads a registry, panicking on error.
func MustLoadSpeciesRegistry() *SpeciesRegistry {
	registry, err := LoadSpeciesRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a wild species using weighted probability.
// Species with higher spawnWeight are more likely to be selected.
func (r *SpeciesRegistry) SpawnRandom(rng *rand.Rand) *SpeciesDef {
	if r.totalWeight <= 0 || len(r.species) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.species {
		cumulative += r.species[i].SpawnWeight
		if roll < cumulative {
			return &r.species[i]
		}
	}

	return &r.species[0]
}

// GetByID returns the species definition with the given ID, or nil if not found.
func (r *SpeciesRegistry) GetByID(id string) *SpeciesDef {
	for i := range r.species {
		if r.species[i].ID == id {
			return &r.species[i]
		}
	}
	return nil
}

// All returns all species definitions.
func (r *SpeciesRegistry) All() []SpeciesDef {
	return r.species
}

// Count returns the number of species in the registry.
func (r *SpeciesRegistry) Count() int {
	return len(r.species)
}

// =============================================================================
// ItemRegistry
// =============================================================================

// ItemRegistry holds loaded item definitions.
type ItemRegistry struct {
	items map[string]*ItemDef
}

// NewItemRegistry creates a registry from loaded item definitions.
func NewItemRegistry(items []ItemDef) *ItemRegistry {
	registry := &ItemRegistry{items: make(map[string]*ItemDef, len(items))}
	for i := range items {
		registry.items[items[i].ID] = &items[i]
	}
	return registry
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, err
	}
	return NewItemRegistry(items), nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// =============================================================================
// RulesetRegistry
// =============================================================================

// RulesetRegistry holds loaded ruleset definitions.
type RulesetRegistry struct {
	rulesets map[string]*RulesetDef
}

// NewRulesetRegistry creates a registry from loaded ruleset definitions.
func NewRulesetRegistry(rulesets []RulesetDef) *RulesetRegistry {
	registry := &RulesetRegistry{rulesets: make(map[string]*RulesetDef, len(rulesets))}
	for i := range rulesets {
		registry.rulesets[rulesets[i].ID] = &rulesets[i]
	}
	return registry
}

// LoadRulesetRegistry loads and creates a registry from the embedded rulesets.json.
func LoadRulesetRegistry() (*RulesetRegistry, error) {
	rulesets, err := LoadRulesets()
	if err != nil {
		return nil, err
	}
	return NewRulesetRegistry(rulesets), nil
}

// MustLoadRulesetRegistry loads a registry, panicking on error.
func MustLoadRulesetRegistry() *RulesetRegistry {
	registry, err := LoadRulesetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the ruleset definition with the given ID, or nil if not found.
func (r *RulesetRegistry) GetByID(id string) *RulesetDef {
	return r.rulesets[id]
}
