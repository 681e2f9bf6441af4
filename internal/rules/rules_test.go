package rules

import (
	"math/rand"
	"testing"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/entity"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

var (
	testMoves    = gamedata.MustLoadMoveRegistry()
	testChart    = gamedata.MustLoadTypeChart()
	testItems    = gamedata.MustLoadItemRegistry()
	testRulesets = gamedata.MustLoadRulesetRegistry()
	testRoster   = entity.NewRoster(gamedata.MustLoadSpeciesRegistry(), testMoves, entity.DefaultLevel)
)

// fixedSource always yields the same value, pinning crit and damage rolls.
type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }

func (fixedSource) Seed(int64) {}

var (
	noCrit     = fixedSource(1 << 62) // Float64 0.5, Intn(16) 0
	alwaysCrit = fixedSource(0)
)

func mon(t *testing.T, species string) *entity.Creature {
	t.Helper()
	c, err := testRoster.Creature(species)
	if err != nil {
		t.Fatalf("Creature(%q) error = %v", species, err)
	}
	return c
}

func move(t *testing.T, id string) *gamedata.MoveDef {
	t.Helper()
	m, ok := testMoves.Move(id)
	if !ok {
		t.Fatalf("unknown move %q", id)
	}
	return m
}

func newTestCalculator(src rand.Source) *Calculator {
	return NewCalculator(testChart, testItems, rand.New(src))
}
