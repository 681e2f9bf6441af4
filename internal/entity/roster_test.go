package entity

import (
	"errors"
	"math/rand"
	"testing"
)

func TestRosterParty(t *testing.T) {
	r := NewRoster(testSpecies, testMoves, 0)

	party, err := r.Party("pikachu", "gengar")
	if err != nil {
		t.Fatalf("Party() error = %v", err)
	}
	if len(party) != 2 || party[0].GetName() != "Pikachu" || party[1].GetName() != "Gengar" {
		t.Errorf("party = %v", party)
	}
	if party[0].GetLevel() != DefaultLevel {
		t.Errorf("level = %d, want %d", party[0].GetLevel(), DefaultLevel)
	}

	if _, err := r.Party("pikachu", "agumon"); !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("error = %v, want ErrUnknownSpecies", err)
	}
}

func TestRosterRandomParty(t *testing.T) {
	r := NewRoster(testSpecies, testMoves, 30)
	rng := rand.New(rand.NewSource(7))

	party, err := r.RandomParty(rng, 3)
	if err != nil {
		t.Fatalf("RandomParty() error = %v", err)
	}
	seen := map[string]bool{}
	for _, c := range party {
		if seen[c.GetSpecies()] {
			t.Errorf("duplicate species %s", c.GetSpecies())
		}
		seen[c.GetSpecies()] = true
		if c.GetLevel() != 30 {
			t.Errorf("level = %d, want 30", c.GetLevel())
		}
	}
	if len(party) != 3 {
		t.Errorf("len = %d, want 3", len(party))
	}

	if _, err := r.RandomParty(rng, 0); err == nil {
		t.Error("empty party accepted")
	}
	if _, err := r.RandomParty(rng, testSpecies.Count()+1); err == nil {
		t.Error("oversized party accepted")
	}
}

func TestRosterWild(t *testing.T) {
	r := NewRoster(testSpecies, testMoves, DefaultLevel)
	rng := rand.New(rand.NewSource(3))

	for range 200 {
		c, err := r.Wild(rng)
		if err != nil {
			t.Fatalf("Wild() error = %v", err)
		}
		if c.GetSpecies() == "pawmot" {
			t.Fatal("species with zero spawn weight appeared in the wild")
		}
	}
}
