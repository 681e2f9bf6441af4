package entity

import (
	"math/rand"
	"testing"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
)

func TestApplyStatusImmunities(t *testing.T) {
	tests := []struct {
		name   string
		types  []string
		status string
		want   bool
	}{
		{"fire cannot burn", []string{"fire"}, combat.StatusBurn, false},
		{"electric cannot be paralyzed", []string{"electric"}, combat.StatusParalysis, false},
		{"steel cannot be poisoned", []string{"steel", "flying"}, combat.StatusToxic, false},
		{"poison cannot be poisoned", []string{"grass", "poison"}, combat.StatusPoison, false},
		{"ice cannot freeze", []string{"ice"}, combat.StatusFreeze, false},
		{"water can burn", []string{"water"}, combat.StatusBurn, true},
		{"electric can sleep", []string{"electric"}, combat.StatusSleep, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPikachu(t)
			c.Types = tt.types
			ok, msg := c.Status().ApplyStatus(tt.status)
			if ok != tt.want {
				t.Errorf("ApplyStatus(%q) = %v (%q), want %v", tt.status, ok, msg, tt.want)
			}
			if msg == "" {
				t.Error("ApplyStatus() returned no narration")
			}
		})
	}
}

func TestOneMajorStatus(t *testing.T) {
	c := newPikachu(t)
	s := c.Status()

	if ok, msg := s.ApplyStatus(combat.StatusSleep); !ok || msg != "Pikachu fell asleep!" {
		t.Fatalf("ApplyStatus(slp) = %v, %q", ok, msg)
	}
	if ok, msg := s.ApplyStatus(combat.StatusSleep); ok || msg != "Pikachu is already asleep!" {
		t.Errorf("repeat sleep = %v, %q", ok, msg)
	}
	if ok, _ := s.ApplyStatus(combat.StatusBurn); ok {
		t.Error("second major status applied")
	}
	if s.Major() != combat.StatusSleep || !s.HasStatus(combat.StatusSleep) {
		t.Errorf("Major() = %q", s.Major())
	}

	s.ClearStatus()
	if s.Major() != "" || s.HasStatus(combat.StatusSleep) {
		t.Errorf("Major() after clear = %q", s.Major())
	}
}

func TestEndOfTurnDamage(t *testing.T) {
	tests := []struct {
		name   string
		status string
		turns  int
		wantHP int
	}{
		{"burn", combat.StatusBurn, 1, 104},
		{"poison", combat.StatusPoison, 1, 97},
		{"toxic escalates", combat.StatusToxic, 2, 91},
		{"sleep deals nothing", combat.StatusSleep, 2, 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPikachu(t)
			c.Types = []string{"normal"}
			c.Status().ApplyStatus(tt.status)
			for range tt.turns {
				c.Status().EndOfTurn()
			}
			if c.GetHP() != tt.wantHP {
				t.Errorf("HP = %d, want %d", c.GetHP(), tt.wantHP)
			}
		})
	}
}

func TestTauntWearsOff(t *testing.T) {
	c := newPikachu(t)
	s := c.Status()
	s.AddVolatile(combat.VolatileTaunt)

	for turn := 1; turn < TauntTurns; turn++ {
		if msgs := s.EndOfTurn(); len(msgs) != 0 {
			t.Fatalf("turn %d narrated %v", turn, msgs)
		}
		if !s.HasVolatile(combat.VolatileTaunt) {
			t.Fatalf("taunt gone after %d turns", turn)
		}
	}
	msgs := s.EndOfTurn()
	if s.HasVolatile(combat.VolatileTaunt) || len(msgs) != 1 || msgs[0] != "Pikachu shook off the taunt!" {
		t.Errorf("final EndOfTurn() = %v, taunt = %v", msgs, s.HasVolatile(combat.VolatileTaunt))
	}
}

func TestCanMove(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("healthy", func(t *testing.T) {
		c := newPikachu(t)
		if ok, msg := c.Status().CanMove(rng); !ok || msg != "" {
			t.Errorf("CanMove() = %v, %q", ok, msg)
		}
	})

	t.Run("flinch lasts one attempt", func(t *testing.T) {
		c := newPikachu(t)
		c.Status().AddVolatile(combat.VolatileFlinch)
		if ok, msg := c.Status().CanMove(rng); ok || msg != "Pikachu flinched and couldn't move!" {
			t.Errorf("CanMove() = %v, %q", ok, msg)
		}
		if ok, _ := c.Status().CanMove(rng); !ok {
			t.Error("flinch persisted")
		}
	})

	t.Run("sleep ends", func(t *testing.T) {
		c := newPikachu(t)
		c.Status().ApplyStatus(combat.StatusSleep)
		woke := false
		for range maxSleepTurns + 1 {
			ok, msg := c.Status().CanMove(rng)
			if ok {
				woke = msg == "Pikachu woke up!"
				break
			}
		}
		if !woke || c.Status().Major() != "" {
			t.Errorf("woke = %v, status = %q", woke, c.Status().Major())
		}
	})

	t.Run("paralysis sometimes stops", func(t *testing.T) {
		c := newPikachu(t)
		c.Types = []string{"normal"}
		c.Status().ApplyStatus(combat.StatusParalysis)
		stopped := 0
		for range 400 {
			if ok, _ := c.Status().CanMove(rng); !ok {
				stopped++
			}
		}
		if stopped < 50 || stopped > 150 {
			t.Errorf("stopped %d of 400 attempts, want about 100", stopped)
		}
	})

	t.Run("freeze thaws", func(t *testing.T) {
		c := newPikachu(t)
		c.Status().ApplyStatus(combat.StatusFreeze)
		for range 100 {
			if ok, _ := c.Status().CanMove(rng); ok {
				break
			}
		}
		if c.Status().Major() != "" {
			t.Error("never thawed in 100 attempts")
		}
	})
}

func TestClearVolatiles(t *testing.T) {
	c := newPikachu(t)
	s := c.Status()
	s.AddVolatile(combat.VolatileFocusEnergy)
	s.AddVolatile(combat.VolatileTaunt)

	s.RemoveVolatile(combat.VolatileFocusEnergy)
	if s.HasVolatile(combat.VolatileFocusEnergy) {
		t.Error("focus energy not removed")
	}
	s.ClearVolatiles()
	if s.HasVolatile(combat.VolatileTaunt) {
		t.Error("taunt survived ClearVolatiles")
	}
	if msgs := s.EndOfTurn(); len(msgs) != 0 {
		t.Errorf("EndOfTurn() after clear = %v", msgs)
	}
}
