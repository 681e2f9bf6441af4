package game

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/entity"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/rules"
)

// nullCanvas discards everything drawn.
type nullCanvas struct{}

func (nullCanvas) Clear() {}

func (nullCanvas) Show() {}

func (nullCanvas) SetContent(int, int, rune, tcell.Style) {}

func (nullCanvas) Size() (int, int) { return 80, 24 }

type recorder struct {
	summaries []combat.Summary
}

func (r *recorder) RecordBattle(_ context.Context, s combat.Summary) error {
	r.summaries = append(r.summaries, s)
	return nil
}

type fixture struct {
	engine   *combat.Engine
	moves    combat.MoveSource
	roster   *entity.Roster
	rng      *rand.Rand
	recorder *recorder
}

func newFixture(t *testing.T, seed int64) *fixture {
	t.Helper()
	collab, err := rules.Defaults(seed)
	if err != nil {
		t.Fatalf("rules.Defaults() error = %v", err)
	}
	rec := &recorder{}
	return &fixture{
		engine: combat.NewEngine(collab, combat.DefaultSettings(),
			combat.WithRand(rand.New(rand.NewSource(seed))),
			combat.WithRecorder(rec),
		),
		moves:    collab.Moves,
		roster:   entity.NewRoster(gamedata.MustLoadSpeciesRegistry(), gamedata.MustLoadMoveRegistry(), 50),
		rng:      rand.New(rand.NewSource(seed)),
		recorder: rec,
	}
}

func (f *fixture) setup(t *testing.T, cfg Config) *combat.Battle {
	t.Helper()
	b, err := Setup(context.Background(), f.engine, f.roster, f.rng, cfg)
	if err != nil {
		t.Fatalf("Setup(%s %s) error = %v", cfg.Type, cfg.Format, err)
	}
	return b
}

func (f *fixture) game(t *testing.T, b *combat.Battle) *Game {
	t.Helper()
	g, err := newGame(nullCanvas{}, f.engine, f.moves, b.ID, b.Trainer.ID)
	if err != nil {
		t.Fatalf("newGame() error = %v", err)
	}
	if err := g.advance(context.Background()); err != nil {
		t.Fatalf("advance() error = %v", err)
	}
	return g
}

func press(g *Game, r rune) {
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

// pickMove returns the key of the first move with PP left.
func pickMove(g *Game) rune {
	for i, m := range g.player.ActiveCombatant(g.slot).GetMoves() {
		if m.PP > 0 {
			return rune('1' + i)
		}
	}
	return '1'
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateCommand, "command"},
		{StateSwitch, "switch"},
		{StateForcedSwitch, "forced_switch"},
		{StateOver, "over"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestGamePlaysToTheEnd(t *testing.T) {
	for _, format := range []combat.Format{combat.FormatSingles, combat.FormatDoubles} {
		t.Run(string(format), func(t *testing.T) {
			f := newFixture(t, 7)
			cfg := DefaultConfig()
			cfg.Format = format
			b := f.setup(t, cfg)
			g := f.game(t, b)

			for i := 0; i < 2000 && g.State() != StateOver; i++ {
				g.render()
				if g.State() == StateForcedSwitch {
					press(g, rune('1'+g.player.Bench()[0]))
				} else {
					press(g, pickMove(g))
				}
				if g.err != nil {
					t.Fatalf("session error = %v", g.err)
				}
			}

			if g.State() != StateOver {
				t.Fatalf("state = %v after many key presses, want over", g.State())
			}
			if !b.Over {
				t.Fatalf("battle not over at turn %d", b.Turn)
			}
			switch b.Winner {
			case combat.WinnerTrainer, combat.WinnerOpponent, combat.WinnerDraw:
			default:
				t.Errorf("Winner = %q", b.Winner)
			}

			g.render()
			press(g, 'x')
			if g.running {
				t.Error("any key after the result should end the session")
			}
		})
	}
}

func TestGameQuit(t *testing.T) {
	f := newFixture(t, 1)
	g := f.game(t, f.setup(t, DefaultConfig()))

	press(g, 'q')
	if g.running {
		t.Error("q should stop the session")
	}
	if got := g.result(); got != "The battle was abandoned." {
		t.Errorf("result() = %q", got)
	}
}

func TestGameSwitchMenu(t *testing.T) {
	f := newFixture(t, 1)
	b := f.setup(t, DefaultConfig())
	g := f.game(t, b)

	press(g, 's')
	if g.State() != StateSwitch {
		t.Fatalf("state after s = %v, want switch", g.State())
	}
	press(g, 'b')
	if g.State() != StateCommand {
		t.Fatalf("state after b = %v, want command", g.State())
	}

	press(g, 's')
	g.handleKeyEvent(context.Background(), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if g.State() != StateCommand || !g.running {
		t.Fatalf("escape from the switch menu should go back, state %v running %v", g.State(), g.running)
	}

	// The active combatant cannot switch with itself.
	press(g, 's')
	press(g, '1')
	if g.notice == "" {
		t.Error("switching to the active combatant should be rejected")
	}
	if g.State() != StateSwitch {
		t.Errorf("state = %v, want switch after a rejected choice", g.State())
	}

	turn := b.Turn
	press(g, '2')
	if g.notice != "" {
		t.Fatalf("switch rejected: %s", g.notice)
	}
	if b.Turn != turn+1 {
		t.Errorf("Turn = %d, want %d after the switch resolved", b.Turn, turn+1)
	}
	if b.Trainer.Active[0] != 1 && !b.Over {
		t.Errorf("Active = %v, want party index 1 in play", b.Trainer.Active)
	}
}

func TestGameNoPP(t *testing.T) {
	f := newFixture(t, 1)
	b := f.setup(t, DefaultConfig())
	g := f.game(t, b)

	c := b.Trainer.ActiveCombatant(0).(*entity.Creature)
	c.Moves[0].PP = 0

	press(g, '1')
	if g.notice != "There's no PP left for this move!" {
		t.Errorf("notice = %q", g.notice)
	}
	if b.Turn != 1 {
		t.Errorf("Turn = %d, want 1", b.Turn)
	}
}

func TestGameFleesWildBattle(t *testing.T) {
	f := newFixture(t, 3)
	cfg := DefaultConfig()
	cfg.Type = combat.TypeWild
	b := f.setup(t, cfg)
	g := f.game(t, b)

	press(g, 'f')
	if g.State() != StateOver {
		t.Fatalf("state = %v, want over", g.State())
	}
	if !b.Fled {
		t.Error("battle should be fled")
	}
	if got := g.result(); got != "Got away safely!" {
		t.Errorf("result() = %q", got)
	}
}

func TestGameCannotFleeTrainer(t *testing.T) {
	f := newFixture(t, 3)
	b := f.setup(t, DefaultConfig())
	g := f.game(t, b)

	press(g, 'f')
	if b.Turn != 1 || g.State() != StateCommand {
		t.Errorf("f in a trainer battle should do nothing, turn %d state %v", b.Turn, g.State())
	}
}

func TestNewGameRejectsAI(t *testing.T) {
	f := newFixture(t, 1)
	b := f.setup(t, DefaultConfig())

	if _, err := newGame(nullCanvas{}, f.engine, f.moves, b.ID, combat.NPCID); err == nil {
		t.Error("newGame() for an AI battler should fail")
	}
	if _, err := newGame(nullCanvas{}, f.engine, f.moves, b.ID, 42); !errors.Is(err, combat.ErrBattlerNotFound) {
		t.Errorf("newGame() unknown battler error = %v, want ErrBattlerNotFound", err)
	}
	if _, err := newGame(nullCanvas{}, f.engine, f.moves, "missing", 1); !errors.Is(err, combat.ErrBattleNotFound) {
		t.Errorf("newGame() unknown battle error = %v, want ErrBattleNotFound", err)
	}
}

func TestDigit(t *testing.T) {
	tests := []struct {
		r    rune
		want int
		ok   bool
	}{
		{'1', 0, true},
		{'9', 8, true},
		{'0', 0, false},
		{'a', 0, false},
	}

	for _, tt := range tests {
		got, ok := digit(tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("digit(%q) = %d, %v; want %d, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}
