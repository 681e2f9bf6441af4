package game

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/telemetry"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/ui"
)

// Game is an interactive terminal session in which one human battler
// plays a running battle. Every other human battler is played by the AI.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *combat.Engine
	moves    combat.MoveSource
	battle   *combat.Battle
	player   *combat.Battler

	state      State
	slot       int          // Active slot being commanded
	turn       int          // Turn the registered slots belong to
	registered map[int]bool // Slots with an action this turn
	notice     string
	caught     bool
	running    bool
	err        error
}

// New creates a session on a new terminal screen.
func New(e *combat.Engine, moves combat.MoveSource, battleID string, playerID int64) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(screen, e, moves, battleID, playerID)
	if err != nil {
		screen.Close()
		return nil, err
	}
	g.screen = screen
	return g, nil
}

func newGame(canvas ui.Canvas, e *combat.Engine, moves combat.MoveSource, battleID string, playerID int64) (*Game, error) {
	b, err := e.GetBattle(battleID)
	if err != nil {
		return nil, err
	}
	player, ok := b.Battler(playerID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", combat.ErrBattlerNotFound, playerID)
	}
	if player.IsAI {
		return nil, fmt.Errorf("battler %d is AI controlled", playerID)
	}

	return &Game{
		renderer:   ui.NewRenderer(canvas),
		engine:     e,
		moves:      moves,
		battle:     b,
		player:     player,
		state:      StateCommand,
		turn:       b.Turn,
		registered: make(map[int]bool),
		running:    true,
	}, nil
}

// Run executes the session loop until the player quits or acknowledges
// the result, then ends the battle.
func (g *Game) Run(ctx context.Context) (*combat.Summary, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.session")
	defer span.End()
	span.SetAttributes(telemetry.BattleAttributes(g.battle.ID, string(g.battle.Type), string(g.battle.Format))...)
	span.SetAttributes(attribute.Int64("player_id", g.player.ID))

	g.fail(g.advance(ctx))

	for g.running {
		g.render()
		g.handleInput(ctx)
	}
	if g.err != nil {
		return nil, g.err
	}

	span.SetAttributes(
		attribute.String("result", g.result()),
		attribute.Bool("caught", g.caught),
	)
	return g.engine.EndBattle(ctx, g.battle.ID)
}

// advance moves the battle forward until the player has to choose
// something or the battle is over.
func (g *Game) advance(ctx context.Context) error {
	b := g.battle
	for !b.Over && !g.caught && b.Turn <= DefaultTurnLimit {
		if err := autoSwitch(ctx, g.engine, b, g.player.ID); err != nil {
			return err
		}
		if b.Over {
			break
		}
		if switchWaiter(b) == g.player {
			g.state = StateForcedSwitch
			return nil
		}
		if b.Turn != g.turn {
			// A volt switch can finish the turn outside ProcessTurn.
			clear(g.registered)
			g.turn = b.Turn
		}
		if slot, ok := g.nextSlot(); ok {
			g.slot = slot
			g.state = StateCommand
			return nil
		}

		if err := autoRegister(ctx, g.engine, b, g.player.ID); err != nil {
			return err
		}
		if _, err := g.engine.ProcessTurn(ctx, b.ID); err != nil {
			return err
		}
	}
	g.state = StateOver
	return nil
}

// nextSlot is the first living active slot of the player without an
// action this turn.
func (g *Game) nextSlot() (int, bool) {
	for slot := range g.player.Active {
		if g.registered[slot] {
			continue
		}
		if c := g.player.ActiveCombatant(slot); c != nil && c.IsAlive() {
			return slot, true
		}
	}
	return 0, false
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if g.state == StateOver {
		g.running = false
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.running = false
	case tcell.KeyEscape:
		if g.state == StateSwitch {
			g.state = StateCommand
			return
		}
		g.running = false
	case tcell.KeyRune:
		g.handleRune(ctx, ev.Rune())
	}
}

func (g *Game) handleRune(ctx context.Context, r rune) {
	if r == 'q' || r == 'Q' {
		g.running = false
		return
	}
	g.notice = ""
	choice, isDigit := digit(r)

	switch g.state {
	case StateCommand:
		switch {
		case isDigit:
			g.chooseMove(ctx, choice)
		case r == 's':
			if !g.player.CanSwitch || len(g.player.Bench()) == 0 {
				g.notice = "There is no one to switch to!"
				return
			}
			g.state = StateSwitch
		case r == 'f' && g.player.CanFlee:
			g.register(ctx, combat.FleeAction())
		case r == 'c' && g.battle.Phase() == combat.PhaseDazed:
			g.caught = true
			g.state = StateOver
		}
	case StateSwitch:
		switch {
		case r == 'b':
			g.state = StateCommand
		case isDigit:
			g.register(ctx, combat.SwitchAction(g.slot, choice))
		}
	case StateForcedSwitch:
		if !isDigit {
			return
		}
		if _, err := g.engine.ForceSwitch(ctx, g.battle.ID, g.player.ID, choice); err != nil {
			g.notice = err.Error()
			return
		}
		g.fail(g.advance(ctx))
	}
}

// chooseMove registers the i-th move of the commanded combatant. With no
// PP left anywhere the combatant struggles.
func (g *Game) chooseMove(ctx context.Context, i int) {
	c := g.player.ActiveCombatant(g.slot)
	moves := c.GetMoves()
	if i < 0 || i >= len(moves) {
		return
	}

	outOfPP := true
	for _, m := range moves {
		if m.PP > 0 {
			outOfPP = false
			break
		}
	}
	switch {
	case outOfPP:
		g.register(ctx, combat.MoveAction(g.slot, gamedata.StruggleID))
	case moves[i].PP <= 0:
		g.notice = "There's no PP left for this move!"
	default:
		g.register(ctx, combat.MoveAction(g.slot, moves[i].MoveID))
	}
}

func (g *Game) register(ctx context.Context, a combat.Action) {
	if _, err := g.engine.RegisterAction(ctx, g.battle.ID, g.player.ID, a); err != nil {
		g.notice = err.Error()
		return
	}
	g.registered[a.Slot] = true
	g.fail(g.advance(ctx))
}

// fail stops the session on an engine error.
func (g *Game) fail(err error) {
	if err != nil {
		g.err = err
		g.running = false
	}
}

func (g *Game) render() {
	view := ui.View{Notice: g.notice}

	switch g.state {
	case StateCommand:
		c := g.player.ActiveCombatant(g.slot)
		view.Prompt = fmt.Sprintf("What will %s do?", c.GetName())
		view.Menu = ui.MoveMenu(c, g.moves)
		if g.player.CanSwitch && len(g.player.Bench()) > 0 {
			view.Menu = append(view.Menu, "s) Switch")
		}
		if g.player.CanFlee {
			view.Menu = append(view.Menu, "f) Run")
		}
		if g.battle.Phase() == combat.PhaseDazed {
			view.Menu = append(view.Menu, "c) Catch")
		}
		view.Menu = append(view.Menu, "q) Quit")
	case StateSwitch:
		view.Prompt = "Switch in which creature?"
		view.Menu = append(ui.SwitchMenu(g.player), "b) Back")
	case StateForcedSwitch:
		view.Prompt = "Send out which creature?"
		view.Menu = ui.SwitchMenu(g.player)
	case StateOver:
		view.Prompt = g.result()
		view.Menu = []string{"Press any key to exit."}
	}

	g.renderer.Render(g.battle, view)
}

// result describes the outcome from the player's side.
func (g *Game) result() string {
	b := g.battle
	switch {
	case g.caught:
		return fmt.Sprintf("You caught %s!", b.Opponent.ActiveCombatant(0).GetName())
	case b.Fled:
		return "Got away safely!"
	case !b.Over:
		return "The battle was abandoned."
	case b.Winner == combat.WinnerDraw:
		return "The battle ended in a draw."
	case b.Winner == g.player.Side.String():
		return "You won!"
	default:
		return "You lost..."
	}
}

// State returns what the session is waiting for.
func (g *Game) State() State {
	return g.state
}

// Close cleans up game resources. It is safe to call more than once.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}

// digit maps '1'..'9' to the zero-based choices 0..8.
func digit(r rune) (int, bool) {
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}
