package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/entity"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// Layout.
const (
	hpBarWidth = 20
	indent     = 2
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader  = styleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleDim     = styleDefault.Foreground(tcell.ColorGray)
	styleFainted = styleDefault.Foreground(tcell.ColorDarkGray)
)

// View is what the player sees besides the battle itself.
type View struct {
	Notice string // One-off feedback such as a rejected choice
	Prompt string
	Menu   []string
}

// Renderer handles drawing a battle to the screen.
type Renderer struct {
	canvas Canvas
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Render draws the field, both sides, the log tail and the menu.
func (r *Renderer) Render(b *combat.Battle, view View) {
	r.canvas.Clear()
	_, height := r.canvas.Size()

	y := 0
	r.text(0, y, fmt.Sprintf("Turn %d - %s %s battle", b.Turn, b.Format, b.Type), styleHeader)
	y++
	if field := FieldSummary(&b.Field); field != "" {
		r.text(0, y, field, styleDim)
		y++
	}
	y++

	y = r.renderSide(b, combat.SideOpponent, y)
	y++
	y = r.renderSide(b, combat.SideTrainer, y)
	y++

	// Menu takes the bottom lines, the log gets what is left.
	menuHeight := len(view.Menu)
	if view.Prompt != "" {
		menuHeight++
	}
	if view.Notice != "" {
		menuHeight++
	}
	logRoom := height - y - menuHeight - 1
	for _, line := range tail(b.Log, logRoom) {
		r.text(0, y, line, styleDefault)
		y++
	}

	y = max(y+1, height-menuHeight)
	if view.Notice != "" {
		r.text(0, y, view.Notice, styleDefault.Foreground(tcell.ColorRed))
		y++
	}
	if view.Prompt != "" {
		r.text(0, y, view.Prompt, styleHeader)
		y++
	}
	for _, item := range view.Menu {
		r.text(indent, y, item, styleDefault)
		y++
	}

	r.canvas.Show()
}

func (r *Renderer) renderSide(b *combat.Battle, side combat.Side, y int) int {
	for _, battler := range b.Battlers() {
		if battler.Side != side {
			continue
		}
		r.text(0, y, battler.Name, styleHeader)
		y++
		for slot := range battler.Active {
			if c := battler.ActiveCombatant(slot); c != nil {
				r.renderCombatant(c, indent, y)
				y++
			}
		}
	}
	return y
}

// renderCombatant draws one line: name, level, HP bar, HP and status.
func (r *Renderer) renderCombatant(c combat.Combatant, x, y int) {
	if !c.IsAlive() {
		r.text(x, y, fmt.Sprintf("%s Lv%d  fainted", c.GetName(), c.GetLevel()), styleFainted)
		return
	}

	x = r.text(x, y, c.GetName(), styleDefault.Foreground(CombatantColor(c)).Bold(true))
	x = r.text(x, y, fmt.Sprintf(" Lv%d ", c.GetLevel()), styleDim)

	filled := HPBarFill(c.GetHP(), c.GetMaxHP(), hpBarWidth)
	barStyle := styleDefault.Foreground(HPColor(c.GetHP(), c.GetMaxHP()))
	x = r.text(x, y, "[", styleDim)
	x = r.text(x, y, strings.Repeat("=", filled), barStyle)
	x = r.text(x, y, strings.Repeat(" ", hpBarWidth-filled), styleDim)
	x = r.text(x, y, "]", styleDim)
	x = r.text(x, y, fmt.Sprintf(" %d/%d", c.GetHP(), c.GetMaxHP()), styleDefault)

	if major := c.Status().Major(); major != "" {
		r.text(x+1, y, strings.ToUpper(major), styleDefault.Foreground(tcell.ColorOrange))
	}
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.text(0, y, msg, styleDefault)
	r.canvas.Show()
}

// text draws s starting at x and returns the column after it. Text past
// the right edge is cut.
func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	width, _ := r.canvas.Size()
	for _, ch := range s {
		if x >= width {
			break
		}
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
	return x
}

// CombatantColor is the species color of a creature, or the color of its
// first type for other combatants.
func CombatantColor(c combat.Combatant) tcell.Color {
	if cr, ok := c.(*entity.Creature); ok && cr.Color != tcell.ColorDefault {
		return cr.Color
	}
	if types := c.GetTypes(); len(types) > 0 {
		return gamedata.TypeColor(types[0])
	}
	return tcell.ColorWhite
}

// HPBarFill returns how many of width cells represent hp. A living
// combatant always shows at least one.
func HPBarFill(hp, maxHP, width int) int {
	if hp <= 0 || maxHP <= 0 {
		return 0
	}
	return min(max(hp*width/maxHP, 1), width)
}

// HPColor is green above half HP, yellow above a fifth and red below.
func HPColor(hp, maxHP int) tcell.Color {
	switch {
	case maxHP <= 0 || hp*5 <= maxHP:
		return tcell.ColorRed
	case hp*2 <= maxHP:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}

// FieldSummary lists active field conditions with their remaining turns.
func FieldSummary(f *combat.Field) string {
	var parts []string
	if f.Weather != "" {
		parts = append(parts, fmt.Sprintf("%s (%d)", gamedata.DisplayName(f.Weather), f.WeatherTurns))
	}
	if f.Terrain != "" {
		parts = append(parts, fmt.Sprintf("%s Terrain (%d)", gamedata.DisplayName(f.Terrain), f.TerrainTurns))
	}
	if f.TrickRoom() {
		parts = append(parts, fmt.Sprintf("Trick Room (%d)", f.TrickRoomTurns))
	}
	return strings.Join(parts, " | ")
}

// MoveMenu lists the moves of c as numbered menu entries.
func MoveMenu(c combat.Combatant, moves combat.MoveSource) []string {
	var menu []string
	for i, slot := range c.GetMoves() {
		name, typ := gamedata.DisplayName(slot.MoveID), ""
		if m, ok := moves.Move(slot.MoveID); ok {
			name, typ = m.DisplayName(), m.Type
		}
		menu = append(menu, fmt.Sprintf("%d) %-14s %-9s PP %d/%d", i+1, name, typ, slot.PP, slot.MaxPP))
	}
	return menu
}

// SwitchMenu lists the bench of battler as numbered menu entries. Entries
// are numbered by party position.
func SwitchMenu(battler *combat.Battler) []string {
	var menu []string
	for _, idx := range battler.Bench() {
		c := battler.Party[idx]
		menu = append(menu, fmt.Sprintf("%d) %s  %d/%d", idx+1, c.GetName(), c.GetHP(), c.GetMaxHP()))
	}
	return menu
}

func tail(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		return lines[len(lines)-n:]
	}
	return lines
}
