package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/entity"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
)

// fakeCanvas records drawn runes in a grid.
type fakeCanvas struct {
	width, height int
	cells         [][]rune
	styles        [][]tcell.Style
	shown         int
}

func newFakeCanvas(width, height int) *fakeCanvas {
	c := &fakeCanvas{width: width, height: height}
	c.Clear()
	return c
}

func (c *fakeCanvas) Clear() {
	c.cells = make([][]rune, c.height)
	c.styles = make([][]tcell.Style, c.height)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", c.width))
		c.styles[y] = make([]tcell.Style, c.width)
	}
}

func (c *fakeCanvas) Show() { c.shown++ }

func (c *fakeCanvas) SetContent(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = r
	c.styles[y][x] = style
}

func (c *fakeCanvas) Size() (int, int) { return c.width, c.height }

func (c *fakeCanvas) row(y int) string {
	return strings.TrimRight(string(c.cells[y]), " ")
}

// find returns the first row containing s, or -1.
func (c *fakeCanvas) find(s string) int {
	for y := range c.cells {
		if strings.Contains(c.row(y), s) {
			return y
		}
	}
	return -1
}

func testBattle(t *testing.T) (*combat.Battle, *entity.Creature, *entity.Creature) {
	t.Helper()
	roster := entity.NewRoster(gamedata.MustLoadSpeciesRegistry(), gamedata.MustLoadMoveRegistry(), 50)
	pikachu, err := roster.Creature("pikachu")
	if err != nil {
		t.Fatalf("Creature(pikachu) error = %v", err)
	}
	gengar, err := roster.Creature("gengar")
	if err != nil {
		t.Fatalf("Creature(gengar) error = %v", err)
	}

	trainer := combat.NewBattler(1, "Red", []combat.Combatant{pikachu}, 1)
	rival := combat.NewBattler(combat.NPCID, "Blue", []combat.Combatant{gengar}, 1)
	rival.Side = combat.SideOpponent

	b := &combat.Battle{
		Type:     combat.TypeTrainer,
		Format:   combat.FormatSingles,
		Turn:     3,
		Trainer:  trainer,
		Opponent: rival,
		Log:      []string{"Pikachu used Thunderbolt!", "It's super effective!"},
	}
	return b, pikachu, gengar
}

func TestRender(t *testing.T) {
	b, pikachu, gengar := testBattle(t)
	gengar.TakeDamage(gengar.MaxHP - 10)
	pikachu.Conditions().ApplyStatus(combat.StatusBurn)

	canvas := newFakeCanvas(80, 24)
	NewRenderer(canvas).Render(b, View{
		Prompt: "What will Pikachu do?",
		Menu:   []string{"1) Thunderbolt", "2) Volt Switch"},
	})

	if canvas.shown != 1 {
		t.Errorf("Show called %d times, want 1", canvas.shown)
	}
	if got := canvas.row(0); got != "Turn 3 - singles trainer battle" {
		t.Errorf("header = %q", got)
	}

	blue := canvas.find("Blue")
	red := canvas.find("Red")
	if blue < 0 || red < 0 || blue > red {
		t.Fatalf("opponent row %d, trainer row %d; want opponent drawn first", blue, red)
	}

	gengarRow := canvas.row(blue + 1)
	if !strings.Contains(gengarRow, "Gengar Lv50") || !strings.Contains(gengarRow, "10/") {
		t.Errorf("gengar row = %q", gengarRow)
	}
	pikachuRow := canvas.row(red + 1)
	if !strings.Contains(pikachuRow, "110/110") || !strings.HasSuffix(pikachuRow, "BRN") {
		t.Errorf("pikachu row = %q", pikachuRow)
	}

	if canvas.find("It's super effective!") < 0 {
		t.Error("log tail not drawn")
	}
	if got := canvas.find("What will Pikachu do?"); got != 21 {
		t.Errorf("prompt row = %d, want 21", got)
	}
	if got := canvas.row(23); got != "  2) Volt Switch" {
		t.Errorf("last menu row = %q", got)
	}
}

func TestRenderFainted(t *testing.T) {
	b, _, gengar := testBattle(t)
	gengar.TakeDamage(gengar.MaxHP)

	canvas := newFakeCanvas(80, 24)
	NewRenderer(canvas).Render(b, View{})

	if canvas.find("Gengar Lv50  fainted") < 0 {
		t.Error("fainted combatant not marked")
	}
}

func TestRenderCutsLongLines(t *testing.T) {
	b, _, _ := testBattle(t)
	b.Log = []string{strings.Repeat("x", 100)}

	canvas := newFakeCanvas(40, 24)
	NewRenderer(canvas).Render(b, View{})

	y := canvas.find("xxxx")
	if y < 0 {
		t.Fatal("log line not drawn")
	}
	if got := len(canvas.row(y)); got != 40 {
		t.Errorf("log line width = %d, want 40", got)
	}
}

func TestRenderMessage(t *testing.T) {
	canvas := newFakeCanvas(40, 5)
	NewRenderer(canvas).RenderMessage("Got away safely!", 4)

	if got := canvas.row(4); got != "Got away safely!" {
		t.Errorf("row 4 = %q", got)
	}
}

func TestHPBarFill(t *testing.T) {
	tests := []struct {
		hp, maxHP int
		want      int
	}{
		{100, 100, 20},
		{50, 100, 10},
		{1, 100, 1},
		{0, 100, 0},
		{5, 0, 0},
		{120, 100, 20},
	}

	for _, tt := range tests {
		if got := HPBarFill(tt.hp, tt.maxHP, 20); got != tt.want {
			t.Errorf("HPBarFill(%d, %d, 20) = %d, want %d", tt.hp, tt.maxHP, got, tt.want)
		}
	}
}

func TestHPColor(t *testing.T) {
	tests := []struct {
		hp   int
		want tcell.Color
	}{
		{100, tcell.ColorGreen},
		{51, tcell.ColorGreen},
		{50, tcell.ColorYellow},
		{21, tcell.ColorYellow},
		{20, tcell.ColorRed},
		{0, tcell.ColorRed},
	}

	for _, tt := range tests {
		if got := HPColor(tt.hp, 100); got != tt.want {
			t.Errorf("HPColor(%d, 100) = %v, want %v", tt.hp, got, tt.want)
		}
	}
}

func TestFieldSummary(t *testing.T) {
	f := combat.Field{
		Weather:        combat.WeatherRain,
		WeatherTurns:   3,
		Terrain:        combat.TerrainElectric,
		TerrainTurns:   2,
		TrickRoomTurns: 4,
	}

	want := "Rain (3) | Electric Terrain (2) | Trick Room (4)"
	if got := FieldSummary(&f); got != want {
		t.Errorf("FieldSummary() = %q, want %q", got, want)
	}
	if got := FieldSummary(&combat.Field{}); got != "" {
		t.Errorf("FieldSummary(empty) = %q, want empty", got)
	}
}

func TestCombatantColor(t *testing.T) {
	_, pikachu, _ := testBattle(t)

	want, _ := gamedata.ParseHexColor("#F7D02C")
	if got := CombatantColor(pikachu); got != want {
		t.Errorf("CombatantColor(pikachu) = %v, want %v", got, want)
	}

	pikachu.Color = tcell.ColorDefault
	if got := CombatantColor(pikachu); got != gamedata.TypeColor("electric") {
		t.Errorf("CombatantColor without species color = %v, want electric type color", got)
	}
}

func TestMenus(t *testing.T) {
	b, pikachu, _ := testBattle(t)
	pikachu.UsePP("thunderbolt")

	menu := MoveMenu(pikachu, gamedata.MustLoadMoveRegistry())
	if len(menu) != 4 {
		t.Fatalf("MoveMenu() has %d entries, want 4", len(menu))
	}
	if !strings.HasPrefix(menu[0], "1) Thunderbolt") || !strings.HasSuffix(menu[0], "PP 14/15") {
		t.Errorf("MoveMenu()[0] = %q", menu[0])
	}

	if got := SwitchMenu(b.Trainer); len(got) != 0 {
		t.Errorf("SwitchMenu() with empty bench = %v", got)
	}
}
