package gamedata

import (
	"math/rand"
	"testing"
)

func TestLoadMoves(t *testing.T) {
	moves, err := LoadMoves()
	if err != nil {
		t.Fatalf("Failed to load moves: %v", err)
	}

	if len(moves) == 0 {
		t.Fatal("Expected moves, got none")
	}

	expectedIDs := map[string]bool{
		StruggleID:         false,
		"volt-switch":      false,
		"protect":          false,
		"revival-blessing": false,
		"stealth-rock":     false,
		"trick-room":       false,
	}
	for _, m := range moves {
		if _, ok := expectedIDs[m.ID]; ok {
			expectedIDs[m.ID] = true
		}
	}

	for id, found := range expectedIDs {
		if !found {
			t.Errorf("Expected move %q not found", id)
		}
	}
}

func TestMoveRegistry(t *testing.T) {
	registry, err := LoadMoveRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != len(registry.All()) {
		t.Errorf("Count() = %d, want %d", registry.Count(), len(registry.All()))
	}

	tbolt := registry.GetByID("thunderbolt")
	if tbolt == nil {
		t.Fatal("thunderbolt not found by ID")
	}
	if tbolt.Type != "electric" || tbolt.Category != CategorySpecial {
		t.Errorf("thunderbolt = %s/%s, want electric/special", tbolt.Type, tbolt.Category)
	}

	if _, ok := registry.Move("no-such-move"); ok {
		t.Error("Move(no-such-move) should not be found")
	}
}

func TestMoveDefClassification(t *testing.T) {
	registry := MustLoadMoveRegistry()

	tests := []struct {
		id       string
		status   bool
		spread   bool
		opponent bool
		support  bool
		setup    bool
	}{
		{"tackle", false, false, true, false, false},
		{"earthquake", false, true, true, false, false},
		{"rock-slide", false, true, true, false, false},
		{"helping-hand", true, false, false, true, false},
		{"swords-dance", true, false, false, false, true},
		{"stealth-rock", true, false, false, false, true},
		{"thunder-wave", true, false, true, false, false},
	}

	for _, tt := range tests {
		m := registry.GetByID(tt.id)
		if m == nil {
			t.Errorf("move %q missing", tt.id)
			continue
		}
		if got := m.IsStatus(); got != tt.status {
			t.Errorf("%s.IsStatus() = %v, want %v", tt.id, got, tt.status)
		}
		if got := m.IsSpread(); got != tt.spread {
			t.Errorf("%s.IsSpread() = %v, want %v", tt.id, got, tt.spread)
		}
		if got := m.TargetsOpponents(); got != tt.opponent {
			t.Errorf("%s.TargetsOpponents() = %v, want %v", tt.id, got, tt.opponent)
		}
		if got := m.IsSupport(); got != tt.support {
			t.Errorf("%s.IsSupport() = %v, want %v", tt.id, got, tt.support)
		}
		if got := m.IsSetup(); got != tt.setup {
			t.Errorf("%s.IsSetup() = %v, want %v", tt.id, got, tt.setup)
		}
	}
}

func TestEveryDefaultMoveExists(t *testing.T) {
	moves := MustLoadMoveRegistry()
	species := MustLoadSpeciesRegistry()

	for _, s := range species.All() {
		if len(s.Moves) == 0 || len(s.Moves) > 4 {
			t.Errorf("%s has %d moves, want 1-4", s.ID, len(s.Moves))
		}
		for _, id := range s.Moves {
			if moves.GetByID(id) == nil {
				t.Errorf("%s references unknown move %q", s.ID, id)
			}
		}
	}
}

func TestSpeciesRegistry(t *testing.T) {
	registry, err := LoadSpeciesRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	gengar := registry.GetByID("gengar")
	if gengar == nil {
		t.Fatal("gengar not found by ID")
	}
	if gengar.Ability != "levitate" {
		t.Errorf("gengar ability = %q, want levitate", gengar.Ability)
	}

	// Weighted spawning is deterministic with the same seed
	rng1 := rand.New(rand.NewSource(12345))
	rng2 := rand.New(rand.NewSource(12345))

	for i := 0; i < 10; i++ {
		a := registry.SpawnRandom(rng1)
		b := registry.SpawnRandom(rng2)
		if a.ID != b.ID {
			t.Errorf("Spawn %d mismatch: %s != %s", i, a.ID, b.ID)
		}
		if a.SpawnWeight == 0 {
			t.Errorf("Spawn %d picked %s which has zero spawn weight", i, a.ID)
		}
	}
}

func TestTypeChartEffectiveness(t *testing.T) {
	chart := MustLoadTypeChart()

	tests := []struct {
		attack string
		defend []string
		want   float64
	}{
		{"rock", []string{"flying"}, 2},
		{"rock", []string{"fire", "flying"}, 4},
		{"electric", []string{"ground"}, 0},
		{"water", []string{"water", "dragon"}, 0.25},
		{"normal", []string{"psychic"}, 1},
		{"ground", []string{"steel", "flying"}, 0},
		{"unknown", []string{"fire"}, 1},
	}

	for _, tt := range tests {
		got := chart.Effectiveness(tt.attack, tt.defend)
		if got != tt.want {
			t.Errorf("Effectiveness(%s, %v) = %v, want %v", tt.attack, tt.defend, got, tt.want)
		}
	}
}

func TestItemAndRulesetRegistries(t *testing.T) {
	items := MustLoadItemRegistry()
	if lefties := items.GetByID("leftovers"); lefties == nil || lefties.EndOfTurnHeal <= 0 {
		t.Errorf("leftovers = %+v, want end-of-turn heal", lefties)
	}
	if potion := items.GetByID("potion"); potion == nil || !potion.Bag {
		t.Errorf("potion = %+v, want bag item", potion)
	}

	rulesets := MustLoadRulesetRegistry()
	comp := rulesets.GetByID("competitive")
	if comp == nil {
		t.Fatal("competitive ruleset not found")
	}
	found := false
	for _, id := range comp.BannedMoves {
		if id == "sheer-cold" {
			found = true
		}
	}
	if !found {
		t.Error("competitive ruleset should ban sheer-cold")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"volt-switch", "Volt Switch"},
		{"leftovers", "Leftovers"},
		{"u-turn", "U Turn"},
	}

	for _, tt := range tests {
		if got := DisplayName(tt.id); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"#FF0000", true},
		{"FF0000", true},
		{"#00FF00", true},
		{"#0000FF", true},
		{"#FFFFFF", true},
		{"#000000", true},
		{"invalid", false},
		{"#FFF", false}, // Too short
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if tt.valid && err != nil {
			t.Errorf("ParseHexColor(%q) should be valid, got error: %v", tt.input, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ParseHexColor(%q) should be invalid, got no error", tt.input)
		}
	}
}

func TestSpeciesColor(t *testing.T) {
	def := SpeciesDef{ID: "test", Types: []string{"fire"}, Color: "not-a-color"}
	if got := def.TCellColor(); got != TypeColor("fire") {
		t.Errorf("TCellColor() = %v, want fire type color", got)
	}
}
