package gamedata

// Category is the damage class of a move.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// TargetShape describes who a move affects.
type TargetShape string

const (
	TargetSingle       TargetShape = "single"        // one opposing combatant
	TargetAllOpponents TargetShape = "all_opponents" // every opposing combatant
	TargetAllAdjacent  TargetShape = "all_adjacent"  // every other combatant on the field
	TargetAll          TargetShape = "all"           // both sides
	TargetAllAllies    TargetShape = "all_allies"    // user and its allies
	TargetAlly         TargetShape = "ally"          // one ally
	TargetSelf         TargetShape = "self"
	TargetField        TargetShape = "field" // weather, terrain, hazards, rooms
)

// StruggleID is the move used when nothing else has PP left.
const StruggleID = "struggle"

// MoveDef defines a move loaded from JSON.
type MoveDef struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Category Category    `json:"category"`
	Power    int         `json:"power"`
	Accuracy int         `json:"accuracy"` // 0 never misses
	Priority int         `json:"priority"`
	Target   TargetShape `json:"target"`
	PP       int         `json:"pp"`

	SelfSwitch bool `json:"selfSwitch,omitempty"`
	Protect    bool `json:"protect,omitempty"`
	Revive     bool `json:"revive,omitempty"`
	TrickRoom  bool `json:"trickRoom,omitempty"`

	Volatile     string         `json:"volatile,omitempty"`
	Weather      string         `json:"weather,omitempty"`
	Terrain      string         `json:"terrain,omitempty"`
	Hazard       string         `json:"hazard,omitempty"`
	Screen       string         `json:"screen,omitempty"`
	Status       string         `json:"status,omitempty"`
	StatusChance int            `json:"statusChance,omitempty"` // percent; 0 means always
	StatChanges  map[string]int `json:"statChanges,omitempty"`
	HealPercent  int            `json:"healPercent,omitempty"`
}

// DisplayName returns the configured name or one derived from the id.
func (m *MoveDef) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return DisplayName(m.ID)
}

// IsStatus reports whether the move deals no direct damage.
func (m *MoveDef) IsStatus() bool {
	return m.Category == CategoryStatus || m.Power <= 0
}

// IsSpread reports whether the move can hit more than one combatant.
func (m *MoveDef) IsSpread() bool {
	switch m.Target {
	case TargetAllOpponents, TargetAllAdjacent, TargetAll:
		return true
	}
	return false
}

// TargetsOpponents reports whether the move is aimed at the opposing side.
func (m *MoveDef) TargetsOpponents() bool {
	return m.Target == TargetSingle || m.Target == TargetAllOpponents || m.Target == TargetAllAdjacent
}

// IsSupport reports whether the move is aimed at allies.
func (m *MoveDef) IsSupport() bool {
	return m.Target == TargetAlly || m.Target == TargetAllAllies
}

// IsSetup reports whether the move only affects the user or the field.
func (m *MoveDef) IsSetup() bool {
	return m.Target == TargetSelf || m.Target == TargetField
}

// MovesFile represents the structure of moves.json.
type MovesFile struct {
	Moves []MoveDef `json:"moves"`
}

// LoadMoves loads move definitions from the embedded moves.json file.
func LoadMoves() ([]MoveDef, error) {
	file, err := Load[MovesFile]("moves.json")
	if err != nil {
		return nil, err
	}
	return file.Moves, nil
}
