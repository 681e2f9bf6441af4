package gamedata

import "github.com/gdamore/tcell/v2"

// BaseStats are the species stat baselines.
type BaseStats struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"spAttack"`
	SpDefense int `json:"spDefense"`
	Speed     int `json:"speed"`
}

// SpeciesDef defines a creature species loaded from JSON.
type SpeciesDef struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Types       []string  `json:"types"`
	Stats       BaseStats `json:"stats"`
	Ability     string    `json:"ability"`
	Moves       []string  `json:"moves"`       // Default moveset, at most four
	Color       string    `json:"color"`       // Hex color used by the terminal renderer
	SpawnWeight int       `json:"spawnWeight"` // Relative wild encounter frequency (0 = never wild)
}

// TCellColor returns the species color, falling back to the color of its
// primary type.
func (s *SpeciesDef) TCellColor() tcell.Color {
	if color, err := ParseHexColor(s.Color); err == nil {
		return color
	}
	if len(s.Types) > 0 {
		return TypeColor(s.Types[0])
	}
	return tcell.ColorWhite
}

// SpeciesFile represents the structure of species.json.
type SpeciesFile struct {
	Species []SpeciesDef `json:"species"`
}

// LoadSpecies loads species definitions from the embedded species.json file.
func LoadSpecies() ([]SpeciesDef, error) {
	file, err := Load[SpeciesFile]("species.json")
	if err != nil {
		return nil, err
	}
	return file.Species, nil
}
