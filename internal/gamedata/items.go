package gamedata

// ItemDef defines a held or bag item loaded from JSON.
type ItemDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Held effects
	ChoiceLock       bool     `json:"choiceLock,omitempty"`
	PowerMultiplier  float64  `json:"powerMultiplier,omitempty"`
	Boosts           Category `json:"boosts,omitempty"` // Category the power boost applies to, "" for every damaging move
	SpeedMultiplier  float64  `json:"speedMultiplier,omitempty"`
	RecoilFraction   float64  `json:"recoilFraction,omitempty"`
	EndOfTurnHeal    float64  `json:"endOfTurnHeal,omitempty"` // Fraction of max HP
	SurviveAtFullHP  bool     `json:"surviveAtFullHP,omitempty"`
	ConsumedOnEffect bool     `json:"consumed,omitempty"`
	Levitates        bool     `json:"levitates,omitempty"`

	// Bag effects
	Bag         bool `json:"bag,omitempty"`
	HealAmount  int  `json:"healAmount,omitempty"`
	CuresStatus bool `json:"curesStatus,omitempty"`
}

// DisplayName returns the configured name or one derived from the id.
func (i *ItemDef) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return DisplayName(i.ID)
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
