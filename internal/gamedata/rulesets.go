package gamedata

// RulesetDef lists the moves and items a format forbids.
type RulesetDef struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	BannedMoves []string `json:"bannedMoves"`
	BannedItems []string `json:"bannedItems"`
}

// RulesetsFile represents the structure of rulesets.json.
type RulesetsFile struct {
	Rulesets []RulesetDef `json:"rulesets"`
}

// LoadRulesets loads ruleset definitions from the embedded rulesets.json file.
func LoadRulesets() ([]RulesetDef, error) {
	file, err := Load[RulesetsFile]("rulesets.json")
	if err != nil {
		return nil, err
	}
	return file.Rulesets, nil
}
