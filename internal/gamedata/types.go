package gamedata

// TypeChart answers type-effectiveness queries. Matchups not listed in
// the chart are neutral.
type TypeChart struct {
	Types    []string                      `json:"types"`
	Matchups map[string]map[string]float64 `json:"matchups"`
}

// Effectiveness returns the combined multiplier of an attacking type
// against every defending type.
func (c *TypeChart) Effectiveness(attackType string, defendTypes []string) float64 {
	mult := 1.0
	row, ok := c.Matchups[attackType]
	if !ok {
		return mult
	}
	for _, t := range defendTypes {
		if m, ok := row[t]; ok {
			mult *= m
		}
	}
	return mult
}

// LoadTypeChart loads the embedded typechart.json file.
func LoadTypeChart() (*TypeChart, error) {
	chart, err := Load[TypeChart]("typechart.json")
	if err != nil {
		return nil, err
	}
	return &chart, nil
}

// MustLoadTypeChart loads the type chart, panicking on error.
func MustLoadTypeChart() *TypeChart {
	chart, err := LoadTypeChart()
	if err != nil {
		panic(err)
	}
	return chart
}
