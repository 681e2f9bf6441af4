// Package gamedata provides embedded battle data (moves, species, types,
// items, rulesets) and registries for querying it by id.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
