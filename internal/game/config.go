package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/entity"
)

// rivalPartnerID controls the second opposing slot of a multi battle.
const rivalPartnerID int64 = -5

// ErrUnsupportedMatch is returned for a battle type and format that cannot
// be combined.
var ErrUnsupportedMatch = errors.New("unsupported match")

// Config describes the battle to set up.
type Config struct {
	Type      combat.BattleType
	Format    combat.Format
	PartySize int

	Player   string
	PlayerID int64 // Must be positive
	Rival    string
}

// DefaultConfig is a singles trainer battle with three creatures a side.
func DefaultConfig() Config {
	return Config{
		Type:      combat.TypeTrainer,
		Format:    combat.FormatSingles,
		PartySize: 3,
		Player:    "Red",
		PlayerID:  1,
		Rival:     "Blue",
	}
}

// Setup builds random parties from the roster and starts the battle cfg
// describes.
func Setup(ctx context.Context, e *combat.Engine, roster *entity.Roster, rng *rand.Rand, cfg Config) (*combat.Battle, error) {
	if cfg.PlayerID <= 0 {
		return nil, fmt.Errorf("%w: player id must be positive", ErrUnsupportedMatch)
	}
	party := func() ([]combat.Combatant, error) { return roster.RandomParty(rng, cfg.PartySize) }

	mine, err := party()
	if err != nil {
		return nil, err
	}
	player := combat.NewBattler(cfg.PlayerID, cfg.Player, mine, slots(cfg.Format))

	switch {
	case cfg.Type == combat.TypeWild:
		if cfg.Format != combat.FormatSingles {
			return nil, fmt.Errorf("%w: wild battles are singles", ErrUnsupportedMatch)
		}
		wild, err := roster.Wild(rng)
		if err != nil {
			return nil, err
		}
		return e.StartWildBattle(ctx, player, wild)

	case cfg.Format == combat.FormatRaid:
		ally, err := party()
		if err != nil {
			return nil, err
		}
		boss, err := roster.RandomParty(rng, 1)
		if err != nil {
			return nil, err
		}
		return e.StartRaidBattle(ctx, combat.RaidOptions{
			Trainers: []*combat.Battler{player, combat.NewBattler(combat.PartnerID, "Partner", ally, 1)},
			Boss:     boss[0],
		})

	case cfg.Format == combat.FormatMulti:
		teams := make([][]combat.Combatant, 3)
		for i := range teams {
			if teams[i], err = party(); err != nil {
				return nil, err
			}
		}
		return e.StartMultiBattle(ctx, cfg.Type,
			player,
			combat.NewBattler(combat.PartnerID, "Partner", teams[0], 1),
			combat.NewBattler(combat.NPCID, cfg.Rival, teams[1], 1),
			combat.NewBattler(rivalPartnerID, cfg.Rival+"'s Partner", teams[2], 1),
		)

	case cfg.Type == combat.TypePvP:
		theirs, err := party()
		if err != nil {
			return nil, err
		}
		rival := combat.NewBattler(cfg.PlayerID+1, cfg.Rival, theirs, slots(cfg.Format))
		return e.StartPvPBattle(ctx, player, rival, cfg.Format)

	case cfg.Type == combat.TypeTrainer:
		theirs, err := party()
		if err != nil {
			return nil, err
		}
		return e.StartTrainerBattle(ctx, player, cfg.Rival, theirs, cfg.Format)
	}
	return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedMatch, cfg.Type, cfg.Format)
}

func slots(format combat.Format) int {
	if format == combat.FormatDoubles {
		return 2
	}
	return 1
}
