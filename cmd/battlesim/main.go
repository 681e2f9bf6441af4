// Package main is the entry point for battlesim.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/archive"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/config"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/entity"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/game"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/gamedata"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/logging"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/rules"
	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/telemetry"
)

// playLogFile receives engine logs while the terminal UI owns the screen.
const playLogFile = "battlesim.log"

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML configuration")
	mode := flag.String("mode", "sim", "sim, play or history")
	battleType := flag.String("type", string(combat.TypeTrainer), "wild, trainer or pvp")
	format := flag.String("format", string(combat.FormatSingles), "singles, doubles, multi or raid")
	partySize := flag.Int("party", 3, "creatures per party")
	battles := flag.Int("n", 1, "number of battles to simulate")
	turns := flag.Int("turns", game.DefaultTurnLimit, "turn limit of a simulated battle")
	flag.Parse()

	// Load .env file for local development
	// This makes HONEYCOMB_BATTLESIM_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	logger := logging.Stderr(cfg.Logging.Level, cfg.Logging.Pretty)
	if *mode == "play" {
		f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", playLogFile, err)
		}
		defer f.Close()
		logger = logging.New(f, cfg.Logging.Level, false)
	}

	opts := []combat.Option{combat.WithLogger(logger)}

	// Initialize telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{
			Endpoint:    cfg.Telemetry.Endpoint,
			SampleRatio: cfg.Telemetry.SampleRatio,
			Mode:        *mode,
			Ruleset:     cfg.Ruleset,
			Level:       cfg.Level,
			Seed:        cfg.Seed,
		})
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Battles will run without observability")
			opts = append(opts, combat.WithTracer(telemetry.NoopTracer()))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	} else {
		opts = append(opts, combat.WithTracer(telemetry.NoopTracer()))
	}

	var store *archive.Store
	if cfg.Archive.Enabled {
		store, err = archive.Open(cfg.Archive.Path)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
		defer store.Close()
		opts = append(opts, combat.WithRecorder(store))
	}

	if *mode == "history" {
		if store == nil {
			log.Fatalf("The archive is disabled in %s", *configPath)
		}
		if err := printHistory(ctx, store); err != nil {
			log.Fatalf("History error: %v", err)
		}
		return
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	collab, err := rules.Defaults(seed)
	if err != nil {
		log.Fatalf("Failed to load game data: %v", err)
	}
	species, err := gamedata.LoadSpeciesRegistry()
	if err != nil {
		log.Fatalf("Failed to load species: %v", err)
	}
	moves, err := gamedata.LoadMoveRegistry()
	if err != nil {
		log.Fatalf("Failed to load moves: %v", err)
	}

	rng := rand.New(rand.NewSource(seed))
	engine := combat.NewEngine(collab, cfg.Settings(), append(opts, combat.WithRand(rng))...)
	roster := entity.NewRoster(species, moves, cfg.Level)

	match := game.DefaultConfig()
	match.Type = combat.BattleType(*battleType)
	match.Format = combat.Format(*format)
	match.PartySize = *partySize

	switch *mode {
	case "sim":
		for i := range *battles {
			if err := simulate(ctx, engine, roster, rng, match, *turns, logger); err != nil {
				log.Fatalf("Battle %d: %v", i+1, err)
			}
		}
	case "play":
		if err := play(ctx, engine, collab.Moves, roster, rng, match); err != nil {
			log.Fatalf("Game error: %v", err)
		}
	default:
		log.Fatalf("Unknown mode %q", *mode)
	}
}

func simulate(ctx context.Context, e *combat.Engine, roster *entity.Roster, rng *rand.Rand, match game.Config, turns int, logger zerolog.Logger) error {
	b, err := game.Setup(ctx, e, roster, rng, match)
	if err != nil {
		return err
	}
	summary, err := game.Simulate(ctx, e, b.ID, turns)
	if errors.Is(err, game.ErrTurnLimit) {
		logger.Warn().Str("battle_id", b.ID).Int("turns", turns).Msg("battle stopped at the turn limit")
	} else if err != nil {
		return err
	}

	fmt.Printf("== %s (%s %s) ==\n", strings.Join(summary.Participants, " vs "), summary.Type, summary.Format)
	for _, line := range summary.Log {
		fmt.Println(line)
	}
	fmt.Printf("-- winner: %s after %d turns\n\n", outcome(summary), summary.Turns)
	return nil
}

func play(ctx context.Context, e *combat.Engine, moves combat.MoveSource, roster *entity.Roster, rng *rand.Rand, match game.Config) error {
	b, err := game.Setup(ctx, e, roster, rng, match)
	if err != nil {
		return err
	}

	// Create and run game
	g, err := game.New(e, moves, b.ID, match.PlayerID)
	if err != nil {
		return err
	}
	defer g.Close()

	summary, err := g.Run(ctx)
	if err != nil {
		return err
	}
	g.Close()
	fmt.Printf("%s after %d turns\n", outcome(summary), summary.Turns)
	return nil
}

func printHistory(ctx context.Context, store *archive.Store) error {
	records, err := store.Recent(ctx, 10)
	if err != nil {
		return err
	}
	for _, r := range records {
		winner := r.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("%s  %-7s %-8s %-8s %3d turns  %s\n",
			r.EndedAt.Format(time.DateTime), r.Type, r.Format, winner, r.Turns, r.Participants)
	}

	counts, err := store.WinCounts(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\ntrainer %d, opponent %d, draw %d\n",
		counts[combat.WinnerTrainer], counts[combat.WinnerOpponent], counts[combat.WinnerDraw])
	return nil
}

func outcome(s *combat.Summary) string {
	switch {
	case s.Fled:
		return "fled"
	case s.Winner == "":
		return "none"
	default:
		return s.Winner
	}
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Default the endpoint to Honeycomb unless one is already set
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_BATTLESIM_API_KEY")
	dataset := os.Getenv("HONEYCOMB_BATTLESIM_DATASET")
	if dataset == "" {
		dataset = "battlesim" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
