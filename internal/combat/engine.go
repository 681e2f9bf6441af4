package combat

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/telemetry"
)

// Settings are the engine tunables.
type Settings struct {
	SpreadModifier      float64  // Damage multiplier for moves hitting several targets
	FieldTurns          int      // Duration of weather, terrain, screens and trick room set by moves
	PermanentFieldTurns int      // Duration given to boss-intrinsic weather and terrain
	FallbackDamage      int      // Damage used when the calculator fails
	RaidBossBannedMoves []string // Moves a raid boss may never use
	DefaultRuleset      string
}

// DefaultSettings returns the standard tunables.
func DefaultSettings() Settings {
	return Settings{
		SpreadModifier:      0.75,
		FieldTurns:          5,
		PermanentFieldTurns: 999,
		FallbackDamage:      10,
		RaidBossBannedMoves: []string{
			"perish-song", "destiny-bond", "sheer-cold", "fissure", "guillotine",
			"horn-drill", "endeavor", "super-fang", "pain-split", "leech-seed", "toxic",
		},
		DefaultRuleset: "standard",
	}
}

// Collaborators are the external services the engine delegates to.
type Collaborators struct {
	Moves      MoveSource
	Chart      TypeChart
	Calculator DamageCalculator
	Abilities  AbilityHandler
	Items      ItemManager
	Rulesets   RulesetHandler
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRecorder stores finished battles.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithRand sets the random source used for AI choices, accuracy and
// protect rolls.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// Engine owns every running battle and exposes the turn entry points.
// Callers must serialize calls for the same battle id.
type Engine struct {
	mu      sync.Mutex
	battles map[string]*Battle

	moves     MoveSource
	chart     TypeChart
	calc      DamageCalculator
	abilities AbilityHandler
	items     ItemManager
	rulesets  RulesetHandler
	recorder  Recorder

	settings   Settings
	bossBanned map[string]bool
	rng        *rand.Rand
	log        zerolog.Logger
	tracer     trace.Tracer
}

// NewEngine creates an engine.
func NewEngine(c Collaborators, settings Settings, opts ...Option) *Engine {
	e := &Engine{
		battles:    make(map[string]*Battle),
		moves:      c.Moves,
		chart:      c.Chart,
		calc:       c.Calculator,
		abilities:  c.Abilities,
		items:      c.Items,
		rulesets:   c.Rulesets,
		settings:   settings,
		bossBanned: lo.SliceToMap(settings.RaidBossBannedMoves, func(id string) (string, bool) { return id, true }),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		log:        zerolog.Nop(),
		tracer:     telemetry.Tracer("combat"),
	}
	if e.abilities == nil {
		e.abilities = nopAbilities{}
	}
	if e.items == nil {
		e.items = nopItems{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BattleOptions describes a battle to start.
type BattleOptions struct {
	Type    BattleType
	Format  Format
	Ruleset string

	Trainer         *Battler
	Opponent        *Battler
	TrainerPartner  *Battler
	OpponentPartner *Battler
	RaidAllies      []*Battler

	PermanentWeather string
	PermanentTerrain string
}

// StartBattle creates a battle and returns it in the waiting phase.
func (e *Engine) StartBattle(ctx context.Context, opts BattleOptions) (*Battle, error) {
	if opts.Trainer == nil || opts.Opponent == nil {
		return nil, fmt.Errorf("%w: trainer and opponent are required", ErrInvalidBattle)
	}

	b := newBattle(uuid.NewString())
	b.Type = opts.Type
	b.Format = opts.Format
	b.fieldTurns = e.settings.FieldTurns
	b.Ruleset = lo.Ternary(opts.Ruleset != "", opts.Ruleset, e.settings.DefaultRuleset)
	b.Trainer = opts.Trainer
	b.Opponent = opts.Opponent
	b.TrainerPartner = opts.TrainerPartner
	b.OpponentPartner = opts.OpponentPartner
	b.RaidAllies = opts.RaidAllies

	for _, x := range []*Battler{b.Trainer, b.TrainerPartner} {
		if x != nil {
			x.Side = SideTrainer
		}
	}
	for _, x := range b.RaidAllies {
		x.Side = SideTrainer
	}
	for _, x := range []*Battler{b.Opponent, b.OpponentPartner} {
		if x != nil {
			x.Side = SideOpponent
		}
	}

	seen := make(map[int64]bool)
	for i, x := range b.Battlers() {
		if x.ID == NoBattler {
			return nil, fmt.Errorf("%w: %s has the reserved id %d", ErrInvalidBattle, x.Name, x.ID)
		}
		if seen[x.ID] {
			return nil, fmt.Errorf("%w: duplicate battler id %d", ErrInvalidBattle, x.ID)
		}
		seen[x.ID] = true
		if len(x.Party) == 0 || len(x.Active) == 0 {
			return nil, fmt.Errorf("%w: %s has no combatants", ErrInvalidBattle, x.Name)
		}
		for _, idx := range x.Active {
			if idx < 0 || idx >= len(x.Party) {
				return nil, fmt.Errorf("%w: %s active index %d out of range", ErrInvalidBattle, x.Name, idx)
			}
		}
		x.order = i
		x.resetTransient()
		x.RecomputeEliminated()
	}

	if w := opts.PermanentWeather; w != "" {
		b.Field.PermanentWeather = w
		b.SetWeather(w, e.settings.PermanentFieldTurns)
	}
	if t := opts.PermanentTerrain; t != "" {
		b.Field.PermanentTerrain = t
		b.SetTerrain(t, e.settings.PermanentFieldTurns)
	}

	ctx, span := e.tracer.Start(ctx, "battle.start")
	span.SetAttributes(telemetry.BattleAttributes(b.ID, string(b.Type), string(b.Format))...)
	span.SetAttributes(attribute.Int("battlers", len(b.Battlers())))
	defer span.End()

	if err := b.transition(ctx, evBegin); err != nil {
		return nil, err
	}

	for _, ref := range b.livingRefs(b.Battlers()) {
		b.say(e.entryMessages(ctx, b, ref.combatant())...)
	}
	b.TurnLog = nil

	e.mu.Lock()
	e.battles[b.ID] = b
	e.mu.Unlock()

	e.log.Info().
		Str("battle_id", b.ID).
		Str("type", string(b.Type)).
		Str("format", string(b.Format)).
		Msg("battle started")

	return b, nil
}

// StartWildBattle starts a singles battle against one wild combatant.
func (e *Engine) StartWildBattle(ctx context.Context, trainer *Battler, wild Combatant) (*Battle, error) {
	trainer.CanFlee = true
	opponent := NewBattler(WildID, "Wild "+wild.GetName(), []Combatant{wild}, 1)
	opponent.CanSwitch = false
	return e.StartBattle(ctx, BattleOptions{
		Type:     TypeWild,
		Format:   FormatSingles,
		Trainer:  trainer,
		Opponent: opponent,
	})
}

// StartTrainerBattle starts a battle against an AI trainer. The format
// decides how many slots the NPC fills; the trainer battler must already
// match it.
func (e *Engine) StartTrainerBattle(ctx context.Context, trainer *Battler, npcName string, party []Combatant, format Format) (*Battle, error) {
	opponent := NewBattler(NPCID, npcName, party, slotsFor(format))
	return e.StartBattle(ctx, BattleOptions{
		Type:     TypeTrainer,
		Format:   format,
		Trainer:  trainer,
		Opponent: opponent,
	})
}

// StartPvPBattle starts a battle between two players.
func (e *Engine) StartPvPBattle(ctx context.Context, trainer, opponent *Battler, format Format) (*Battle, error) {
	return e.StartBattle(ctx, BattleOptions{
		Type:     TypePvP,
		Format:   format,
		Trainer:  trainer,
		Opponent: opponent,
	})
}

// StartMultiBattle starts a 2v2 battle where each battler controls one slot.
func (e *Engine) StartMultiBattle(ctx context.Context, battleType BattleType, trainer, partner, opponent, opponentPartner *Battler) (*Battle, error) {
	return e.StartBattle(ctx, BattleOptions{
		Type:            battleType,
		Format:          FormatMulti,
		Trainer:         trainer,
		TrainerPartner:  partner,
		Opponent:        opponent,
		OpponentPartner: opponentPartner,
	})
}

// RaidOptions describes a cooperative raid.
type RaidOptions struct {
	Trainers         []*Battler // The first trainer leads
	Boss             Combatant
	BossName         string
	PermanentWeather string
	PermanentTerrain string
}

// StartRaidBattle starts a raid of several trainers against one boss.
func (e *Engine) StartRaidBattle(ctx context.Context, opts RaidOptions) (*Battle, error) {
	if len(opts.Trainers) == 0 || opts.Boss == nil {
		return nil, fmt.Errorf("%w: a raid needs trainers and a boss", ErrInvalidBattle)
	}
	name := lo.Ternary(opts.BossName != "", opts.BossName, opts.Boss.GetName())
	boss := NewBattler(BossID, name, []Combatant{opts.Boss}, 1)
	boss.CanSwitch = false
	return e.StartBattle(ctx, BattleOptions{
		Type:             TypeTrainer,
		Format:           FormatRaid,
		Trainer:          opts.Trainers[0],
		RaidAllies:       opts.Trainers[1:],
		Opponent:         boss,
		PermanentWeather: opts.PermanentWeather,
		PermanentTerrain: opts.PermanentTerrain,
	})
}

func slotsFor(format Format) int {
	if format == FormatDoubles {
		return 2
	}
	return 1
}

// GetBattle returns a running battle.
func (e *Engine) GetBattle(battleID string) (*Battle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.battles[battleID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBattleNotFound, battleID)
	}
	return b, nil
}

// EndBattle closes a battle, records it and forgets it. A battle ended
// before a winner is decided (a capture, for instance) has no winner.
func (e *Engine) EndBattle(ctx context.Context, battleID string) (*Summary, error) {
	b, err := e.GetBattle(battleID)
	if err != nil {
		return nil, err
	}

	ctx, span := e.tracer.Start(ctx, "battle.end")
	defer span.End()

	b.Over = true
	if err := b.transition(ctx, evEnd); err != nil {
		return nil, err
	}

	summary := Summary{
		BattleID:     b.ID,
		Type:         b.Type,
		Format:       b.Format,
		Winner:       b.Winner,
		Fled:         b.Fled,
		Turns:        b.Turn - 1,
		Participants: lo.Map(b.Battlers(), func(x *Battler, _ int) string { return x.Name }),
		Log:          append([]string(nil), b.Log...),
		EndedAt:      time.Now(),
	}
	span.SetAttributes(
		attribute.String("battle_id", b.ID),
		attribute.String("winner", summary.Winner),
		attribute.Bool("fled", summary.Fled),
		attribute.Int("turns_taken", summary.Turns),
	)

	if e.recorder != nil {
		if err := e.recorder.RecordBattle(ctx, summary); err != nil {
			e.log.Warn().Err(err).Str("battle_id", b.ID).Msg("failed to record battle")
		}
	}

	e.mu.Lock()
	delete(e.battles, battleID)
	e.mu.Unlock()

	e.log.Info().
		Str("battle_id", b.ID).
		Str("winner", summary.Winner).
		Int("turns", summary.Turns).
		Msg("battle ended")

	return &summary, nil
}
