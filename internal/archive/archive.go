// Package archive keeps summaries of finished battles in SQLite.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FrostyKingzly/PokebotNOMORE-PLEASE-sub000/internal/combat"
)

// ErrNotFound is returned when no battle has the requested id.
var ErrNotFound = errors.New("battle not found")

// BattleRecord is one archived battle.
type BattleRecord struct {
	ID           uint   `gorm:"primaryKey"`
	BattleID     string `gorm:"uniqueIndex;not null"`
	Type         string
	Format       string
	Winner       string `gorm:"index"`
	Fled         bool
	Turns        int
	Participants string // Comma separated battler names
	Log          string // Newline separated narration
	EndedAt      time.Time
	CreatedAt    time.Time
}

// Lines returns the narration log.
func (r *BattleRecord) Lines() []string {
	if r.Log == "" {
		return nil
	}
	return strings.Split(r.Log, "\n")
}

// Store is the battle archive.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the archive database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	if err := db.AutoMigrate(&BattleRecord{}); err != nil {
		return nil, fmt.Errorf("migrate archive: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordBattle stores a finished battle.
func (s *Store) RecordBattle(ctx context.Context, summary combat.Summary) error {
	rec := BattleRecord{
		BattleID:     summary.BattleID,
		Type:         string(summary.Type),
		Format:       string(summary.Format),
		Winner:       summary.Winner,
		Fled:         summary.Fled,
		Turns:        summary.Turns,
		Participants: strings.Join(summary.Participants, ","),
		Log:          strings.Join(summary.Log, "\n"),
		EndedAt:      summary.EndedAt,
	}
	return s.db.WithContext(ctx).Create(&rec).Error
}

// Get returns the battle with the given id.
func (s *Store) Get(ctx context.Context, battleID string) (*BattleRecord, error) {
	var rec BattleRecord
	err := s.db.WithContext(ctx).Where("battle_id = ?", battleID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, battleID)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Recent returns up to limit battles, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]BattleRecord, error) {
	var recs []BattleRecord
	err := s.db.WithContext(ctx).Order("ended_at desc").Order("id desc").Limit(limit).Find(&recs).Error
	return recs, err
}

// WinCounts tallies archived battles by winner. Fled battles count under "".
func (s *Store) WinCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Winner string
		Count  int64
	}
	err := s.db.WithContext(ctx).Model(&BattleRecord{}).
		Select("winner, count(*) as count").
		Group("winner").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Winner] = r.Count
	}
	return counts, nil
}

var _ combat.Recorder = (*Store)(nil)
