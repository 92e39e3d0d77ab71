package storage

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lcalzada-xor/ghostfield/internal/core/domain"
)

// SQLiteAdapter implements ports.BurstSink using GORM and SQLite. It journals
// radio activity for the installation log; it never feeds state back into the
// scheduler.
type SQLiteAdapter struct {
	db *gorm.DB
}

// RunModel is one process lifetime of the transmitter.
type RunModel struct {
	RunID      string `gorm:"primaryKey"`
	StartedAt  time.Time
	Interface  string
	RosterSize int
}

// BurstModel is one journaled burst.
type BurstModel struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    string `gorm:"index"`
	Sequence int
	Channel  int
	Frames   int
	At       time.Time `gorm:"index"`
}

// NewSQLiteAdapter initializes the database and migrates the schema.
func NewSQLiteAdapter(path string) (*SQLiteAdapter, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&RunModel{}, &BurstModel{}); err != nil {
		return nil, err
	}

	return &SQLiteAdapter{db: db}, nil
}

// StartRun records the beginning of a transmitter run.
func (s *SQLiteAdapter) StartRun(ctx context.Context, runID, iface string, rosterSize int) error {
	run := RunModel{
		RunID:      runID,
		StartedAt:  time.Now(),
		Interface:  iface,
		RosterSize: rosterSize,
	}
	return s.db.WithContext(ctx).Create(&run).Error
}

// RecordBurst journals one completed burst.
func (s *SQLiteAdapter) RecordBurst(ctx context.Context, runID string, summary domain.BurstSummary) error {
	row := BurstModel{
		RunID:    runID,
		Sequence: summary.Sequence,
		Channel:  summary.Channel,
		Frames:   summary.Frames,
		At:       summary.At,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}

// RecentBursts returns the most recent journaled bursts, newest first.
func (s *SQLiteAdapter) RecentBursts(ctx context.Context, limit int) ([]domain.BurstRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []BurstModel
	err := s.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]domain.BurstRecord, len(rows))
	for i, r := range rows {
		records[i] = domain.BurstRecord{
			ID:       r.ID,
			RunID:    r.RunID,
			Sequence: r.Sequence,
			Channel:  r.Channel,
			Frames:   r.Frames,
			At:       r.At,
		}
	}
	return records, nil
}

// Close closes the underlying connection pool.
func (s *SQLiteAdapter) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
