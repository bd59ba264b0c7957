package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("conversion not found")

// Store persists conversion history in SQLite.
type Store struct {
	db *gorm.DB
}

// Filter selects a page of history. Zero values mean every status, the
// default limit and the first page.
type Filter struct {
	Status Status
	Limit  int
	Offset int
}

// Open opens or creates the history database at path and migrates its schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := gdb.AutoMigrate(&ConversionRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: gdb}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Insert stores rec, assigning an id and creation time when missing.
func (s *Store) Insert(ctx context.Context, rec *ConversionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("insert conversion %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the newest records matching f and the total number of
// matching records.
func (s *Store) List(ctx context.Context, f Filter) ([]ConversionRecord, int64, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	q := s.db.WithContext(ctx).Model(&ConversionRecord{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	q = q.Session(&gorm.Session{})
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("count conversions: %w", err)
	}
	rows := []ConversionRecord{}
	if err := q.Order("created_at desc").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list conversions: %w", err)
	}
	return rows, count, nil
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id string) (*ConversionRecord, error) {
	var rec ConversionRecord
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get conversion %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var agg struct {
		Total       int64
		Success     int64
		Failed      int64
		InputBytes  int64
		OutputBytes int64
		AvgDuration float64
	}
	err := s.db.WithContext(ctx).Model(&ConversionRecord{}).Select(
		"COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS success, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS failed, "+
			"COALESCE(SUM(input_bytes), 0) AS input_bytes, "+
			"COALESCE(SUM(output_bytes), 0) AS output_bytes, "+
			"COALESCE(AVG(duration_ms), 0) AS avg_duration",
		StatusSuccess, StatusFailed,
	).Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate conversions: %w", err)
	}

	var targets []struct {
		To    string `gorm:"column:to_format"`
		Count int64
	}
	err = s.db.WithContext(ctx).Model(&ConversionRecord{}).
		Select("to_format, COUNT(*) AS count").
		Group("to_format").
		Scan(&targets).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate targets: %w", err)
	}

	st := &Stats{
		Total:         agg.Total,
		Success:       agg.Success,
		Failed:        agg.Failed,
		InputBytes:    agg.InputBytes,
		OutputBytes:   agg.OutputBytes,
		AvgDurationMs: agg.AvgDuration,
		ByTarget:      make(map[string]int64, len(targets)),
	}
	for _, t := range targets {
		st.ByTarget[t.To] = t.Count
	}
	return st, nil
}
