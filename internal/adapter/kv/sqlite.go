package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ port.KVStore = (*SQLite)(nil)

type kvEntry struct {
	Key       string `gorm:"column:slot_key;primaryKey"`
	Value     []byte `gorm:"column:slot_value;not null"`
	UpdatedAt time.Time
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// SQLite keeps slots in a single embedded database file.
type SQLite struct {
	db *gorm.DB
}

func OpenSQLite(path string) (SQLite, error) {
	const op = "OpenSQLite"

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return SQLite{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return SQLite{}, fmt.Errorf("%s: %w", op, err)
	}
	return SQLite{db}, nil
}

func (s SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	const op = "SQLite.Get"

	var e kvEntry
	err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: key %q: %w", op, key, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e.Value, nil
}

func (s SQLite) Set(ctx context.Context, key string, value []byte) error {
	const op = "SQLite.Set"

	if value == nil {
		value = []byte{}
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"slot_value", "updated_at"}),
	}).Create(&kvEntry{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s SQLite) Close() error {
	const op = "SQLite.Close"

	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return sqlDB.Close()
}
