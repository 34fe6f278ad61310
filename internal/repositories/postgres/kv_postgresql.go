package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quizzone/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KeyValueRecord stores one JSON document per key.
type KeyValueRecord struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

func (KeyValueRecord) TableName() string {
	return "kv_store"
}

type KeyValuePostgreSQL struct {
	db *gorm.DB
}

// NewKeyValuePostgreSQL migrates the kv_store table and returns the store.
func NewKeyValuePostgreSQL(db *gorm.DB) (*KeyValuePostgreSQL, error) {
	if err := db.AutoMigrate(&KeyValueRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_store: %w", err)
	}
	return &KeyValuePostgreSQL{db: db}, nil
}

func (p *KeyValuePostgreSQL) Load(ctx context.Context, key string) ([]byte, error) {
	var record KeyValueRecord
	if err := p.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load key %s: %w", key, err)
	}
	return []byte(record.Value), nil
}

// Save upserts the value. Only JSON documents are accepted by the jsonb column.
func (p *KeyValuePostgreSQL) Save(ctx context.Context, key string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("failed to save key %s: value is not valid JSON", key)
	}

	record := KeyValueRecord{
		Key:       key,
		Value:     datatypes.JSON(data),
		UpdatedAt: time.Now().UTC(),
	}
	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save key %s: %w", key, err)
	}
	return nil
}

func (p *KeyValuePostgreSQL) Delete(ctx context.Context, key string) error {
	if err := p.db.WithContext(ctx).Delete(&KeyValueRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (p *KeyValuePostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
