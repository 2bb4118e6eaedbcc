// Package localstore mirrors a collection as one JSON snapshot in a
// key-value table. It backs the demo mode, where no remote database is
// configured.
package localstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/service-desk/internal/models"
)

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

type GormKV struct {
	db *gorm.DB
}

func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (k *GormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var e models.KVEntry
	err := k.db.WithContext(ctx).Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (k *GormKV) Put(ctx context.Context, key, value string) error {
	e := models.KVEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return k.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}
