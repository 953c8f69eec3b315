package storage

import (
	"context"
	"errors"
	"fmt"

	"artpulse-app/internal/domain/kv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend keeps each key as one row of kv_entries.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Get(ctx context.Context, key string) (Record, error) {
	var e kv.Entry
	err := b.db.WithContext(ctx).First(&e, "entry_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, err)
	}
	return Record{Value: []byte(e.Value), Revision: e.Revision}, nil
}

func (b *GormBackend) Put(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	var next int64

	err := b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e kv.Entry
		err := tx.First(&e, "entry_key = ?", key).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if expected != AnyRevision && expected != 0 {
				return ErrConflict
			}
			row := kv.Entry{Key: key, Value: datatypes.JSON(value), Revision: 1}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// another writer inserted the key first
				return ErrConflict
			}
			next = 1
			return nil
		case err != nil:
			return err
		}

		if expected != AnyRevision && expected != e.Revision {
			return ErrConflict
		}

		res := tx.Model(&kv.Entry{}).
			Where("entry_key = ? AND revision = ?", key, e.Revision).
			Updates(map[string]interface{}{
				"value":    datatypes.JSON(value),
				"revision": e.Revision + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		next = e.Revision + 1
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrConflict) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: put %s: %v", ErrUnavailable, key, err)
	}
	return next, nil
}
