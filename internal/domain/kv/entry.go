package kv

import (
	"time"

	"gorm.io/datatypes"
)

// Entry is one key of the gallery key-value store. Revision starts at 1 on
// first write and increases by one on every write.
type Entry struct {
	Key      string         `gorm:"column:entry_key;primaryKey;size:191" json:"key"`
	Value    datatypes.JSON `gorm:"not null" json:"value"`
	Revision int64          `gorm:"not null;default:0" json:"revision"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Entry) TableName() string {
	return "kv_entries"
}
