package model

import "time"

// KVEntry is one row of the local key-value store.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName pins the table name regardless of gorm naming strategy.
func (KVEntry) TableName() string {
	return "kv_entries"
}
