package models

import "time"

// Par chave/valor usado pelo modo demonstração para espelhar coleções locais.
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:100"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
