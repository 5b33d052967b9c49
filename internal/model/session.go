// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionRecord is one finished (or cancelled) quiz session, kept in the
// local history database. Purely a log; nothing schedules off it.
type SessionRecord struct {
	SessionID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_id"`
	Mode       string    `gorm:"not null;index" json:"mode"`
	HSKLevel   int       `gorm:"not null" json:"hsk_level"`
	Asked      int       `gorm:"not null" json:"asked"`
	Correct    int       `gorm:"not null" json:"correct"`
	Score      float64   `json:"score"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `gorm:"index" json:"finished_at"`
}

func (SessionRecord) TableName() string {
	return "session_records"
}

// HistoryStats aggregates the whole session history.
type HistoryStats struct {
	Sessions int     `json:"sessions"`
	Asked    int     `json:"asked"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}
