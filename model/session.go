package model

import (
	"encoding/json"
	"time"
)

// GameSession is the whole-record session state. Each submission carries the
// full session, so a resubmitted session_id overwrites the stored copy.
type GameSession struct {
	SessionID  string          `json:"session_id" gorm:"primaryKey;type:text;not null"`
	Player     string          `json:"player" gorm:"not null;index;size:255"`
	PetIDs     json.RawMessage `json:"pet_ids" gorm:"type:text"`
	StartTime  int64           `json:"start_time" gorm:"not null"`
	EndTime    *int64          `json:"end_time,omitempty"`
	MaxHeight  uint64          `json:"max_height" gorm:"not null;default:0"`
	FinalScore uint64          `json:"final_score" gorm:"not null;default:0"`
	PetSwaps   json.RawMessage `json:"pet_swaps" gorm:"type:text"`
	Completed  bool            `json:"completed" gorm:"not null;default:false"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// PetSwap records one mid-session pet change. The list is stored in the order
// the caller submitted it.
type PetSwap struct {
	FromPet   *string `json:"from_pet,omitempty"`
	ToPet     string  `json:"to_pet"`
	Height    uint64  `json:"height"`
	Timestamp int64   `json:"timestamp"`
}
