package model

import (
	"encoding/json"
	"time"
)

// Achievement is a catalog entry. Only the admin may create or replace one.
type Achievement struct {
	ID           string          `json:"id" gorm:"primaryKey;type:text;not null"`
	Title        string          `json:"title" gorm:"not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Category     string          `json:"category" gorm:"size:50"`
	Requirements json.RawMessage `json:"requirements" gorm:"type:text"` // JSON array of AchievementRequirement
	Reward       json.RawMessage `json:"reward,omitempty" gorm:"type:text"`
	Active       bool            `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type AchievementRequirement struct {
	Trigger          string  `json:"trigger"`
	Threshold        uint64  `json:"threshold"`
	AdditionalParams *string `json:"additional_params,omitempty"`
}

type Reward struct {
	RewardType string `json:"reward_type"`
	Value      string `json:"value"`
}

// UserAchievement tracks one user's progress against one achievement.
// CompletedAt is written exactly once; later submissions never overwrite it.
type UserAchievement struct {
	User          string    `json:"user" gorm:"primaryKey;size:255;not null"`
	AchievementID string    `json:"achievement_id" gorm:"primaryKey;type:text;not null"`
	Progress      int       `json:"progress" gorm:"not null;default:0"` // 0-100
	Completed     bool      `json:"completed" gorm:"not null;default:false"`
	CompletedAt   *int64    `json:"completed_at,omitempty"`
	ProofID       *string   `json:"proof_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
