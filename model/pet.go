package model

import "time"

// PetStatus is the durable vital-stat record for a single pet. Counters are
// kept in [0,100]; mutations clamp, they never reject.
type PetStatus struct {
	PetID       string    `json:"pet_id" gorm:"primaryKey;type:text;not null"`
	Owner       string    `json:"owner" gorm:"not null;index;size:255"`
	Happiness   int       `json:"happiness" gorm:"not null;default:0"`
	Hunger      int       `json:"hunger" gorm:"not null;default:0"`
	Energy      int       `json:"energy" gorm:"not null;default:0"`
	Cleanliness int       `json:"cleanliness" gorm:"not null;default:0"`
	LastUpdated int64     `json:"last_updated" gorm:"not null"`
	CareStreak  int       `json:"care_streak" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityImpact is the signed delta quadruple a care activity applies to the
// four counters.
type ActivityImpact struct {
	HappinessChange   int `json:"happiness_change"`
	HungerChange      int `json:"hunger_change"`
	EnergyChange      int `json:"energy_change"`
	CleanlinessChange int `json:"cleanliness_change"`
}

// PetCareActivity is an append-only history row keyed by (pet, timestamp).
// Rows are never updated or deleted once written.
type PetCareActivity struct {
	PetID        string         `json:"pet_id" gorm:"primaryKey;type:text;not null"`
	Timestamp    int64          `json:"timestamp" gorm:"primaryKey;not null"`
	Owner        string         `json:"owner" gorm:"not null;size:255"`
	ActivityType string         `json:"activity_type" gorm:"not null;size:50"` // feed, play, clean, rest
	Impact       ActivityImpact `json:"impact" gorm:"embedded;embeddedPrefix:impact_"`
	CreatedAt    time.Time      `json:"created_at"`
}
