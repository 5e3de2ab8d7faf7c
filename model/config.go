package model

import "time"

const LedgerConfigID = "ledger_config"

// LedgerConfig is the process-wide singleton row. Admin rotation replaces the
// held principal atomically with the rest of the row.
type LedgerConfig struct {
	ID                  string    `json:"-" gorm:"primaryKey;type:text;not null"`
	Admin               string    `json:"admin" gorm:"not null;size:255"`
	AchievementContract *string   `json:"achievement_contract,omitempty" gorm:"size:255"`
	PetNFTContract      *string   `json:"pet_nft_contract,omitempty" gorm:"size:255"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
