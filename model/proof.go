package model

import "time"

// ZkTLSProof is an externally produced attestation. The store is
// last-write-wins by ID across every sub-ledger; Verified starts as submitted
// and is only flipped true by an admin validation.
type ZkTLSProof struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;not null"`
	ProofType string    `json:"proof_type" gorm:"not null;size:50"`
	Signature string    `json:"signature" gorm:"type:text"`
	Timestamp int64     `json:"timestamp" gorm:"not null"`
	DataHash  string    `json:"data_hash" gorm:"type:text"`
	Verified  bool      `json:"verified" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
