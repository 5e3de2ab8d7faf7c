package dto

import "github.com/aayushman-singh/xion-pet-game/model"

// ProofPayload carries an attestation alongside a state change. Signature and
// DataHash are deliberately not `required` here: an empty blob must reach the
// structural validator and come back as an invalid-proof failure, not as a
// malformed request.
type ProofPayload struct {
	ID        string `json:"id" validate:"required"`
	ProofType string `json:"proof_type" validate:"required"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp" validate:"required"`
	DataHash  string `json:"data_hash"`
	Verified  bool   `json:"verified"`
}

func (p ProofPayload) ToModel() model.ZkTLSProof {
	return model.ZkTLSProof{
		ID:        p.ID,
		ProofType: p.ProofType,
		Signature: p.Signature,
		Timestamp: p.Timestamp,
		DataHash:  p.DataHash,
		Verified:  p.Verified,
	}
}
