package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

// ProofService is the structural gate and the audit store for attestations.
// Every mutating ledger operation validates through it before touching state.
type ProofService struct {
	context.DefaultService

	sqlSvc    *PostgresService
	configSvc *ConfigService
}

const PROOF_SVC = "proof_svc"

func (svc ProofService) Id() string {
	return PROOF_SVC
}

func (svc *ProofService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ProofService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	return nil
}

// ValidateProof is a structural check only: non-empty signature, non-empty
// data hash, and a timestamp no further than the skew tolerance into the
// future. Arbitrarily old proofs pass; nothing cryptographic is verified
// here. Administrative trust is a separate, later step (MarkVerified).
func (svc *ProofService) ValidateProof(proof *model.ZkTLSProof) bool {
	if proof.Signature == "" || proof.DataHash == "" {
		return false
	}

	if proof.Timestamp > time.Now().Unix()+shared.ProofMaxFutureSkew {
		return false
	}

	return true
}

func (svc *ProofService) GetProof(proofID string) (*model.ZkTLSProof, error) {
	proof, err := svc.sqlSvc.GetProof(proofID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Proof not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load proof")
	}
	return proof, nil
}

// MarkVerified flips the stored proof's verified flag. Admin only; this is an
// attestation of trust on top of the structural check done at submission.
func (svc *ProofService) MarkVerified(proofID, caller string) (*model.ZkTLSProof, error) {
	if err := svc.configSvc.RequireAdmin(caller); err != nil {
		return nil, err
	}

	proof, err := svc.GetProof(proofID)
	if err != nil {
		return nil, err
	}

	proof.Verified = true
	if err := svc.sqlSvc.SaveProof(proof); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to update proof")
	}

	log.WithFields(log.Fields{"proof_id": proofID, "admin": caller}).Info("Proof marked verified")
	return proof, nil
}
