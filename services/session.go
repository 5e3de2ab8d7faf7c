package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

// SessionService is the game-session registry. Each submission carries the
// full session state; resubmitting a session id replaces the stored record.
type SessionService struct {
	context.DefaultService

	sqlSvc   *PostgresService
	proofSvc *ProofService
}

const SESSION_SVC = "session_svc"

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.proofSvc = svc.Service(PROOF_SVC).(*ProofService)
	return nil
}

// RecordGameSession stores the submitted session under the caller's identity.
// A session submitted as completed without an end time is stamped with the
// acceptance time. Swap order is kept exactly as submitted.
func (svc *SessionService) RecordGameSession(caller string, req dto.RecordSessionRequest) (*model.GameSession, error) {
	proof := req.Proof.ToModel()
	if !svc.proofSvc.ValidateProof(&proof) {
		recordProofRejected(proof.ProofType)
		return nil, shared.NewUnprocessableError(fmt.Errorf("proof %s failed validation", proof.ID), "Invalid proof")
	}

	petIDs, err := json.Marshal(req.Session.PetIDs)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode pet ids")
	}
	petSwaps, err := json.Marshal(req.Session.PetSwaps)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode pet swaps")
	}

	session := &model.GameSession{
		SessionID:  req.Session.SessionID,
		Player:     caller,
		PetIDs:     petIDs,
		StartTime:  req.Session.StartTime,
		EndTime:    req.Session.EndTime,
		MaxHeight:  req.Session.MaxHeight,
		FinalScore: req.Session.FinalScore,
		PetSwaps:   petSwaps,
		Completed:  req.Session.Completed,
	}

	if session.Completed && session.EndTime == nil {
		now := time.Now().Unix()
		session.EndTime = &now
	}

	if err := svc.sqlSvc.SaveSessionWithProof(session, &proof); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save game session")
	}

	recordProofAccepted(proof.ProofType)
	recordGameSession(session.Completed)

	log.WithFields(log.Fields{
		"session_id":  session.SessionID,
		"player":      caller,
		"final_score": session.FinalScore,
		"completed":   session.Completed,
	}).Info("Game session recorded")
	return session, nil
}

func (svc *SessionService) GetSession(sessionID string) (*model.GameSession, error) {
	session, err := svc.sqlSvc.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Session not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load session")
	}
	return session, nil
}

func (svc *SessionService) GetSessionsByPlayer(player string, limit int) ([]model.GameSession, error) {
	if limit <= 0 {
		limit = shared.DefaultQueryLimit
	}

	sessions, err := svc.sqlSvc.GetSessionsByPlayer(player, limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load sessions")
	}
	if sessions == nil {
		sessions = []model.GameSession{}
	}
	return sessions, nil
}
