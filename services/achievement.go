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

// AchievementService keeps the admin-managed catalog and the per-(user,
// achievement) progress ledger.
type AchievementService struct {
	context.DefaultService

	sqlSvc    *PostgresService
	proofSvc  *ProofService
	configSvc *ConfigService
	minioSvc  *MinIOService
}

const ACHIEVEMENT_SVC = "achievement_svc"

func (svc AchievementService) Id() string {
	return ACHIEVEMENT_SVC
}

func (svc *AchievementService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *AchievementService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.proofSvc = svc.Service(PROOF_SVC).(*ProofService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	if s := svc.Service(MINIO_SVC); s != nil {
		svc.minioSvc = s.(*MinIOService)
	}
	return nil
}

// RegisterAchievement upserts a catalog entry. Admin only.
func (svc *AchievementService) RegisterAchievement(caller string, req dto.RegisterAchievementRequest) (*model.Achievement, error) {
	if err := svc.configSvc.RequireAdmin(caller); err != nil {
		return nil, err
	}

	requirements, err := json.Marshal(req.Requirements)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to encode requirements")
	}

	achievement := &model.Achievement{
		ID:           req.ID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Requirements: requirements,
		Active:       req.Active,
	}

	if req.Reward != nil {
		reward, err := json.Marshal(model.Reward{
			RewardType: req.Reward.RewardType,
			Value:      req.Reward.Value,
		})
		if err != nil {
			return nil, shared.NewInternalError(err, "Failed to encode reward")
		}
		achievement.Reward = reward
	}

	if err := svc.sqlSvc.SaveAchievement(achievement); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save achievement")
	}

	log.WithFields(log.Fields{"achievement_id": achievement.ID, "admin": caller}).Info("Achievement registered")
	return achievement, nil
}

// SubmitAchievementProof validates and stores the proof, recomputes the
// caller's progress, and surfaces the reward descriptor on completion. The
// completion timestamp is written once and never overwritten; resubmitting
// against a completed achievement is a no-op on it.
func (svc *AchievementService) SubmitAchievementProof(achievementID, caller string, req dto.SubmitAchievementProofRequest) (*dto.SubmitAchievementProofResponse, error) {
	achievement, err := svc.GetAchievement(achievementID)
	if err != nil {
		return nil, err
	}

	if !achievement.Active {
		return nil, shared.NewBadRequestError(fmt.Errorf("achievement %s is inactive", achievementID), "Achievement is not active")
	}

	proof := req.Proof.ToModel()
	if !svc.proofSvc.ValidateProof(&proof) {
		recordProofRejected(proof.ProofType)
		return nil, shared.NewUnprocessableError(fmt.Errorf("proof %s failed validation", proof.ID), "Invalid proof")
	}

	ua, _, err := svc.loadOrDefaultUserAchievement(caller, achievementID)
	if err != nil {
		return nil, err
	}

	progress, completed := evaluateAchievementProof(achievement, &proof)

	wasCompleted := ua.Completed
	ua.Progress = progress
	ua.Completed = completed
	proofID := proof.ID
	ua.ProofID = &proofID

	if completed && ua.CompletedAt == nil {
		now := time.Now().Unix()
		ua.CompletedAt = &now
	}

	if err := svc.sqlSvc.SaveUserAchievementWithProof(ua, &proof); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save achievement progress")
	}

	recordProofAccepted(proof.ProofType)
	if completed && !wasCompleted {
		recordAchievementCompleted(achievementID)
	}

	svc.archiveSupportingData(proof.ID, req.SupportingData)

	resp := &dto.SubmitAchievementProofResponse{
		AchievementID: achievementID,
		User:          caller,
		Progress:      ua.Progress,
		Completed:     ua.Completed,
		CompletedAt:   ua.CompletedAt,
		ProofID:       proof.ID,
	}

	if completed && len(achievement.Reward) > 0 {
		var reward model.Reward
		if err := json.Unmarshal(achievement.Reward, &reward); err == nil {
			// Attribution only; disbursement belongs to the asset contract.
			resp.Reward = &reward
		}
	}

	log.WithFields(log.Fields{
		"achievement_id": achievementID,
		"user":           caller,
		"progress":       ua.Progress,
		"completed":      ua.Completed,
	}).Info("Achievement proof submitted")
	return resp, nil
}

// evaluateAchievementProof maps a proof to (progress, completed) keyed on the
// proof's category tag alone. Recognized categories count as full completion;
// anything else yields no progress rather than an error. The declared
// requirement thresholds are not consulted here.
func evaluateAchievementProof(achievement *model.Achievement, proof *model.ZkTLSProof) (int, bool) {
	switch proof.ProofType {
	case shared.ProofTypePetCare, shared.ProofTypeGameSession, shared.ProofTypePetStatus:
		return 100, true
	default:
		return 0, false
	}
}

// loadOrDefaultUserAchievement returns the stored progress record, or a fresh
// zero-progress record when none exists. The second return reports which.
func (svc *AchievementService) loadOrDefaultUserAchievement(user, achievementID string) (*model.UserAchievement, bool, error) {
	ua, err := svc.sqlSvc.GetUserAchievement(user, achievementID)
	if err == nil {
		return ua, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load achievement progress")
	}

	return &model.UserAchievement{
		User:          user,
		AchievementID: achievementID,
		Progress:      0,
		Completed:     false,
	}, false, nil
}

func (svc *AchievementService) archiveSupportingData(proofID string, data []byte) {
	if svc.minioSvc == nil || len(data) == 0 {
		return
	}

	if err := svc.minioSvc.ArchiveProofPayload(proofID, data); err != nil {
		// Advisory payload, not contract state; the ledger write stands.
		log.WithError(err).WithField("proof_id", proofID).Warn("Failed to archive proof payload")
	}
}

func (svc *AchievementService) GetAchievement(id string) (*model.Achievement, error) {
	achievement, err := svc.sqlSvc.GetAchievement(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Achievement not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load achievement")
	}
	return achievement, nil
}

func (svc *AchievementService) GetAllAchievements() ([]model.Achievement, error) {
	achievements, err := svc.sqlSvc.GetAllAchievements()
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load achievements")
	}
	if achievements == nil {
		achievements = []model.Achievement{}
	}
	return achievements, nil
}

func (svc *AchievementService) GetUserAchievement(user, achievementID string) (*model.UserAchievement, error) {
	ua, err := svc.sqlSvc.GetUserAchievement(user, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Achievement progress not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load achievement progress")
	}
	return ua, nil
}

func (svc *AchievementService) GetUserAchievements(user string) ([]model.UserAchievement, error) {
	uas, err := svc.sqlSvc.GetUserAchievements(user)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load achievement progress")
	}
	if uas == nil {
		uas = []model.UserAchievement{}
	}
	return uas, nil
}
