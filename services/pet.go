package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

// PetService is the vital-state ledger and its append-only care history.
type PetService struct {
	appContext.DefaultService

	sqlSvc    *PostgresService
	proofSvc  *ProofService
	configSvc *ConfigService
	redisSvc  *RedisService
}

const PET_SVC = "pet_svc"

const petStatusCacheTTL = 30 * time.Second

func (svc PetService) Id() string {
	return PET_SVC
}

func (svc *PetService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *PetService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.proofSvc = svc.Service(PROOF_SVC).(*ProofService)
	svc.configSvc = svc.Service(CONFIG_SVC).(*ConfigService)
	if s := svc.Service(REDIS_SVC); s != nil {
		svc.redisSvc = s.(*RedisService)
	}
	return nil
}

// applyChange adds a signed delta to a counter and clamps the result into
// [0,100]. The sum is taken before clamping, so a large negative delta on a
// low counter lands on 0, not on a wrapped value.
func applyChange(current, change int) int {
	v := current + change
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// UpdatePetStatus overwrites the stored record, forcing owner and timestamp
// from the authenticated caller and server clock. There is deliberately no
// check against a prior owner of the same pet id: any caller may claim or
// reclaim an identifier through this path.
func (svc *PetService) UpdatePetStatus(petID, caller string, req dto.UpdatePetStatusRequest) (*model.PetStatus, error) {
	proof := req.Proof.ToModel()
	if !svc.proofSvc.ValidateProof(&proof) {
		recordProofRejected(proof.ProofType)
		return nil, shared.NewUnprocessableError(fmt.Errorf("proof %s failed validation", proof.ID), "Invalid proof")
	}

	// Ownership cross-check against the pet NFT contract is configured but
	// not consulted yet; the caller-declared owner field is still what gets
	// trusted, and then immediately overwritten with the caller itself.
	if config, err := svc.configSvc.GetConfig(); err == nil && config.PetNFTContract != nil {
		log.WithField("pet_nft_contract", *config.PetNFTContract).Debug("Skipping NFT ownership cross-check")
	}

	status := &model.PetStatus{
		PetID:       petID,
		Owner:       caller,
		Happiness:   req.Status.Happiness,
		Hunger:      req.Status.Hunger,
		Energy:      req.Status.Energy,
		Cleanliness: req.Status.Cleanliness,
		LastUpdated: time.Now().Unix(),
		CareStreak:  req.Status.CareStreak,
	}

	if err := svc.sqlSvc.SavePetStatusWithProof(status, &proof); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save pet status")
	}

	recordProofAccepted(proof.ProofType)
	svc.invalidateStatusCache(petID)

	log.WithFields(log.Fields{"pet_id": petID, "owner": caller}).Info("Pet status updated")
	return status, nil
}

// RecordCareActivity appends to the history unconditionally. The vital-state
// record is only touched when it exists and belongs to the caller; otherwise
// the activity is logged with no ledger effect rather than failing.
func (svc *PetService) RecordCareActivity(petID, caller string, req dto.RecordCareActivityRequest) (*model.PetCareActivity, error) {
	proof := req.Proof.ToModel()
	if !svc.proofSvc.ValidateProof(&proof) {
		recordProofRejected(proof.ProofType)
		return nil, shared.NewUnprocessableError(fmt.Errorf("proof %s failed validation", proof.ID), "Invalid proof")
	}

	activity := &model.PetCareActivity{
		PetID:        petID,
		Owner:        caller,
		ActivityType: req.Activity.ActivityType,
		Timestamp:    time.Now().Unix(),
		Impact: model.ActivityImpact{
			HappinessChange:   req.Activity.Impact.HappinessChange,
			HungerChange:      req.Activity.Impact.HungerChange,
			EnergyChange:      req.Activity.Impact.EnergyChange,
			CleanlinessChange: req.Activity.Impact.CleanlinessChange,
		},
	}

	var updated *model.PetStatus
	status, err := svc.sqlSvc.GetPetStatus(petID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load pet status")
	}
	if err == nil && status.Owner == caller {
		status.Happiness = applyChange(status.Happiness, activity.Impact.HappinessChange)
		status.Hunger = applyChange(status.Hunger, activity.Impact.HungerChange)
		status.Energy = applyChange(status.Energy, activity.Impact.EnergyChange)
		status.Cleanliness = applyChange(status.Cleanliness, activity.Impact.CleanlinessChange)
		status.LastUpdated = activity.Timestamp
		status.CareStreak++
		updated = status
	}

	if err := svc.sqlSvc.SaveCareActivityWithProof(activity, updated, &proof); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to record care activity")
	}

	recordProofAccepted(proof.ProofType)
	recordCareActivity(activity.ActivityType)
	if updated != nil {
		svc.invalidateStatusCache(petID)
	}

	log.WithFields(log.Fields{
		"pet_id":        petID,
		"activity_type": activity.ActivityType,
		"owner":         caller,
		"applied":       updated != nil,
	}).Info("Care activity recorded")
	return activity, nil
}

// ProcessStatusDegradation overwrites with the degraded state verbatim. The
// caller must own the existing record; no clamping re-check is applied, the
// authorized caller's state is trusted.
func (svc *PetService) ProcessStatusDegradation(petID, caller string, req dto.ProcessDegradationRequest) (*model.PetStatus, error) {
	proof := req.Proof.ToModel()
	if !svc.proofSvc.ValidateProof(&proof) {
		recordProofRejected(proof.ProofType)
		return nil, shared.NewUnprocessableError(fmt.Errorf("proof %s failed validation", proof.ID), "Invalid proof")
	}

	current, err := svc.sqlSvc.GetPetStatus(petID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load pet status")
	}
	if err == nil && current.Owner != caller {
		return nil, shared.NewForbiddenError(fmt.Errorf("caller %s does not own pet %s", caller, petID), "Unauthorized")
	}

	status := &model.PetStatus{
		PetID:       petID,
		Owner:       req.NewStatus.Owner,
		Happiness:   req.NewStatus.Happiness,
		Hunger:      req.NewStatus.Hunger,
		Energy:      req.NewStatus.Energy,
		Cleanliness: req.NewStatus.Cleanliness,
		LastUpdated: req.NewStatus.LastUpdated,
		CareStreak:  req.NewStatus.CareStreak,
	}

	if err := svc.sqlSvc.SavePetStatusWithProof(status, &proof); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save degraded status")
	}

	recordProofAccepted(proof.ProofType)
	svc.invalidateStatusCache(petID)

	log.WithFields(log.Fields{"pet_id": petID, "caller": caller}).Info("Status degradation processed")
	return status, nil
}

func (svc *PetService) GetPetStatus(petID string) (*model.PetStatus, error) {
	if cached := svc.cachedStatus(petID); cached != nil {
		return cached, nil
	}

	status, err := svc.sqlSvc.GetPetStatus(petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Pet not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load pet status")
	}

	svc.cacheStatus(status)
	return status, nil
}

func (svc *PetService) GetCareHistory(petID string, limit int) ([]model.PetCareActivity, error) {
	if limit <= 0 {
		limit = shared.DefaultQueryLimit
	}

	activities, err := svc.sqlSvc.GetCareHistory(petID, limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load care history")
	}
	if activities == nil {
		activities = []model.PetCareActivity{}
	}
	return activities, nil
}

// ==================== STATUS CACHE ====================

func statusCacheKey(petID string) string {
	return "pet_status:" + petID
}

func (svc *PetService) cachedStatus(petID string) *model.PetStatus {
	if svc.redisSvc == nil {
		return nil
	}

	raw, err := svc.redisSvc.Get(context.Background(), statusCacheKey(petID))
	if err != nil || raw == "" {
		return nil
	}

	var status model.PetStatus
	if err := json.Unmarshal([]byte(raw), &status); err != nil {
		return nil
	}
	return &status
}

func (svc *PetService) cacheStatus(status *model.PetStatus) {
	if svc.redisSvc == nil {
		return
	}

	if err := svc.redisSvc.Set(context.Background(), statusCacheKey(status.PetID), status, petStatusCacheTTL); err != nil {
		log.WithError(err).WithField("pet_id", status.PetID).Warn("Failed to cache pet status")
	}
}

func (svc *PetService) invalidateStatusCache(petID string) {
	if svc.redisSvc == nil {
		return
	}

	if err := svc.redisSvc.Del(context.Background(), statusCacheKey(petID)); err != nil {
		log.WithError(err).WithField("pet_id", petID).Warn("Failed to invalidate pet status cache")
	}
}
