package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/model"
)

type PetServiceInterface interface {
	UpdatePetStatus(petID, caller string, req dto.UpdatePetStatusRequest) (*model.PetStatus, error)
	RecordCareActivity(petID, caller string, req dto.RecordCareActivityRequest) (*model.PetCareActivity, error)
	ProcessStatusDegradation(petID, caller string, req dto.ProcessDegradationRequest) (*model.PetStatus, error)
	GetPetStatus(petID string) (*model.PetStatus, error)
	GetCareHistory(petID string, limit int) ([]model.PetCareActivity, error)
}

type SessionServiceInterface interface {
	RecordGameSession(caller string, req dto.RecordSessionRequest) (*model.GameSession, error)
	GetSession(sessionID string) (*model.GameSession, error)
	GetSessionsByPlayer(player string, limit int) ([]model.GameSession, error)
}

type AchievementServiceInterface interface {
	RegisterAchievement(caller string, req dto.RegisterAchievementRequest) (*model.Achievement, error)
	SubmitAchievementProof(achievementID, caller string, req dto.SubmitAchievementProofRequest) (*dto.SubmitAchievementProofResponse, error)
	GetAchievement(id string) (*model.Achievement, error)
	GetAllAchievements() ([]model.Achievement, error)
	GetUserAchievement(user, achievementID string) (*model.UserAchievement, error)
	GetUserAchievements(user string) ([]model.UserAchievement, error)
}

type ProofServiceInterface interface {
	GetProof(proofID string) (*model.ZkTLSProof, error)
	MarkVerified(proofID, caller string) (*model.ZkTLSProof, error)
}

type ConfigServiceInterface interface {
	GetConfig() (*model.LedgerConfig, error)
	UpdateConfig(caller string, req dto.UpdateConfigRequest) (*model.LedgerConfig, error)
}

type JWTServiceInterface interface {
	GenerateTokenPair(address string) (*dto.TokenPair, error)
}

type AuthServiceInterface interface {
	RequiredAuth() fiber.Handler
	RequireAdmin() fiber.Handler
}
