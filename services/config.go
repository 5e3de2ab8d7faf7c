package services

import (
	"errors"
	"fmt"
	"os"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

// ConfigService owns the ledger config singleton: the admin principal and the
// optional collaborator contract addresses.
type ConfigService struct {
	context.DefaultService

	sqlSvc *PostgresService
}

const CONFIG_SVC = "config_svc"

func (svc ConfigService) Id() string {
	return CONFIG_SVC
}

func (svc *ConfigService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ConfigService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return svc.ensureConfig()
}

// ensureConfig seeds the singleton on first boot from the environment.
func (svc *ConfigService) ensureConfig() error {
	_, err := svc.sqlSvc.GetLedgerConfig()
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := os.Getenv("ADMIN_ADDRESS")
	if admin == "" {
		return fmt.Errorf("ADMIN_ADDRESS must be set on first boot")
	}

	config := &model.LedgerConfig{
		Admin:               admin,
		AchievementContract: optionalEnv("ACHIEVEMENT_CONTRACT_ADDR"),
		PetNFTContract:      optionalEnv("PET_NFT_CONTRACT_ADDR"),
	}

	if err := svc.sqlSvc.SaveLedgerConfig(config); err != nil {
		return err
	}

	log.WithField("admin", admin).Info("Seeded ledger config")
	return nil
}

func optionalEnv(key string) *string {
	if v := os.Getenv(key); v != "" {
		return &v
	}
	return nil
}

func (svc *ConfigService) GetConfig() (*model.LedgerConfig, error) {
	config, err := svc.sqlSvc.GetLedgerConfig()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Config not found")
		}
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to load config")
	}
	return config, nil
}

// RequireAdmin rejects any caller other than the configured admin principal.
func (svc *ConfigService) RequireAdmin(caller string) error {
	config, err := svc.GetConfig()
	if err != nil {
		return err
	}

	if caller != config.Admin {
		return shared.NewForbiddenError(fmt.Errorf("caller %s is not admin", caller), "Unauthorized")
	}

	return nil
}

// UpdateConfig applies a partial update; each field is optional. Admin only.
func (svc *ConfigService) UpdateConfig(caller string, req dto.UpdateConfigRequest) (*model.LedgerConfig, error) {
	if err := svc.RequireAdmin(caller); err != nil {
		return nil, err
	}

	config, err := svc.GetConfig()
	if err != nil {
		return nil, err
	}

	if req.Admin != nil {
		config.Admin = *req.Admin
	}
	if req.AchievementContract != nil {
		config.AchievementContract = req.AchievementContract
	}
	if req.PetNFTContract != nil {
		config.PetNFTContract = req.PetNFTContract
	}

	if err := svc.sqlSvc.SaveLedgerConfig(config); err != nil {
		return nil, shared.NewInternalError(svc.sqlSvc.HandleError(err), "Failed to save config")
	}

	log.WithFields(log.Fields{"admin": config.Admin, "caller": caller}).Info("Ledger config updated")
	return config, nil
}
