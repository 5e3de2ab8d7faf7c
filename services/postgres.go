package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/aayushman-singh/xion-pet-game/model"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "pet_game"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	return ds.Migrate()
}

func (ds *PostgresService) Migrate() error {
	err := ds.db.AutoMigrate(
		&model.LedgerConfig{},
		&model.PetStatus{},
		&model.PetCareActivity{},
		&model.GameSession{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.ZkTLSProof{},
	)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound // 404
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict // 409
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest // 400
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError // 500
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			statusCode = http.StatusConflict // 409
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "relation") && strings.Contains(err.Error(), "does not exist") {
			statusCode = http.StatusInternalServerError // 500
			errorType = "SCHEMA_ERROR"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable // 503
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError // 500
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== LEDGER CONFIG ====================

func (ds *PostgresService) GetLedgerConfig() (*model.LedgerConfig, error) {
	var config model.LedgerConfig
	if err := ds.db.Where("id = ?", model.LedgerConfigID).First(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (ds *PostgresService) SaveLedgerConfig(config *model.LedgerConfig) error {
	config.ID = model.LedgerConfigID
	return ds.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(config).Error
}

// ==================== PROOFS ====================

// SaveProof overwrites by proof id: the proof registry is global across every
// sub-ledger and last-write-wins.
func (ds *PostgresService) SaveProof(proof *model.ZkTLSProof) error {
	return saveProof(ds.db, proof)
}

func saveProof(tx *gorm.DB, proof *model.ZkTLSProof) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(proof).Error
}

func (ds *PostgresService) GetProof(proofID string) (*model.ZkTLSProof, error) {
	var proof model.ZkTLSProof
	if err := ds.db.Where("id = ?", proofID).First(&proof).Error; err != nil {
		return nil, err
	}
	return &proof, nil
}

// ==================== PET STATUS ====================

func (ds *PostgresService) GetPetStatus(petID string) (*model.PetStatus, error) {
	var status model.PetStatus
	if err := ds.db.Where("pet_id = ?", petID).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// SavePetStatusWithProof commits a whole-record status overwrite and the
// gating proof as one transaction.
func (ds *PostgresService) SavePetStatusWithProof(status *model.PetStatus, proof *model.ZkTLSProof) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(status).Error; err != nil {
			return err
		}
		return saveProof(tx, proof)
	})
}

// SaveCareActivityWithProof appends the history row, optionally applies the
// updated status (nil when the activity had no ledger effect), and stores the
// proof, all or nothing.
func (ds *PostgresService) SaveCareActivityWithProof(activity *model.PetCareActivity, status *model.PetStatus, proof *model.ZkTLSProof) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(activity).Error; err != nil {
			return err
		}
		if status != nil {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(status).Error; err != nil {
				return err
			}
		}
		return saveProof(tx, proof)
	})
}

func (ds *PostgresService) GetCareHistory(petID string, limit int) ([]model.PetCareActivity, error) {
	var activities []model.PetCareActivity
	err := ds.db.
		Where("pet_id = ?", petID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

// ==================== GAME SESSIONS ====================

func (ds *PostgresService) SaveSessionWithProof(session *model.GameSession, proof *model.ZkTLSProof) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(session).Error; err != nil {
			return err
		}
		return saveProof(tx, proof)
	})
}

func (ds *PostgresService) GetSession(sessionID string) (*model.GameSession, error) {
	var session model.GameSession
	if err := ds.db.Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (ds *PostgresService) GetSessionsByPlayer(player string, limit int) ([]model.GameSession, error) {
	var sessions []model.GameSession
	err := ds.db.
		Where("player = ?", player).
		Order("updated_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// ==================== ACHIEVEMENTS ====================

func (ds *PostgresService) SaveAchievement(achievement *model.Achievement) error {
	return ds.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(achievement).Error
}

func (ds *PostgresService) GetAchievement(id string) (*model.Achievement, error) {
	var achievement model.Achievement
	if err := ds.db.Where("id = ?", id).First(&achievement).Error; err != nil {
		return nil, err
	}
	return &achievement, nil
}

func (ds *PostgresService) GetAllAchievements() ([]model.Achievement, error) {
	var achievements []model.Achievement
	if err := ds.db.Order("id ASC").Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}

func (ds *PostgresService) GetUserAchievement(user, achievementID string) (*model.UserAchievement, error) {
	var ua model.UserAchievement
	if err := ds.db.Where("\"user\" = ? AND achievement_id = ?", user, achievementID).First(&ua).Error; err != nil {
		return nil, err
	}
	return &ua, nil
}

func (ds *PostgresService) GetUserAchievements(user string) ([]model.UserAchievement, error) {
	var uas []model.UserAchievement
	err := ds.db.
		Where("\"user\" = ?", user).
		Order("achievement_id ASC").
		Find(&uas).Error
	if err != nil {
		return nil, err
	}
	return uas, nil
}

func (ds *PostgresService) SaveUserAchievementWithProof(ua *model.UserAchievement, proof *model.ZkTLSProof) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := saveProof(tx, proof); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(ua).Error
	})
}
