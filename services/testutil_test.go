package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

const testAdmin = "xion1admin"

type testStack struct {
	sql         *PostgresService
	config      *ConfigService
	proof       *ProofService
	pet         *PetService
	session     *SessionService
	achievement *AchievementService
}

// newTestStack wires the service graph by hand against an isolated in-memory
// database, skipping the runtime context so each test owns its own state.
func newTestStack(t *testing.T) *testStack {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlSvc := &PostgresService{db: db}
	require.NoError(t, sqlSvc.Migrate())
	require.NoError(t, sqlSvc.SaveLedgerConfig(&model.LedgerConfig{Admin: testAdmin}))

	configSvc := &ConfigService{sqlSvc: sqlSvc}
	proofSvc := &ProofService{sqlSvc: sqlSvc, configSvc: configSvc}

	return &testStack{
		sql:         sqlSvc,
		config:      configSvc,
		proof:       proofSvc,
		pet:         &PetService{sqlSvc: sqlSvc, proofSvc: proofSvc, configSvc: configSvc},
		session:     &SessionService{sqlSvc: sqlSvc, proofSvc: proofSvc},
		achievement: &AchievementService{sqlSvc: sqlSvc, proofSvc: proofSvc, configSvc: configSvc},
	}
}

func validProof(id, proofType string) dto.ProofPayload {
	return dto.ProofPayload{
		ID:        id,
		ProofType: proofType,
		Signature: "sig-" + id,
		Timestamp: time.Now().Unix(),
		DataHash:  "hash-" + id,
	}
}

func requireAppError(t *testing.T, err error, statusCode int) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok, "expected AppError, got %T: %v", err, err)
	require.Equal(t, statusCode, appErr.StatusCode)
}
