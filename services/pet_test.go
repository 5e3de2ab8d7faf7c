package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

func TestApplyChange(t *testing.T) {
	tests := []struct {
		name    string
		current int
		change  int
		want    int
	}{
		{"no change", 50, 0, 50},
		{"simple increase", 50, 10, 60},
		{"simple decrease", 50, -10, 40},
		{"clamped at ceiling", 95, 20, 100},
		{"already at ceiling", 100, 5, 100},
		{"clamped at floor", 5, -20, 0},
		{"already at floor", 0, -5, 0},
		{"large negative on low counter", 3, -1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyChange(tt.current, tt.change))
		})
	}
}

func TestUpdatePetStatus(t *testing.T) {
	stack := newTestStack(t)

	status, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50, Hunger: 40, Energy: 70, Cleanliness: 80},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	assert.Equal(t, "rex", status.PetID)
	assert.Equal(t, "xion1alice", status.Owner)
	assert.Equal(t, 50, status.Happiness)
	assert.InDelta(t, time.Now().Unix(), status.LastUpdated, 5)

	stored, err := stack.pet.GetPetStatus("rex")
	require.NoError(t, err)
	assert.Equal(t, "xion1alice", stored.Owner)
	assert.Equal(t, 40, stored.Hunger)

	proof, err := stack.proof.GetProof("proof-1")
	require.NoError(t, err)
	assert.Equal(t, shared.ProofTypePetStatus, proof.ProofType)
}

func TestUpdatePetStatusOverwritesDeclaredOwner(t *testing.T) {
	stack := newTestStack(t)

	status, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Owner: "xion1somebodyelse", Happiness: 50},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)
	assert.Equal(t, "xion1alice", status.Owner)
}

func TestUpdatePetStatusReclaim(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	// A second caller may claim the same pet id outright.
	status, err := stack.pet.UpdatePetStatus("rex", "xion1bob", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 20},
		Proof:  validProof("proof-2", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)
	assert.Equal(t, "xion1bob", status.Owner)

	stored, err := stack.pet.GetPetStatus("rex")
	require.NoError(t, err)
	assert.Equal(t, "xion1bob", stored.Owner)
	assert.Equal(t, 20, stored.Happiness)
}

func TestUpdatePetStatusInvalidProof(t *testing.T) {
	stack := newTestStack(t)

	proof := validProof("proof-1", shared.ProofTypePetStatus)
	proof.Signature = ""

	_, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50},
		Proof:  proof,
	})
	requireAppError(t, err, 422)

	_, err = stack.pet.GetPetStatus("rex")
	requireAppError(t, err, 404)

	_, err = stack.proof.GetProof("proof-1")
	requireAppError(t, err, 404)
}

func TestRecordCareActivityAppliesImpact(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50, Hunger: 40, Energy: 70, Cleanliness: 80},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	activity, err := stack.pet.RecordCareActivity("rex", "xion1alice", dto.RecordCareActivityRequest{
		Activity: dto.CareActivityPayload{
			ActivityType: shared.ActivityFeed,
			Impact:       dto.ImpactPayload{HappinessChange: 10, HungerChange: -20},
		},
		Proof: validProof("proof-2", shared.ProofTypePetCare),
	})
	require.NoError(t, err)
	assert.Equal(t, shared.ActivityFeed, activity.ActivityType)
	assert.Equal(t, "xion1alice", activity.Owner)

	status, err := stack.pet.GetPetStatus("rex")
	require.NoError(t, err)
	assert.Equal(t, 60, status.Happiness)
	assert.Equal(t, 20, status.Hunger)
	assert.Equal(t, 70, status.Energy)
	assert.Equal(t, 1, status.CareStreak)

	history, err := stack.pet.GetCareHistory("rex", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, shared.ActivityFeed, history[0].ActivityType)
	assert.Equal(t, 10, history[0].Impact.HappinessChange)
}

func TestRecordCareActivityNonOwnerLogsOnly(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	_, err = stack.pet.RecordCareActivity("rex", "xion1bob", dto.RecordCareActivityRequest{
		Activity: dto.CareActivityPayload{
			ActivityType: shared.ActivityPlay,
			Impact:       dto.ImpactPayload{HappinessChange: 10},
		},
		Proof: validProof("proof-2", shared.ProofTypePetCare),
	})
	require.NoError(t, err)

	// The counters stay untouched but the history keeps the entry.
	status, err := stack.pet.GetPetStatus("rex")
	require.NoError(t, err)
	assert.Equal(t, 50, status.Happiness)
	assert.Equal(t, 0, status.CareStreak)

	history, err := stack.pet.GetCareHistory("rex", 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "xion1bob", history[0].Owner)
}

func TestRecordCareActivityUnknownPet(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.RecordCareActivity("ghost", "xion1alice", dto.RecordCareActivityRequest{
		Activity: dto.CareActivityPayload{
			ActivityType: shared.ActivityClean,
			Impact:       dto.ImpactPayload{CleanlinessChange: 30},
		},
		Proof: validProof("proof-1", shared.ProofTypePetCare),
	})
	require.NoError(t, err)

	history, err := stack.pet.GetCareHistory("ghost", 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = stack.pet.GetPetStatus("ghost")
	requireAppError(t, err, 404)
}

func TestRecordCareActivityInvalidProof(t *testing.T) {
	stack := newTestStack(t)

	proof := validProof("proof-1", shared.ProofTypePetCare)
	proof.DataHash = ""

	_, err := stack.pet.RecordCareActivity("rex", "xion1alice", dto.RecordCareActivityRequest{
		Activity: dto.CareActivityPayload{ActivityType: shared.ActivityRest},
		Proof:    proof,
	})
	requireAppError(t, err, 422)

	history, err := stack.pet.GetCareHistory("rex", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestProcessStatusDegradation(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50, Hunger: 40},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	degraded, err := stack.pet.ProcessStatusDegradation("rex", "xion1alice", dto.ProcessDegradationRequest{
		NewStatus: dto.PetStatusPayload{Owner: "xion1alice", Happiness: 30, Hunger: 60, LastUpdated: 1700000000},
		Proof:     validProof("proof-2", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	// The degraded state is stored verbatim, caller timestamp included.
	assert.Equal(t, 30, degraded.Happiness)
	assert.Equal(t, int64(1700000000), degraded.LastUpdated)

	stored, err := stack.pet.GetPetStatus("rex")
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Happiness)
	assert.Equal(t, 60, stored.Hunger)
}

func TestProcessStatusDegradationNonOwner(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.UpdatePetStatus("rex", "xion1alice", dto.UpdatePetStatusRequest{
		Status: dto.PetStatusPayload{Happiness: 50},
		Proof:  validProof("proof-1", shared.ProofTypePetStatus),
	})
	require.NoError(t, err)

	_, err = stack.pet.ProcessStatusDegradation("rex", "xion1bob", dto.ProcessDegradationRequest{
		NewStatus: dto.PetStatusPayload{Happiness: 10},
		Proof:     validProof("proof-2", shared.ProofTypePetStatus),
	})
	requireAppError(t, err, 403)

	stored, err := stack.pet.GetPetStatus("rex")
	require.NoError(t, err)
	assert.Equal(t, 50, stored.Happiness)
}

func TestGetPetStatusNotFound(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.pet.GetPetStatus("missing")
	requireAppError(t, err, 404)
}

func TestGetCareHistoryEmpty(t *testing.T) {
	stack := newTestStack(t)

	history, err := stack.pet.GetCareHistory("missing", 0)
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
