package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushman-singh/xion-pet-game/dto"
	"github.com/aayushman-singh/xion-pet-game/model"
	"github.com/aayushman-singh/xion-pet-game/shared"
)

func registerTestAchievement(t *testing.T, stack *testStack, id string, active bool) *model.Achievement {
	t.Helper()

	achievement, err := stack.achievement.RegisterAchievement(testAdmin, dto.RegisterAchievementRequest{
		ID:          id,
		Title:       "Dedicated Caretaker",
		Description: "Keep a pet happy for a week",
		Category:    "care",
		Requirements: []dto.RequirementPayload{
			{Trigger: "care_streak", Threshold: 7},
		},
		Reward: &dto.RewardPayload{RewardType: "badge", Value: "caretaker_gold"},
		Active: active,
	})
	require.NoError(t, err)
	return achievement
}

func TestRegisterAchievement(t *testing.T) {
	stack := newTestStack(t)

	achievement := registerTestAchievement(t, stack, "ach-1", true)
	assert.Equal(t, "ach-1", achievement.ID)

	stored, err := stack.achievement.GetAchievement("ach-1")
	require.NoError(t, err)
	assert.Equal(t, "Dedicated Caretaker", stored.Title)
	assert.True(t, stored.Active)

	var requirements []model.AchievementRequirement
	require.NoError(t, json.Unmarshal(stored.Requirements, &requirements))
	require.Len(t, requirements, 1)
	assert.Equal(t, uint64(7), requirements[0].Threshold)

	var reward model.Reward
	require.NoError(t, json.Unmarshal(stored.Reward, &reward))
	assert.Equal(t, "badge", reward.RewardType)
}

func TestRegisterAchievementNonAdmin(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.achievement.RegisterAchievement("xion1nobody", dto.RegisterAchievementRequest{
		ID:    "ach-1",
		Title: "Nope",
	})
	requireAppError(t, err, 403)
}

func TestRegisterAchievementReplace(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", true)

	_, err := stack.achievement.RegisterAchievement(testAdmin, dto.RegisterAchievementRequest{
		ID:     "ach-1",
		Title:  "Dedicated Caretaker II",
		Active: false,
	})
	require.NoError(t, err)

	stored, err := stack.achievement.GetAchievement("ach-1")
	require.NoError(t, err)
	assert.Equal(t, "Dedicated Caretaker II", stored.Title)
	assert.False(t, stored.Active)

	all, err := stack.achievement.GetAllAchievements()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSubmitAchievementProofUnknownAchievement(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.achievement.SubmitAchievementProof("missing", "xion1alice", dto.SubmitAchievementProofRequest{
		Proof: validProof("proof-1", shared.ProofTypePetCare),
	})
	requireAppError(t, err, 404)
}

func TestSubmitAchievementProofInactive(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", false)

	_, err := stack.achievement.SubmitAchievementProof("ach-1", "xion1alice", dto.SubmitAchievementProofRequest{
		Proof: validProof("proof-1", shared.ProofTypePetCare),
	})
	requireAppError(t, err, 400)
}

func TestSubmitAchievementProofInvalidProof(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", true)

	proof := validProof("proof-1", shared.ProofTypePetCare)
	proof.DataHash = ""

	_, err := stack.achievement.SubmitAchievementProof("ach-1", "xion1alice", dto.SubmitAchievementProofRequest{Proof: proof})
	requireAppError(t, err, 422)

	_, err = stack.achievement.GetUserAchievement("xion1alice", "ach-1")
	requireAppError(t, err, 404)
}

func TestSubmitAchievementProofCompletes(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", true)

	resp, err := stack.achievement.SubmitAchievementProof("ach-1", "xion1alice", dto.SubmitAchievementProofRequest{
		Proof: validProof("proof-1", shared.ProofTypePetCare),
	})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.Progress)
	assert.True(t, resp.Completed)
	require.NotNil(t, resp.CompletedAt)
	assert.InDelta(t, time.Now().Unix(), *resp.CompletedAt, 5)
	require.NotNil(t, resp.Reward)
	assert.Equal(t, "badge", resp.Reward.RewardType)

	ua, err := stack.achievement.GetUserAchievement("xion1alice", "ach-1")
	require.NoError(t, err)
	assert.True(t, ua.Completed)
	require.NotNil(t, ua.ProofID)
	assert.Equal(t, "proof-1", *ua.ProofID)
}

func TestSubmitAchievementProofUnknownCategory(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", true)

	resp, err := stack.achievement.SubmitAchievementProof("ach-1", "xion1alice", dto.SubmitAchievementProofRequest{
		Proof: validProof("proof-1", "weather_report"),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Progress)
	assert.False(t, resp.Completed)
	assert.Nil(t, resp.CompletedAt)
	assert.Nil(t, resp.Reward)
}

func TestSubmitAchievementProofCompletionTimestampWrittenOnce(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", true)

	_, err := stack.achievement.SubmitAchievementProof("ach-1", "xion1alice", dto.SubmitAchievementProofRequest{
		Proof: validProof("proof-1", shared.ProofTypePetCare),
	})
	require.NoError(t, err)

	// Backdate the stored completion time so a resubmission either keeps it
	// or visibly overwrites it.
	ua, err := stack.achievement.GetUserAchievement("xion1alice", "ach-1")
	require.NoError(t, err)
	past := int64(1600000000)
	ua.CompletedAt = &past
	require.NoError(t, stack.sql.db.Save(ua).Error)

	resp, err := stack.achievement.SubmitAchievementProof("ach-1", "xion1alice", dto.SubmitAchievementProofRequest{
		Proof: validProof("proof-2", shared.ProofTypeGameSession),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.CompletedAt)
	assert.Equal(t, past, *resp.CompletedAt)

	ua, err = stack.achievement.GetUserAchievement("xion1alice", "ach-1")
	require.NoError(t, err)
	require.NotNil(t, ua.ProofID)
	assert.Equal(t, "proof-2", *ua.ProofID)
	require.NotNil(t, ua.CompletedAt)
	assert.Equal(t, past, *ua.CompletedAt)
}

func TestGetUserAchievements(t *testing.T) {
	stack := newTestStack(t)

	registerTestAchievement(t, stack, "ach-1", true)
	registerTestAchievement(t, stack, "ach-2", true)

	for _, id := range []string{"ach-1", "ach-2"} {
		_, err := stack.achievement.SubmitAchievementProof(id, "xion1alice", dto.SubmitAchievementProofRequest{
			Proof: validProof("proof-"+id, shared.ProofTypePetCare),
		})
		require.NoError(t, err)
	}

	uas, err := stack.achievement.GetUserAchievements("xion1alice")
	require.NoError(t, err)
	assert.Len(t, uas, 2)

	empty, err := stack.achievement.GetUserAchievements("xion1bob")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
