package dto

import "github.com/aayushman-singh/xion-pet-game/model"

type RequirementPayload struct {
	Trigger          string  `json:"trigger" validate:"required"`
	Threshold        uint64  `json:"threshold"`
	AdditionalParams *string `json:"additional_params,omitempty"`
}

type RewardPayload struct {
	RewardType string `json:"reward_type" validate:"required"`
	Value      string `json:"value"`
}

type RegisterAchievementRequest struct {
	ID           string               `json:"id" validate:"required"`
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description"`
	Category     string               `json:"category"`
	Requirements []RequirementPayload `json:"requirements" validate:"dive"`
	Reward       *RewardPayload       `json:"reward,omitempty"`
	Active       bool                 `json:"active"`
}

func (r RegisterAchievementRequest) Validate() error {
	return validate.Struct(r)
}

type SubmitAchievementProofRequest struct {
	Proof          ProofPayload `json:"proof" validate:"required"`
	SupportingData []byte       `json:"supporting_data,omitempty"`
}

func (r SubmitAchievementProofRequest) Validate() error {
	return validate.Struct(r)
}

// SubmitAchievementProofResponse surfaces the reward descriptor on
// completion; the ledger records the attribution but never disburses.
type SubmitAchievementProofResponse struct {
	AchievementID string        `json:"achievement_id"`
	User          string        `json:"user"`
	Progress      int           `json:"progress"`
	Completed     bool          `json:"completed"`
	CompletedAt   *int64        `json:"completed_at,omitempty"`
	ProofID       string        `json:"proof_id"`
	Reward        *model.Reward `json:"reward,omitempty"`
}
