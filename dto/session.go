package dto

type PetSwapPayload struct {
	FromPet   *string `json:"from_pet,omitempty"`
	ToPet     string  `json:"to_pet" validate:"required"`
	Height    uint64  `json:"height"`
	Timestamp int64   `json:"timestamp"`
}

type SessionPayload struct {
	SessionID  string           `json:"session_id" validate:"required"`
	Player     string           `json:"player"`
	PetIDs     []string         `json:"pet_ids"`
	StartTime  int64            `json:"start_time" validate:"required"`
	EndTime    *int64           `json:"end_time,omitempty"`
	MaxHeight  uint64           `json:"max_height"`
	FinalScore uint64           `json:"final_score"`
	PetSwaps   []PetSwapPayload `json:"pet_swaps" validate:"dive"`
	Completed  bool             `json:"completed"`
}

type RecordSessionRequest struct {
	Session SessionPayload `json:"session" validate:"required"`
	Proof   ProofPayload   `json:"proof" validate:"required"`
}

func (r RecordSessionRequest) Validate() error {
	return validate.Struct(r)
}
