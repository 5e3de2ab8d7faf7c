package dto

// PetStatusPayload is the caller's proposed vital state. Owner and
// LastUpdated are accepted on the wire but the ledger always overwrites them
// with the authenticated caller and server time.
type PetStatusPayload struct {
	Owner       string `json:"owner"`
	Happiness   int    `json:"happiness" validate:"gte=0,lte=100"`
	Hunger      int    `json:"hunger" validate:"gte=0,lte=100"`
	Energy      int    `json:"energy" validate:"gte=0,lte=100"`
	Cleanliness int    `json:"cleanliness" validate:"gte=0,lte=100"`
	LastUpdated int64  `json:"last_updated"`
	CareStreak  int    `json:"care_streak" validate:"gte=0"`
}

type UpdatePetStatusRequest struct {
	Status PetStatusPayload `json:"status" validate:"required"`
	Proof  ProofPayload     `json:"proof" validate:"required"`
}

func (r UpdatePetStatusRequest) Validate() error {
	return validate.Struct(r)
}

type ImpactPayload struct {
	HappinessChange   int `json:"happiness_change"`
	HungerChange      int `json:"hunger_change"`
	EnergyChange      int `json:"energy_change"`
	CleanlinessChange int `json:"cleanliness_change"`
}

type CareActivityPayload struct {
	Owner        string        `json:"owner"`
	ActivityType string        `json:"activity_type" validate:"required,oneof=feed play clean rest"`
	Timestamp    int64         `json:"timestamp"`
	Impact       ImpactPayload `json:"impact"`
}

type RecordCareActivityRequest struct {
	Activity CareActivityPayload `json:"activity" validate:"required"`
	Proof    ProofPayload        `json:"proof" validate:"required"`
}

func (r RecordCareActivityRequest) Validate() error {
	return validate.Struct(r)
}

// ProcessDegradationRequest keeps the old status on the wire for interface
// fidelity with the off-chain degradation job; only the new status is stored.
type ProcessDegradationRequest struct {
	OldStatus PetStatusPayload `json:"old_status"`
	NewStatus PetStatusPayload `json:"new_status" validate:"required"`
	Proof     ProofPayload     `json:"proof" validate:"required"`
}

func (r ProcessDegradationRequest) Validate() error {
	return validate.Struct(r)
}
