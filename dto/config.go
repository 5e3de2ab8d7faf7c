package dto

type UpdateConfigRequest struct {
	Admin               *string `json:"admin,omitempty"`
	AchievementContract *string `json:"achievement_contract,omitempty"`
	PetNFTContract      *string `json:"pet_nft_contract,omitempty"`
}

func (r UpdateConfigRequest) Validate() error {
	return validate.Struct(r)
}
