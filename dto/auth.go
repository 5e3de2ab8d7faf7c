package dto

type DevTokenRequest struct {
	Address string `json:"address" validate:"required"`
}

func (r DevTokenRequest) Validate() error {
	return validate.Struct(r)
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
