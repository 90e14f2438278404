package dtos

import (
	"time"

	"github.com/iota-uz/authgate/pkg/constants"
)

// LoginRequest carries either username/password or phone/code credentials.
// Which pair is present decides the login flow; the validator only checks
// that one complete pair was sent.
type LoginRequest struct {
	Username string `json:"username" validate:"required_without=Phone"`
	Password string `json:"password" validate:"required_with=Username"`
	Phone    string `json:"phone" validate:"required_without=Username"`
	Code     string `json:"code" validate:"required_with=Phone"`
}

func (d *LoginRequest) Ok() (bool, error) {
	if err := constants.Validate.Struct(d); err != nil {
		return false, err
	}
	return true, nil
}

type SwitchOrgRequest struct {
	OrgID *uint `json:"orgId"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func NewTokenResponse(token string, expiresIn time.Duration) *TokenResponse {
	return &TokenResponse{
		Token:     token,
		ExpiresIn: int64(expiresIn.Seconds()),
	}
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
