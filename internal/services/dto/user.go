package dto

import (
	"encoding/json"

	"ehandout_backend/internal/identity"
)

// UserLoginRequest is the student login payload. The identifier may come
// under any accepted alias key, so decoding goes through
// identity.Identifiers rather than plain struct tags.
type UserLoginRequest struct {
	Identifiers identity.Identifiers `json:"-"`
	Password    string               `json:"password"`
}

func (r *UserLoginRequest) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Identifiers); err != nil {
		return err
	}
	var aux struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Password = aux.Password
	return nil
}

type UserVerifyOtpRequest struct {
	Identifiers identity.Identifiers `json:"-"`
	Otp         string               `json:"-"`
}

func (r *UserVerifyOtpRequest) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.Identifiers); err != nil {
		return err
	}
	var aux struct {
		Otp string `json:"otp"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Otp = aux.Otp
	return nil
}

type UserResendOtpRequest struct {
	Identifiers identity.Identifiers `json:"-"`
}

func (r *UserResendOtpRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Identifiers)
}

// UserProfile is the student shape returned to clients.
type UserProfile struct {
	ID                     string `json:"id"`
	UserID                 string `json:"userId"`
	EliteID                string `json:"eliteId"`
	ShareID                string `json:"shareId"`
	Email                  string `json:"email"`
	EmailVerified          bool   `json:"emailVerified"`
	AccountStatus          string `json:"accountStatus"`
	SessionInactiveTimeout int    `json:"sessionInactiveTimeout"`
}

type UserLoginResponse struct {
	Token string       `json:"token,omitempty"`
	User  *UserProfile `json:"user,omitempty"`
}
