package dto

// OtpIssuedResponse echoes the issued code. Existing clients read the
// code from the response; e-mail delivery is best effort on top.
type OtpIssuedResponse struct {
	Otp int `json:"otp"`
}

// SessionTimeoutRequest sets the inactivity timeout in minutes.
type SessionTimeoutRequest struct {
	Timeout int `json:"timeout" validate:"required,min=1"`
}

type SessionTimeoutResponse struct {
	Timeout int `json:"timeout"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type ContactRequest struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email" validate:"omitempty,email"`
	MessageCategory string `json:"messageCategory" validate:"required"`
	Message         string `json:"message" validate:"required,max=1000"`
}

type VerifyActivationCodeRequest struct {
	ActivationCode string `json:"activationCode" validate:"required"`
}

type ManagerActivationResponse struct {
	AdminID string `json:"adminId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}
