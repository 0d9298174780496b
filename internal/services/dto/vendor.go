package dto

// VendorRegisterRequest is the vendor signup payload. The vendor code is
// assigned server-side.
type VendorRegisterRequest struct {
	Country   string `json:"country" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	PhoneCode string `json:"phoneCode" validate:"required"`
	Mobile    string `json:"mobile" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

type VendorLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VendorVerifyOtpRequest carries the code as a string; non-numeric input
// is treated as a plain mismatch, not a malformed request.
type VendorVerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required"`
}

type VendorResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TwoFactorToggleRequest enables or disables two-factor auth. Enable is a
// pointer so that an explicit false still passes required validation.
type TwoFactorToggleRequest struct {
	Enable *bool `json:"enable" validate:"required"`
}

// TwoFactorToggleResponse carries the setup code when enabling. The flag
// only flips after the code is verified.
type TwoFactorToggleResponse struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
	Otp              *int `json:"otp,omitempty"`
}

type TwoFactorVerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

type TwoFactorStatusResponse struct {
	TwoFactorEnabled bool `json:"twoFactorEnabled"`
	InactiveTimeout  int  `json:"inactiveTimeout"`
}

// VendorProfile is the vendor shape returned to clients. Secrets and OTP
// slots never leave the service layer.
type VendorProfile struct {
	ID              string `json:"id"`
	VendorID        string `json:"vendorId"`
	Country         string `json:"country"`
	Email           string `json:"email"`
	PhoneCode       string `json:"phoneCode"`
	Mobile          string `json:"mobile"`
	EmailVerified   bool   `json:"emailVerified"`
	MobileVerified  bool   `json:"mobileVerified"`
	AccountStatus   string `json:"accountStatus"`
	InactiveTimeout int    `json:"inactiveTimeout"`
}

// VendorAuthResponse is returned from OTP verification.
type VendorAuthResponse struct {
	Token  string         `json:"token"`
	Vendor *VendorProfile `json:"vendor"`
}
