package models

import "time"

// Vendor is a store vendor account. The OTP slot (Otp/OtpExpiry) and the
// two-factor slot (TwoFactorCode/TwoFactorCodeExpiry) are each all-or-nothing:
// code and expiry are set together and cleared together.
type Vendor struct {
	BaseModel
	VendorID     string `gorm:"uniqueIndex;not null" json:"vendorId"`
	Country      string `gorm:"not null" json:"country"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PhoneCode    string `gorm:"not null" json:"phoneCode"`
	Mobile       string `gorm:"not null" json:"mobile"`
	PasswordHash string `gorm:"not null" json:"-"`

	EmailVerified  bool `gorm:"default:false" json:"emailVerified"`
	MobileVerified bool `gorm:"default:false" json:"mobileVerified"`

	Otp       *int       `json:"-"`
	OtpExpiry *time.Time `json:"-"`

	TwoFactorEnabled    bool       `gorm:"default:false" json:"twoFactorEnabled"`
	TwoFactorCode       *int       `json:"-"`
	TwoFactorCodeExpiry *time.Time `json:"-"`

	AccountStatus AccountStatus `gorm:"type:varchar(20);default:'Pending'" json:"accountStatus"`

	// Session inactivity timeout in minutes. The website enforces a
	// 30-minute floor for vendors.
	InactiveTimeout int `gorm:"default:30" json:"inactiveTimeout"`
}

func (Vendor) TableName() string { return "store_vendors" }
