package models

import "time"

// User is a student/reader account. The table keeps the legacy columns
// written by earlier data imports (eliteid, shareid, student_id,
// email_address) next to the canonical ones; the identity resolver
// searches across all of them.
type User struct {
	BaseModel
	UserID string `json:"userId"`

	EliteID       string `gorm:"column:elite_id;index" json:"eliteId"`
	EliteIDLegacy string `gorm:"column:eliteid" json:"-"`

	ShareID       string `gorm:"column:share_id;index" json:"shareId"`
	ShareIDLegacy string `gorm:"column:shareid" json:"-"`
	StudentID     string `gorm:"column:student_id" json:"-"`

	Email       string `gorm:"index" json:"email"`
	EmailLegacy string `gorm:"column:email_address" json:"-"`

	PasswordHash string `gorm:"not null" json:"-"`

	EmailVerified bool `gorm:"default:false" json:"emailVerified"`

	Otp       *int       `json:"-"`
	OtpExpiry *time.Time `json:"-"`

	// Session inactivity timeout in minutes. Unlike vendors there is no
	// enforced floor for users.
	SessionInactiveTimeout int `gorm:"default:30" json:"sessionInactiveTimeout"`

	AccountStatus AccountStatus `gorm:"type:varchar(20);default:'Active'" json:"accountStatus"`
}

// TableName keeps the historical collection name of the student records.
func (User) TableName() string { return "students" }

// Legacy rows may have a value only in the old column. These accessors
// prefer the canonical column and fall back.

func (u *User) PrimaryEliteID() string {
	if u.EliteID != "" {
		return u.EliteID
	}
	return u.EliteIDLegacy
}

func (u *User) PrimaryShareID() string {
	if u.ShareID != "" {
		return u.ShareID
	}
	if u.ShareIDLegacy != "" {
		return u.ShareIDLegacy
	}
	return u.StudentID
}

func (u *User) DeliveryEmail() string {
	if u.Email != "" {
		return u.Email
	}
	return u.EmailLegacy
}
