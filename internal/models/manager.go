package models

import "time"

// Manager holds an administrative account with its activation code.
type Manager struct {
	BaseModel
	AdminID        string      `gorm:"not null" json:"adminId"`
	Name           string      `gorm:"not null" json:"name"`
	PhoneNumber    string      `gorm:"not null" json:"phoneNumber"`
	Email          string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string      `gorm:"not null" json:"-"`
	Country        string      `gorm:"not null" json:"country"`
	ActivationCode string      `gorm:"uniqueIndex;not null" json:"-"`
	Expiry         time.Time   `gorm:"not null" json:"expiry"`
	Role           ManagerRole `gorm:"type:varchar(20);not null" json:"role"`
}

func (Manager) TableName() string { return "managers" }
