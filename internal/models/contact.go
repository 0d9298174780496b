package models

// Contact is a support message submitted by an authenticated vendor or user.
type Contact struct {
	BaseModel
	AccountID       string        `gorm:"not null;index" json:"accountId"`
	AccountVariant  string        `gorm:"type:varchar(10);not null" json:"accountVariant"` // "vendor" or "user"
	Email           string        `json:"email"`
	FullName        string        `json:"fullName"`
	MessageCategory string        `gorm:"not null" json:"messageCategory"`
	Message         string        `gorm:"not null" json:"message"`
	Status          ContactStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`
}

func (Contact) TableName() string { return "contacts" }
