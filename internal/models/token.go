package models

import "time"

// InvalidatedToken is the revocation ledger. A row existing for a token
// string means the token is revoked regardless of its embedded expiry.
// Rows are prunable once ExpiresAt passes.
type InvalidatedToken struct {
	BaseModel
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expiresAt"`
}

func (InvalidatedToken) TableName() string { return "invalidated_tokens" }
