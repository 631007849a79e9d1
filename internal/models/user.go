// internal/models/user.go
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User doubles as the commission ledger: the platform owner's running total
// lives on the single role=owner row, each seller's on their own row.
type User struct {
	BaseModel
	Email       string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role        UserRole        `json:"role" gorm:"type:varchar(20);default:'user';index"`
	TotalEarn   decimal.Decimal `json:"total_earn" gorm:"type:decimal(12,2);default:0"`
	ProfileData JSONB           `json:"profile_data,omitempty" gorm:"type:jsonb"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
}
