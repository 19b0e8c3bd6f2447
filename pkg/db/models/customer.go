package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is a delivery client. CreditBalance tracks the outstanding
// receivable owed by the customer.
type Customer struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string          `gorm:"column:name;not null"`
	Phone         *string         `gorm:"column:phone"`
	Address       *string         `gorm:"column:address"`
	Notes         *string         `gorm:"column:notes"`
	CreditBalance decimal.Decimal `gorm:"column:credit_balance;type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
