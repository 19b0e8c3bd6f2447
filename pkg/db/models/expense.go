package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
)

// Expense is a cash outflow recorded by a distributor during a route.
type Expense struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID uuid.UUID             `gorm:"column:distributor_id;type:uuid;not null"`
	Category      enums.ExpenseCategory `gorm:"column:category;type:text;not null;default:'other'"`
	Description   string                `gorm:"column:description;not null"`
	Amount        decimal.Decimal       `gorm:"column:amount;type:numeric(12,2);not null"`
	PaymentMethod enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null;default:'cash'"`
	ClosingID     *uuid.UUID            `gorm:"column:closing_id;type:uuid"`
	OccurredAt    time.Time             `gorm:"column:occurred_at;not null"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
}
