package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

// CashOpening is one distributor's cash/inventory custody period. A partial
// unique index on (distributor_id) WHERE closed_at IS NULL guarantees at most
// one open session per distributor at insert time.
//
// OpeningCashAmount is immutable after creation; the only field ever updated
// is ClosedAt, set by the closing flow.
type CashOpening struct {
	ID                uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID     uuid.UUID               `gorm:"column:distributor_id;type:uuid;not null"`
	TruckID           *uuid.UUID              `gorm:"column:truck_id;type:uuid"`
	OpeningCashAmount decimal.Decimal         `gorm:"column:opening_cash_amount;type:numeric(12,2);not null"`
	InventorySnapshot types.InventorySnapshot `gorm:"column:inventory_snapshot;type:jsonb;serializer:json"`
	OpenedAt          time.Time               `gorm:"column:opened_at;not null"`
	ClosedAt          *time.Time              `gorm:"column:closed_at"`
	CreatedAt         time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

// IsClosed reports whether the session has been finalized.
func (c CashOpening) IsClosed() bool {
	return c.ClosedAt != nil
}
