package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

// CashClosing is the reconciliation record that terminates a CashOpening.
// The unique index on opening_id enforces the 1:1 session-closing ownership.
type CashClosing struct {
	ID                        uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OpeningID                 uuid.UUID                    `gorm:"column:opening_id;type:uuid;not null;uniqueIndex:cash_closings_opening_idx"`
	DistributorID             uuid.UUID                    `gorm:"column:distributor_id;type:uuid;not null"`
	TotalCashSales            decimal.Decimal              `gorm:"column:total_cash_sales;type:numeric(12,2);not null"`
	TotalCashPaymentsReceived decimal.Decimal              `gorm:"column:total_cash_payments_received;type:numeric(12,2);not null"`
	TotalCashExpenses         decimal.Decimal              `gorm:"column:total_cash_expenses;type:numeric(12,2);not null"`
	ExpectedCash              decimal.Decimal              `gorm:"column:expected_cash;type:numeric(12,2);not null"`
	CountedCash               decimal.Decimal              `gorm:"column:counted_cash;type:numeric(12,2);not null"`
	Variance                  decimal.Decimal              `gorm:"column:variance;type:numeric(12,2);not null"`
	Classification            enums.VarianceClassification `gorm:"column:classification;type:text;not null"`
	DenominationCounts        types.DenominationCounts     `gorm:"column:denomination_counts;type:jsonb;serializer:json"`
	SignatureBlob             string                       `gorm:"column:signature_blob;not null"`
	Comments                  *string                      `gorm:"column:comments"`
	ClosedAt                  time.Time                    `gorm:"column:closed_at;not null"`
	CreatedAt                 time.Time                    `gorm:"column:created_at;autoCreateTime"`
}
