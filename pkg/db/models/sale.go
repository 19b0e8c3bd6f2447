package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
)

// Sale records one delivery/counter sale by a distributor.
//
// AmountPaid is the cash-settled portion at sale time; for credit sales the
// remainder becomes customer receivable. ClosingID back-references the cash
// closing the sale was reconciled under, and stays null until then.
type Sale struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID uuid.UUID           `gorm:"column:distributor_id;type:uuid;not null"`
	CustomerID    *uuid.UUID          `gorm:"column:customer_id;type:uuid"`
	TruckID       *uuid.UUID          `gorm:"column:truck_id;type:uuid"`
	OrderID       *uuid.UUID          `gorm:"column:order_id;type:uuid"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	AmountPaid    decimal.Decimal     `gorm:"column:amount_paid;type:numeric(12,2);not null"`
	ClosingID     *uuid.UUID          `gorm:"column:closing_id;type:uuid"`
	OccurredAt    time.Time           `gorm:"column:occurred_at;not null"`
	Items         []SaleItem          `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// SaleItem is one product line of a sale.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID    uuid.UUID       `gorm:"column:sale_id;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
}
