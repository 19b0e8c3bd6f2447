package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

// DeliveryOrder is a customer request routed to a field distributor.
// Delivering it produces a Sale attributed to the assigned distributor.
type DeliveryOrder struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	AssignedTo *uuid.UUID        `gorm:"column:assigned_to;type:uuid"`
	Status     enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Lines      []types.OrderLine `gorm:"column:lines;type:jsonb;serializer:json"`
	Notes      *string           `gorm:"column:notes"`
	SaleID     *uuid.UUID        `gorm:"column:sale_id;type:uuid"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
