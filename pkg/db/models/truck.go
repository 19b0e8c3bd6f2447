package models

import (
	"time"

	"github.com/google/uuid"
)

// Truck is a delivery vehicle assigned to distributors.
type Truck struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Plate     string           `gorm:"column:plate;not null;uniqueIndex"`
	Label     string           `gorm:"column:label;not null"`
	Capacity  int              `gorm:"column:capacity;not null;default:0"`
	Active    bool             `gorm:"column:active;not null;default:true"`
	Stock     []TruckStockItem `gorm:"foreignKey:TruckID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TruckStockItem is the current on-truck quantity of one product.
type TruckStockItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TruckID   uuid.UUID `gorm:"column:truck_id;type:uuid;not null;uniqueIndex:truck_stock_truck_product_idx"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:truck_stock_truck_product_idx"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
