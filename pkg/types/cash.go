package types

import "github.com/google/uuid"

// DenominationCounts maps denomination id to the quantity counted at closing.
// Absent ids count as zero.
type DenominationCounts map[string]int64

// InventoryLine is one product row of a truck inventory snapshot.
type InventoryLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// InventorySnapshot is the truck load recorded when a cash session opens.
type InventorySnapshot []InventoryLine

// OrderLine is one requested product row of a delivery order.
type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}
