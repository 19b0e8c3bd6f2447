package cashregister

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

// Denomination is one fixed catalog entry. Face values may repeat across
// kinds: a 20-peso coin and a 20-peso bill are distinct denominations.
type Denomination struct {
	ID        string                 `json:"id"`
	FaceValue decimal.Decimal        `json:"face_value"`
	Kind      enums.DenominationKind `json:"kind"`
	Label     string                 `json:"label"`
}

// Catalog is an injected, read-only set of denominations. It is passed into
// the service rather than held as a package singleton so tests can substitute
// alternate currency catalogs.
type Catalog struct {
	denominations []Denomination
	byID          map[string]Denomination
}

// NewCatalog validates and freezes a denomination list.
func NewCatalog(denominations []Denomination) (Catalog, error) {
	byID := make(map[string]Denomination, len(denominations))
	for _, d := range denominations {
		if d.ID == "" {
			return Catalog{}, fmt.Errorf("denomination id must not be empty")
		}
		if !d.Kind.IsValid() {
			return Catalog{}, fmt.Errorf("denomination %s: invalid kind %q", d.ID, d.Kind)
		}
		if !d.FaceValue.IsPositive() {
			return Catalog{}, fmt.Errorf("denomination %s: face value must be positive", d.ID)
		}
		if _, dup := byID[d.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate denomination id %s", d.ID)
		}
		byID[d.ID] = d
	}
	frozen := make([]Denomination, len(denominations))
	copy(frozen, denominations)
	return Catalog{denominations: frozen, byID: byID}, nil
}

// DefaultCatalog returns the MXN coin/bill catalog in ascending face order.
func DefaultCatalog() Catalog {
	mk := func(id string, face string, kind enums.DenominationKind, label string) Denomination {
		return Denomination{
			ID:        id,
			FaceValue: decimal.RequireFromString(face),
			Kind:      kind,
			Label:     label,
		}
	}
	catalog, err := NewCatalog([]Denomination{
		mk("coin-0.50", "0.50", enums.DenominationKindCoin, "$0.50 coin"),
		mk("coin-1", "1.00", enums.DenominationKindCoin, "$1 coin"),
		mk("coin-2", "2.00", enums.DenominationKindCoin, "$2 coin"),
		mk("coin-5", "5.00", enums.DenominationKindCoin, "$5 coin"),
		mk("coin-10", "10.00", enums.DenominationKindCoin, "$10 coin"),
		mk("coin-20", "20.00", enums.DenominationKindCoin, "$20 coin"),
		mk("bill-20", "20.00", enums.DenominationKindBill, "$20 bill"),
		mk("bill-50", "50.00", enums.DenominationKindBill, "$50 bill"),
		mk("bill-100", "100.00", enums.DenominationKindBill, "$100 bill"),
		mk("bill-200", "200.00", enums.DenominationKindBill, "$200 bill"),
		mk("bill-500", "500.00", enums.DenominationKindBill, "$500 bill"),
		mk("bill-1000", "1000.00", enums.DenominationKindBill, "$1000 bill"),
	})
	if err != nil {
		panic(err)
	}
	return catalog
}

// Denominations returns the ordered catalog entries.
func (c Catalog) Denominations() []Denomination {
	out := make([]Denomination, len(c.denominations))
	copy(out, c.denominations)
	return out
}

// ComputeTotal sums quantity times face value over the catalog. Denominations
// absent from counts contribute zero; ids unknown to the catalog are ignored.
func (c Catalog) ComputeTotal(counts types.DenominationCounts) decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.denominations {
		qty := counts[d.ID]
		if qty == 0 {
			continue
		}
		total = total.Add(d.FaceValue.Mul(decimal.NewFromInt(qty)))
	}
	return total
}

// SubtotalsByKind partitions the counted total into coin and bill subtotals.
type KindSubtotals struct {
	Coin decimal.Decimal `json:"coin"`
	Bill decimal.Decimal `json:"bill"`
}

func (c Catalog) SubtotalsByKind(counts types.DenominationCounts) KindSubtotals {
	sub := KindSubtotals{Coin: decimal.Zero, Bill: decimal.Zero}
	for _, d := range c.denominations {
		qty := counts[d.ID]
		if qty == 0 {
			continue
		}
		amount := d.FaceValue.Mul(decimal.NewFromInt(qty))
		switch d.Kind {
		case enums.DenominationKindCoin:
			sub.Coin = sub.Coin.Add(amount)
		case enums.DenominationKindBill:
			sub.Bill = sub.Bill.Add(amount)
		}
	}
	return sub
}

// ValidateCounts rejects negative quantities and ids outside the catalog.
func (c Catalog) ValidateCounts(counts types.DenominationCounts) error {
	for id, qty := range counts {
		if qty < 0 {
			return fmt.Errorf("denomination %s: quantity must not be negative", id)
		}
		if _, ok := c.byID[id]; !ok {
			return fmt.Errorf("unknown denomination id %s", id)
		}
	}
	return nil
}
