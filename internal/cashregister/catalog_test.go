package cashregister

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

func TestComputeTotalEmptyCountsIsZero(t *testing.T) {
	catalog := DefaultCatalog()
	if total := catalog.ComputeTotal(types.DenominationCounts{}); !total.IsZero() {
		t.Fatalf("expected zero, got %s", total)
	}
	if total := catalog.ComputeTotal(nil); !total.IsZero() {
		t.Fatalf("expected zero for nil counts, got %s", total)
	}
}

func TestComputeTotalSumsQuantityTimesFace(t *testing.T) {
	catalog := DefaultCatalog()
	counts := types.DenominationCounts{
		"bill-100": 3,
		"bill-50":  1,
		"coin-10":  4,
		"coin-0.50": 5,
	}
	// 300 + 50 + 40 + 2.50
	want := decimal.RequireFromString("392.50")
	if got := catalog.ComputeTotal(counts); !got.Equal(want) {
		t.Fatalf("expected %s got %s", want, got)
	}
}

func TestComputeTotalIgnoresUnknownIDs(t *testing.T) {
	catalog := DefaultCatalog()
	counts := types.DenominationCounts{
		"bill-100":  1,
		"bill-9999": 7,
	}
	if got := catalog.ComputeTotal(counts); !got.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected 100.00 got %s", got)
	}
}

func TestCoinAndBillWithSameFaceAreDistinct(t *testing.T) {
	catalog := DefaultCatalog()
	counts := types.DenominationCounts{
		"coin-20": 1,
		"bill-20": 1,
	}
	if got := catalog.ComputeTotal(counts); !got.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected 40.00 got %s", got)
	}

	sub := catalog.SubtotalsByKind(counts)
	if !sub.Coin.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("coin subtotal: expected 20.00 got %s", sub.Coin)
	}
	if !sub.Bill.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("bill subtotal: expected 20.00 got %s", sub.Bill)
	}
}

func TestSubtotalsByKindPartitionTheTotal(t *testing.T) {
	catalog := DefaultCatalog()
	counts := types.DenominationCounts{
		"coin-5":   10,
		"coin-1":   13,
		"bill-200": 2,
		"bill-20":  1,
	}
	sub := catalog.SubtotalsByKind(counts)
	total := catalog.ComputeTotal(counts)
	if !sub.Coin.Add(sub.Bill).Equal(total) {
		t.Fatalf("subtotals %s + %s do not reach total %s", sub.Coin, sub.Bill, total)
	}
}

func TestValidateCountsRejectsNegativeQuantities(t *testing.T) {
	catalog := DefaultCatalog()
	if err := catalog.ValidateCounts(types.DenominationCounts{"bill-50": -1}); err == nil {
		t.Fatal("expected error for negative quantity")
	}
}

func TestValidateCountsRejectsUnknownIDs(t *testing.T) {
	catalog := DefaultCatalog()
	if err := catalog.ValidateCounts(types.DenominationCounts{"bill-13": 1}); err == nil {
		t.Fatal("expected error for unknown denomination")
	}
}

func TestNewCatalogRejectsDuplicatesAndBadFaces(t *testing.T) {
	coin := func(id, face string) Denomination {
		return Denomination{ID: id, FaceValue: decimal.RequireFromString(face), Kind: enums.DenominationKindCoin, Label: id}
	}
	if _, err := NewCatalog([]Denomination{coin("c1", "1"), coin("c1", "2")}); err == nil {
		t.Fatal("expected duplicate id rejection")
	}
	if _, err := NewCatalog([]Denomination{coin("c0", "0")}); err == nil {
		t.Fatal("expected zero face rejection")
	}
	if _, err := NewCatalog([]Denomination{coin("cn", "-5")}); err == nil {
		t.Fatal("expected negative face rejection")
	}
}

func TestCatalogIsInjectableWithAlternateCurrency(t *testing.T) {
	catalog, err := NewCatalog([]Denomination{
		{ID: "cent-25", FaceValue: decimal.RequireFromString("0.25"), Kind: enums.DenominationKindCoin, Label: "quarter"},
		{ID: "usd-1", FaceValue: decimal.RequireFromString("1.00"), Kind: enums.DenominationKindBill, Label: "$1 bill"},
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	got := catalog.ComputeTotal(types.DenominationCounts{"cent-25": 3, "usd-1": 2})
	if !got.Equal(decimal.RequireFromString("2.75")) {
		t.Fatalf("expected 2.75 got %s", got)
	}
}
