package cashregister

import (
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
)

// Variance is the signed difference between counted and expected cash.
type Variance struct {
	Amount         decimal.Decimal              `json:"amount"`
	Classification enums.VarianceClassification `json:"classification"`
}

// ComputeExpected returns opening + cash sales + cash payments - cash expenses.
func ComputeExpected(opening, cashSales, cashPayments, cashExpenses decimal.Decimal) decimal.Decimal {
	return opening.Add(cashSales).Add(cashPayments).Sub(cashExpenses)
}

// ComputeVariance returns counted - expected with its sign classification.
// Zero tolerance: anything other than exact equality is a shortfall or overage.
func ComputeVariance(counted, expected decimal.Decimal) Variance {
	amount := counted.Sub(expected)
	classification := enums.VarianceBalanced
	switch {
	case amount.IsNegative():
		classification = enums.VarianceShortfall
	case amount.IsPositive():
		classification = enums.VarianceOverage
	}
	return Variance{Amount: amount, Classification: classification}
}
