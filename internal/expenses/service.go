package expenses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
)

// Service records and queries route expenses.
type Service interface {
	Record(ctx context.Context, input RecordExpenseInput) (*models.Expense, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Expense, error)
}

// RecordExpenseInput captures one expense reported from the field.
type RecordExpenseInput struct {
	DistributorID uuid.UUID
	Category      enums.ExpenseCategory
	Description   string
	Amount        decimal.Decimal
	PaymentMethod enums.PaymentMethod
	OccurredAt    time.Time
}

type service struct {
	repo Repository
}

// NewService builds an expense service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, input RecordExpenseInput) (*models.Expense, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense description required")
	}
	category := input.Category
	if category == "" {
		category = enums.ExpenseCategoryOther
	}
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown expense category")
	}
	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if !method.IsValid() || method == enums.PaymentMethodCredit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expenses settle in cash or transfer")
	}
	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	expense := &models.Expense{
		ID:            uuid.New(),
		DistributorID: input.DistributorID,
		Category:      category,
		Description:   description,
		Amount:        input.Amount,
		PaymentMethod: method,
		OccurredAt:    occurredAt,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create expense")
	}
	return expense, nil
}

func (s *service) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Expense, error) {
	expenses, err := s.repo.ListByDistributor(ctx, distributorID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return expenses, nil
}
