package receivables

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/internal/customers"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
)

// TxRunner executes a function inside a single database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records collections against customer credit balances.
type Service interface {
	RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.ReceivablePayment, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ReceivablePayment, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.ReceivablePayment, error)
}

// RecordPaymentInput captures one collection from a customer.
type RecordPaymentInput struct {
	CustomerID    uuid.UUID
	DistributorID uuid.UUID
	Amount        decimal.Decimal
	PaymentMethod enums.PaymentMethod
	OccurredAt    time.Time
}

type service struct {
	repo          Repository
	customersRepo customers.Repository
	tx            TxRunner
}

// NewService builds a receivable service. All dependencies are required.
func NewService(repo Repository, customersRepo customers.Repository, tx TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("receivable repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, customersRepo: customersRepo, tx: tx}, nil
}

func (s *service) RecordPayment(ctx context.Context, input RecordPaymentInput) (*models.ReceivablePayment, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must be positive")
	}
	method := input.PaymentMethod
	if method == "" {
		method = enums.PaymentMethodCash
	}
	if method == enums.PaymentMethodCredit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collections settle in cash or transfer")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}

	customer, err := s.customersRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	if input.Amount.GreaterThan(customer.CreditBalance) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment exceeds outstanding balance").
			WithDetails(map[string]string{"outstanding": customer.CreditBalance.StringFixed(2)})
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	payment := &models.ReceivablePayment{
		ID:            uuid.New(),
		CustomerID:    input.CustomerID,
		DistributorID: input.DistributorID,
		Amount:        input.Amount,
		PaymentMethod: method,
		OccurredAt:    occurredAt,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, payment); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
		}
		if err := s.customersRepo.WithTx(tx).AdjustCreditBalance(ctx, input.CustomerID, input.Amount.Neg()); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrease customer balance")
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
	}
	return payment, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ReceivablePayment, error) {
	payments, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}

func (s *service) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.ReceivablePayment, error) {
	payments, err := s.repo.ListByDistributor(ctx, distributorID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return payments, nil
}
