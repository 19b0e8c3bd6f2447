package receivables

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/internal/customers"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
)

type stubPaymentRepo struct {
	created []*models.ReceivablePayment
}

func (s *stubPaymentRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPaymentRepo) Create(ctx context.Context, payment *models.ReceivablePayment) error {
	s.created = append(s.created, payment)
	return nil
}

func (s *stubPaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ReceivablePayment, error) {
	return nil, nil
}

func (s *stubPaymentRepo) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.ReceivablePayment, error) {
	return nil, nil
}

type stubCustomerRepo struct {
	customers   map[uuid.UUID]models.Customer
	adjustments []decimal.Decimal
}

func (s *stubCustomerRepo) WithTx(tx *gorm.DB) customers.Repository { return s }

func (s *stubCustomerRepo) Create(ctx context.Context, customer *models.Customer) error { return nil }

func (s *stubCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *stubCustomerRepo) List(ctx context.Context) ([]models.Customer, error) { return nil, nil }

func (s *stubCustomerRepo) Update(ctx context.Context, customer *models.Customer) error { return nil }

func (s *stubCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubCustomerRepo) AdjustCreditBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	s.adjustments = append(s.adjustments, delta)
	return nil
}

type stubTx struct{}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestRecordPaymentReducesBalance(t *testing.T) {
	customerID := uuid.New()
	custRepo := &stubCustomerRepo{customers: map[uuid.UUID]models.Customer{
		customerID: {ID: customerID, Name: "Tienda Lupita", CreditBalance: dec("120.00")},
	}}
	repo := &stubPaymentRepo{}
	svc, err := NewService(repo, custRepo, &stubTx{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	payment, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		CustomerID:    customerID,
		DistributorID: uuid.New(),
		Amount:        dec("50.00"),
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.PaymentMethod != enums.PaymentMethodCash {
		t.Fatalf("method = %s, want cash default", payment.PaymentMethod)
	}
	if payment.OccurredAt.IsZero() {
		t.Fatal("occurredAt not stamped")
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d payments, want 1", len(repo.created))
	}
	if len(custRepo.adjustments) != 1 || !custRepo.adjustments[0].Equal(dec("-50.00")) {
		t.Fatalf("adjustments = %v, want one -50.00", custRepo.adjustments)
	}
}

func TestRecordPaymentRejectsOverCollection(t *testing.T) {
	customerID := uuid.New()
	custRepo := &stubCustomerRepo{customers: map[uuid.UUID]models.Customer{
		customerID: {ID: customerID, CreditBalance: dec("30.00")},
	}}
	repo := &stubPaymentRepo{}
	svc, err := NewService(repo, custRepo, &stubTx{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		CustomerID:    customerID,
		DistributorID: uuid.New(),
		Amount:        dec("45.00"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("payment must not be created")
	}
}

func TestRecordPaymentRejectsCreditMethod(t *testing.T) {
	customerID := uuid.New()
	custRepo := &stubCustomerRepo{customers: map[uuid.UUID]models.Customer{
		customerID: {ID: customerID, CreditBalance: dec("30.00")},
	}}
	svc, err := NewService(&stubPaymentRepo{}, custRepo, &stubTx{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		CustomerID:    customerID,
		DistributorID: uuid.New(),
		Amount:        dec("10.00"),
		PaymentMethod: enums.PaymentMethodCredit,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRecordPaymentUnknownCustomer(t *testing.T) {
	custRepo := &stubCustomerRepo{customers: map[uuid.UUID]models.Customer{}}
	svc, err := NewService(&stubPaymentRepo{}, custRepo, &stubTx{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.RecordPayment(context.Background(), RecordPaymentInput{
		CustomerID:    uuid.New(),
		DistributorID: uuid.New(),
		Amount:        dec("10.00"),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}
