package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/internal/customers"
	"github.com/wash91/sitem-washo-distr-sub000/internal/products"
	"github.com/wash91/sitem-washo-distr-sub000/internal/trucks"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
)

type stubSaleRepo struct {
	created []*models.Sale
}

func (s *stubSaleRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubSaleRepo) Create(ctx context.Context, sale *models.Sale) error {
	s.created = append(s.created, sale)
	return nil
}

func (s *stubSaleRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	for _, sale := range s.created {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSaleRepo) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Sale, error) {
	var out []models.Sale
	for _, sale := range s.created {
		if sale.DistributorID == distributorID {
			out = append(out, *sale)
		}
	}
	return out, nil
}

type stubProductRepo struct {
	products map[uuid.UUID]models.Product
}

func (s *stubProductRepo) WithTx(tx *gorm.DB) products.Repository { return s }

func (s *stubProductRepo) Create(ctx context.Context, product *models.Product) error { return nil }

func (s *stubProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *stubProductRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubProductRepo) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Update(ctx context.Context, product *models.Product) error { return nil }

type balanceAdjustment struct {
	customerID uuid.UUID
	delta      decimal.Decimal
}

type stubCustomerRepo struct {
	adjustments []balanceAdjustment
}

func (s *stubCustomerRepo) WithTx(tx *gorm.DB) customers.Repository { return s }

func (s *stubCustomerRepo) Create(ctx context.Context, customer *models.Customer) error { return nil }

func (s *stubCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomerRepo) List(ctx context.Context) ([]models.Customer, error) { return nil, nil }

func (s *stubCustomerRepo) Update(ctx context.Context, customer *models.Customer) error { return nil }

func (s *stubCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (s *stubCustomerRepo) AdjustCreditBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	s.adjustments = append(s.adjustments, balanceAdjustment{customerID: id, delta: delta})
	return nil
}

type stockAdjustment struct {
	truckID   uuid.UUID
	productID uuid.UUID
	delta     int
}

type stubTruckRepo struct {
	stock       map[uuid.UUID]int
	adjustments []stockAdjustment
}

func (s *stubTruckRepo) WithTx(tx *gorm.DB) trucks.Repository { return s }

func (s *stubTruckRepo) Create(ctx context.Context, truck *models.Truck) error { return nil }

func (s *stubTruckRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Truck, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubTruckRepo) List(ctx context.Context) ([]models.Truck, error) { return nil, nil }

func (s *stubTruckRepo) Update(ctx context.Context, truck *models.Truck) error { return nil }

func (s *stubTruckRepo) UpsertStock(ctx context.Context, truckID, productID uuid.UUID, quantity int) error {
	return nil
}

func (s *stubTruckRepo) AdjustStock(ctx context.Context, truckID, productID uuid.UUID, delta int) (int64, error) {
	have := s.stock[productID]
	if have+delta < 0 {
		return 0, nil
	}
	s.stock[productID] = have + delta
	s.adjustments = append(s.adjustments, stockAdjustment{truckID: truckID, productID: productID, delta: delta})
	return 1, nil
}

func (s *stubTruckRepo) GetStock(ctx context.Context, truckID uuid.UUID) ([]models.TruckStockItem, error) {
	return nil, nil
}

type stubTx struct{}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel})
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func newTestService(t *testing.T, prodRepo *stubProductRepo, custRepo *stubCustomerRepo, truckRepo *stubTruckRepo) (Service, *stubSaleRepo) {
	t.Helper()
	repo := &stubSaleRepo{}
	svc, err := NewService(repo, prodRepo, custRepo, truckRepo, &stubTx{}, testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo
}

func TestRecordCashSalePricesFromCatalog(t *testing.T) {
	bottle := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, Name: "20L bottle", UnitPrice: dec("25.00"), Active: true},
	}}
	svc, repo := newTestService(t, prodRepo, &stubCustomerRepo{}, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	sale, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !sale.TotalAmount.Equal(dec("75.00")) {
		t.Fatalf("total = %s, want 75.00", sale.TotalAmount)
	}
	if !sale.AmountPaid.Equal(sale.TotalAmount) {
		t.Fatalf("cash sale must settle in full, paid %s of %s", sale.AmountPaid, sale.TotalAmount)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d sales, want 1", len(repo.created))
	}
	if sale.OccurredAt.IsZero() {
		t.Fatal("occurredAt not stamped")
	}
}

func TestRecordCreditSaleTracksOutstandingBalance(t *testing.T) {
	bottle := uuid.New()
	customerID := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, Name: "20L bottle", UnitPrice: dec("25.00"), Active: true},
	}}
	custRepo := &stubCustomerRepo{}
	svc, _ := newTestService(t, prodRepo, custRepo, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	sale, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		CustomerID:    &customerID,
		PaymentMethod: enums.PaymentMethodCredit,
		AmountPaid:    dec("20.00"),
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !sale.AmountPaid.Equal(dec("20.00")) {
		t.Fatalf("amount paid = %s, want 20.00", sale.AmountPaid)
	}
	if len(custRepo.adjustments) != 1 {
		t.Fatalf("balance adjustments = %d, want 1", len(custRepo.adjustments))
	}
	adj := custRepo.adjustments[0]
	if adj.customerID != customerID {
		t.Fatal("balance adjusted for wrong customer")
	}
	if !adj.delta.Equal(dec("80.00")) {
		t.Fatalf("outstanding delta = %s, want 80.00", adj.delta)
	}
}

func TestRecordCreditSaleRequiresCustomer(t *testing.T) {
	bottle := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, UnitPrice: dec("25.00"), Active: true},
	}}
	svc, repo := newTestService(t, prodRepo, &stubCustomerRepo{}, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCredit,
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("sale must not be created")
	}
}

func TestRecordRejectsOverpaymentOnCredit(t *testing.T) {
	bottle := uuid.New()
	customerID := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, UnitPrice: dec("25.00"), Active: true},
	}}
	svc, _ := newTestService(t, prodRepo, &stubCustomerRepo{}, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		CustomerID:    &customerID,
		PaymentMethod: enums.PaymentMethodCredit,
		AmountPaid:    dec("30.00"),
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRecordRejectsUnknownProduct(t *testing.T) {
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{}}
	svc, _ := newTestService(t, prodRepo, &stubCustomerRepo{}, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRecordRejectsInactiveProduct(t *testing.T) {
	bottle := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, UnitPrice: dec("25.00"), Active: false},
	}}
	svc, _ := newTestService(t, prodRepo, &stubCustomerRepo{}, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 1}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestRecordDecrementsTruckStock(t *testing.T) {
	bottle := uuid.New()
	truckID := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, UnitPrice: dec("25.00"), Active: true},
	}}
	truckRepo := &stubTruckRepo{stock: map[uuid.UUID]int{bottle: 10}}
	svc, _ := newTestService(t, prodRepo, &stubCustomerRepo{}, truckRepo)

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		TruckID:       &truckID,
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 4}},
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if truckRepo.stock[bottle] != 6 {
		t.Fatalf("stock = %d, want 6", truckRepo.stock[bottle])
	}
}

func TestRecordFailsOnInsufficientTruckStock(t *testing.T) {
	bottle := uuid.New()
	truckID := uuid.New()
	prodRepo := &stubProductRepo{products: map[uuid.UUID]models.Product{
		bottle: {ID: bottle, UnitPrice: dec("25.00"), Active: true},
	}}
	truckRepo := &stubTruckRepo{stock: map[uuid.UUID]int{bottle: 2}}
	svc, repo := newTestService(t, prodRepo, &stubCustomerRepo{}, truckRepo)

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		TruckID:       &truckID,
		PaymentMethod: enums.PaymentMethodCash,
		Items:         []SaleItemInput{{ProductID: bottle, Quantity: 4}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("err = %v, want state conflict", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("sale must not be created when stock is short")
	}
}

func TestRecordRejectsEmptyItems(t *testing.T) {
	svc, _ := newTestService(t, &stubProductRepo{products: map[uuid.UUID]models.Product{}}, &stubCustomerRepo{}, &stubTruckRepo{stock: map[uuid.UUID]int{}})

	_, err := svc.Record(context.Background(), RecordSaleInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}
