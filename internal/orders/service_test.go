package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/internal/sales"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

type stubOrderRepo struct {
	orders map[uuid.UUID]*models.DeliveryOrder
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: map[uuid.UUID]*models.DeliveryOrder{}}
}

func (s *stubOrderRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrderRepo) Create(ctx context.Context, order *models.DeliveryOrder) error {
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrderRepo) List(ctx context.Context, filter ListFilter) ([]models.DeliveryOrder, error) {
	var out []models.DeliveryOrder
	for _, order := range s.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrderRepo) Update(ctx context.Context, order *models.DeliveryOrder) error {
	s.orders[order.ID] = order
	return nil
}

type stubSaleService struct {
	recorded []sales.RecordSaleInput
	err      error
}

func (s *stubSaleService) Record(ctx context.Context, input sales.RecordSaleInput) (*models.Sale, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.recorded = append(s.recorded, input)
	return &models.Sale{ID: uuid.New(), DistributorID: input.DistributorID}, nil
}

func (s *stubSaleService) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSaleService) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Sale, error) {
	return nil, nil
}

func newTestService(t *testing.T) (Service, *stubOrderRepo, *stubSaleService) {
	t.Helper()
	repo := newStubOrderRepo()
	saleSvc := &stubSaleService{}
	svc, err := NewService(repo, saleSvc)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, repo, saleSvc
}

func createPendingOrder(t *testing.T, svc Service) *models.DeliveryOrder {
	t.Helper()
	order, err := svc.Create(context.Background(), CreateOrderInput{
		CustomerID: uuid.New(),
		Lines:      []types.OrderLine{{ProductID: uuid.New(), Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return order
}

func TestOrderLifecycleDeliver(t *testing.T) {
	svc, _, saleSvc := newTestService(t)
	order := createPendingOrder(t, svc)
	distributorID := uuid.New()

	assigned, err := svc.Assign(context.Background(), order.ID, distributorID)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.Status != enums.OrderStatusAssigned {
		t.Fatalf("status = %s, want assigned", assigned.Status)
	}

	delivered, err := svc.Deliver(context.Background(), order.ID, DeliverOrderInput{
		DistributorID: distributorID,
		PaymentMethod: enums.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if delivered.Status != enums.OrderStatusDelivered {
		t.Fatalf("status = %s, want delivered", delivered.Status)
	}
	if delivered.SaleID == nil {
		t.Fatal("delivered order must reference its sale")
	}
	if len(saleSvc.recorded) != 1 {
		t.Fatalf("recorded %d sales, want 1", len(saleSvc.recorded))
	}
	recorded := saleSvc.recorded[0]
	if recorded.OrderID == nil || *recorded.OrderID != order.ID {
		t.Fatal("sale must back-reference the order")
	}
	if len(recorded.Items) != 1 || recorded.Items[0].Quantity != 2 {
		t.Fatalf("sale items = %v, want order lines carried over", recorded.Items)
	}
}

func TestDeliverRequiresAssignedDistributor(t *testing.T) {
	svc, _, _ := newTestService(t)
	order := createPendingOrder(t, svc)
	distributorID := uuid.New()

	if _, err := svc.Assign(context.Background(), order.ID, distributorID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	_, err := svc.Deliver(context.Background(), order.ID, DeliverOrderInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestDeliverPendingOrderRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	order := createPendingOrder(t, svc)

	_, err := svc.Deliver(context.Background(), order.ID, DeliverOrderInput{
		DistributorID: uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("err = %v, want state conflict", err)
	}
}

func TestCancelDeliveredOrderRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	order := createPendingOrder(t, svc)
	distributorID := uuid.New()

	if _, err := svc.Assign(context.Background(), order.ID, distributorID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if _, err := svc.Deliver(context.Background(), order.ID, DeliverOrderInput{
		DistributorID: distributorID,
		PaymentMethod: enums.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	_, err := svc.Cancel(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("err = %v, want state conflict", err)
	}
}

func TestCancelPendingOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	order := createPendingOrder(t, svc)

	canceled, err := svc.Cancel(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if canceled.Status != enums.OrderStatusCanceled {
		t.Fatalf("status = %s, want canceled", canceled.Status)
	}
}

func TestDeliverPropagatesSaleFailure(t *testing.T) {
	svc, repo, saleSvc := newTestService(t)
	order := createPendingOrder(t, svc)
	distributorID := uuid.New()
	if _, err := svc.Assign(context.Background(), order.ID, distributorID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	saleSvc.err = pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient truck stock")

	_, err := svc.Deliver(context.Background(), order.ID, DeliverOrderInput{
		DistributorID: distributorID,
		PaymentMethod: enums.PaymentMethodCash,
		AmountPaid:    decimal.Zero,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("err = %v, want state conflict", err)
	}
	stored, _ := repo.FindByID(context.Background(), order.ID)
	if stored.Status != enums.OrderStatusAssigned {
		t.Fatalf("status = %s, order must stay assigned", stored.Status)
	}
}
