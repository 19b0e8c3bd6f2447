package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/internal/sales"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

// Service manages the delivery order lifecycle. Orders move
// pending -> assigned -> delivered, or to canceled from either
// non-terminal state. Delivering an order records the backing sale.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.DeliveryOrder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error)
	List(ctx context.Context, filter ListFilter) ([]models.DeliveryOrder, error)
	Assign(ctx context.Context, id, distributorID uuid.UUID) (*models.DeliveryOrder, error)
	Deliver(ctx context.Context, id uuid.UUID, input DeliverOrderInput) (*models.DeliveryOrder, error)
	Cancel(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error)
}

// CreateOrderInput captures a new customer request.
type CreateOrderInput struct {
	CustomerID uuid.UUID
	Lines      []types.OrderLine
	Notes      *string
}

// DeliverOrderInput captures how the delivering distributor settled the order.
type DeliverOrderInput struct {
	DistributorID uuid.UUID
	TruckID       *uuid.UUID
	PaymentMethod enums.PaymentMethod
	AmountPaid    decimal.Decimal
}

type service struct {
	repo  Repository
	sales sales.Service
}

// NewService builds an order service. Both dependencies are required.
func NewService(repo Repository, salesService sales.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if salesService == nil {
		return nil, fmt.Errorf("sale service required")
	}
	return &service{repo: repo, sales: salesService}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.DeliveryOrder, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one line")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
	}
	order := &models.DeliveryOrder{
		ID:         uuid.New(),
		CustomerID: input.CustomerID,
		Status:     enums.OrderStatusPending,
		Lines:      input.Lines,
		Notes:      input.Notes,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return order, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.DeliveryOrder, error) {
	orders, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Assign(ctx context.Context, id, distributorID uuid.UUID) (*models.DeliveryOrder, error) {
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending && order.Status != enums.OrderStatusAssigned {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be assigned")
	}
	order.AssignedTo = &distributorID
	order.Status = enums.OrderStatusAssigned
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign order")
	}
	return order, nil
}

func (s *service) Deliver(ctx context.Context, id uuid.UUID, input DeliverOrderInput) (*models.DeliveryOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusAssigned {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "only assigned orders can be delivered")
	}
	if order.AssignedTo == nil || *order.AssignedTo != input.DistributorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order is assigned to another distributor")
	}

	items := make([]sales.SaleItemInput, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, sales.SaleItemInput{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	sale, err := s.sales.Record(ctx, sales.RecordSaleInput{
		DistributorID: input.DistributorID,
		CustomerID:    &order.CustomerID,
		TruckID:       input.TruckID,
		OrderID:       &order.ID,
		PaymentMethod: input.PaymentMethod,
		AmountPaid:    input.AmountPaid,
		Items:         items,
	})
	if err != nil {
		return nil, err
	}

	order.Status = enums.OrderStatusDelivered
	order.SaleID = &sale.ID
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark order delivered")
	}
	return order, nil
}

func (s *service) Cancel(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusDelivered || order.Status == enums.OrderStatusCanceled {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already settled")
	}
	order.Status = enums.OrderStatusCanceled
	if err := s.repo.Update(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
	}
	return order, nil
}
