package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
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

// TxRunner executes a function inside a single database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records and queries sales.
type Service interface {
	Record(ctx context.Context, input RecordSaleInput) (*models.Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Sale, error)
}

// RecordSaleInput captures one sale as reported from the field.
//
// AmountPaid is only honored for credit sales, where it is the cash collected
// up front. Cash and transfer sales always settle in full.
type RecordSaleInput struct {
	DistributorID uuid.UUID
	CustomerID    *uuid.UUID
	TruckID       *uuid.UUID
	OrderID       *uuid.UUID
	PaymentMethod enums.PaymentMethod
	AmountPaid    decimal.Decimal
	Items         []SaleItemInput
	OccurredAt    time.Time
}

// SaleItemInput is one requested product line. Unit prices come from the
// product catalog, never from the caller.
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type service struct {
	repo          Repository
	productsRepo  products.Repository
	customersRepo customers.Repository
	trucksRepo    trucks.Repository
	tx            TxRunner
	logger        *logger.Logger
}

// NewService builds a sale service. All dependencies are required.
func NewService(
	repo Repository,
	productsRepo products.Repository,
	customersRepo customers.Repository,
	trucksRepo trucks.Repository,
	tx TxRunner,
	logg *logger.Logger,
) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sale repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if trucksRepo == nil {
		return nil, fmt.Errorf("truck repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:          repo,
		productsRepo:  productsRepo,
		customersRepo: customersRepo,
		trucksRepo:    trucksRepo,
		tx:            tx,
		logger:        logg,
	}, nil
}

func (s *service) Record(ctx context.Context, input RecordSaleInput) (*models.Sale, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale requires at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}
	if input.PaymentMethod == enums.PaymentMethodCredit && input.CustomerID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "credit sale requires a customer")
	}

	items, total, err := s.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	amountPaid := total
	if input.PaymentMethod == enums.PaymentMethodCredit {
		amountPaid = input.AmountPaid
		if amountPaid.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount paid must not be negative")
		}
		if amountPaid.GreaterThan(total) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount paid exceeds sale total")
		}
	}

	occurredAt := input.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	sale := &models.Sale{
		ID:            uuid.New(),
		DistributorID: input.DistributorID,
		CustomerID:    input.CustomerID,
		TruckID:       input.TruckID,
		OrderID:       input.OrderID,
		PaymentMethod: input.PaymentMethod,
		TotalAmount:   total,
		AmountPaid:    amountPaid,
		OccurredAt:    occurredAt,
		Items:         items,
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if input.TruckID != nil {
			trucksRepo := s.trucksRepo.WithTx(tx)
			for _, item := range input.Items {
				rows, err := trucksRepo.AdjustStock(ctx, *input.TruckID, item.ProductID, -item.Quantity)
				if err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement truck stock")
				}
				if rows == 0 {
					return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient truck stock")
				}
			}
		}
		if err := s.repo.WithTx(tx).Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
		}
		if input.PaymentMethod == enums.PaymentMethodCredit {
			outstanding := total.Sub(amountPaid)
			if outstanding.IsPositive() {
				if err := s.customersRepo.WithTx(tx).AdjustCreditBalance(ctx, *input.CustomerID, outstanding); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increase customer balance")
				}
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale")
	}

	ctx = s.logger.WithFields(ctx, map[string]any{
		"sale_id": sale.ID.String(),
		"method":  sale.PaymentMethod.String(),
		"total":   sale.TotalAmount.StringFixed(2),
	})
	s.logger.Info(ctx, "sale.recorded")
	return sale, nil
}

// priceItems resolves catalog prices and builds the persisted lines.
func (s *service) priceItems(ctx context.Context, inputs []SaleItemInput) ([]models.SaleItem, decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, item := range inputs {
		ids = append(ids, item.ProductID)
	}
	catalog, err := s.productsRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uuid.UUID]models.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	items := make([]models.SaleItem, 0, len(inputs))
	total := decimal.Zero
	for _, input := range inputs {
		product, ok := byID[input.ProductID]
		if !ok {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown product in sale")
		}
		if !product.Active {
			return nil, decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "product is not active")
		}
		subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity)))
		items = append(items, models.SaleItem{
			ID:        uuid.New(),
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			UnitPrice: product.UnitPrice,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	return items, total, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Sale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return sale, nil
}

func (s *service) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Sale, error) {
	sales, err := s.repo.ListByDistributor(ctx, distributorID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}
	return sales, nil
}
