package trucks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgdb "github.com/wash91/sitem-washo-distr-sub000/pkg/db"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
)

const truckPlateConstraint = "idx_trucks_plate"

// Service exposes truck fleet operations.
type Service interface {
	Create(ctx context.Context, input CreateTruckInput) (*models.Truck, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Truck, error)
	List(ctx context.Context) ([]models.Truck, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTruckInput) (*models.Truck, error)
	SetStock(ctx context.Context, truckID uuid.UUID, lines []StockLine) error
	GetStock(ctx context.Context, truckID uuid.UUID) ([]models.TruckStockItem, error)
}

// CreateTruckInput captures the fields for a new truck.
type CreateTruckInput struct {
	Plate    string
	Label    string
	Capacity int
}

// UpdateTruckInput captures the mutable truck fields.
type UpdateTruckInput struct {
	Label    *string
	Capacity *int
	Active   *bool
}

// StockLine sets the absolute on-truck quantity of one product.
type StockLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type service struct {
	repo Repository
}

// NewService builds a truck service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("truck repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateTruckInput) (*models.Truck, error) {
	plate := strings.ToUpper(strings.TrimSpace(input.Plate))
	if plate == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "truck plate required")
	}
	if input.Capacity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "truck capacity must not be negative")
	}
	truck := &models.Truck{
		ID:       uuid.New(),
		Plate:    plate,
		Label:    strings.TrimSpace(input.Label),
		Capacity: input.Capacity,
		Active:   true,
	}
	if err := s.repo.Create(ctx, truck); err != nil {
		if pkgdb.IsUniqueViolation(err, truckPlateConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "truck plate already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create truck")
	}
	return truck, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Truck, error) {
	truck, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}
	return truck, nil
}

func (s *service) List(ctx context.Context) ([]models.Truck, error) {
	trucks, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trucks")
	}
	return trucks, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTruckInput) (*models.Truck, error) {
	truck, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Label != nil {
		truck.Label = strings.TrimSpace(*input.Label)
	}
	if input.Capacity != nil {
		if *input.Capacity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "truck capacity must not be negative")
		}
		truck.Capacity = *input.Capacity
	}
	if input.Active != nil {
		truck.Active = *input.Active
	}
	if err := s.repo.Update(ctx, truck); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update truck")
	}
	return truck, nil
}

func (s *service) SetStock(ctx context.Context, truckID uuid.UUID, lines []StockLine) error {
	if _, err := s.GetByID(ctx, truckID); err != nil {
		return err
	}
	for _, line := range lines {
		if line.Quantity < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
		}
	}
	for _, line := range lines {
		if err := s.repo.UpsertStock(ctx, truckID, line.ProductID, line.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set truck stock")
		}
	}
	return nil
}

func (s *service) GetStock(ctx context.Context, truckID uuid.UUID) ([]models.TruckStockItem, error) {
	if _, err := s.GetByID(ctx, truckID); err != nil {
		return nil, err
	}
	items, err := s.repo.GetStock(ctx, truckID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck stock")
	}
	return items, nil
}
