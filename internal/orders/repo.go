package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
)

// Repository manages persistence for delivery orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.DeliveryOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error)
	List(ctx context.Context, filter ListFilter) ([]models.DeliveryOrder, error)
	Update(ctx context.Context, order *models.DeliveryOrder) error
}

// ListFilter narrows order listings.
type ListFilter struct {
	Status     *enums.OrderStatus
	AssignedTo *uuid.UUID
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.DeliveryOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryOrder, error) {
	var order models.DeliveryOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.DeliveryOrder, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.AssignedTo != nil {
		q = q.Where("assigned_to = ?", *filter.AssignedTo)
	}
	var orders []models.DeliveryOrder
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) Update(ctx context.Context, order *models.DeliveryOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}
