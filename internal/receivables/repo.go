package receivables

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
)

// Repository manages persistence for receivable collections.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.ReceivablePayment) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ReceivablePayment, error)
	ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.ReceivablePayment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a receivable repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, payment *models.ReceivablePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.ReceivablePayment, error) {
	var payments []models.ReceivablePayment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("occurred_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.ReceivablePayment, error) {
	q := r.db.WithContext(ctx).
		Where("distributor_id = ?", distributorID).
		Order("occurred_at DESC")
	if !since.IsZero() {
		q = q.Where("occurred_at >= ?", since)
	}
	var payments []models.ReceivablePayment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
