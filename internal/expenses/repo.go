package expenses

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
)

// Repository manages persistence for route expenses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, expense *models.Expense) error
	ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Expense, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an expense repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *repository) ListByDistributor(ctx context.Context, distributorID uuid.UUID, since time.Time) ([]models.Expense, error) {
	q := r.db.WithContext(ctx).
		Where("distributor_id = ?", distributorID).
		Order("occurred_at DESC")
	if !since.IsZero() {
		q = q.Where("occurred_at >= ?", since)
	}
	var expenses []models.Expense
	if err := q.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}
