package trucks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
)

// Repository manages persistence for trucks and their on-board stock.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, truck *models.Truck) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Truck, error)
	List(ctx context.Context) ([]models.Truck, error)
	Update(ctx context.Context, truck *models.Truck) error
	UpsertStock(ctx context.Context, truckID, productID uuid.UUID, quantity int) error
	AdjustStock(ctx context.Context, truckID, productID uuid.UUID, delta int) (int64, error)
	GetStock(ctx context.Context, truckID uuid.UUID) ([]models.TruckStockItem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a truck repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, truck *models.Truck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Truck, error) {
	var truck models.Truck
	if err := r.db.WithContext(ctx).Preload("Stock").First(&truck, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *repository) List(ctx context.Context) ([]models.Truck, error) {
	var trucks []models.Truck
	if err := r.db.WithContext(ctx).Order("plate ASC").Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *repository) Update(ctx context.Context, truck *models.Truck) error {
	return r.db.WithContext(ctx).Omit("Stock").Save(truck).Error
}

func (r *repository) UpsertStock(ctx context.Context, truckID, productID uuid.UUID, quantity int) error {
	item := models.TruckStockItem{
		ID:        uuid.New(),
		TruckID:   truckID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "truck_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": quantity}),
		}).
		Create(&item).Error
}

// AdjustStock applies a signed delta and refuses to drive quantity negative.
// Returns rows affected so callers can detect insufficient stock.
func (r *repository) AdjustStock(ctx context.Context, truckID, productID uuid.UUID, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.TruckStockItem{}).
		Where("truck_id = ? AND product_id = ? AND quantity + ? >= 0", truckID, productID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *repository) GetStock(ctx context.Context, truckID uuid.UUID) ([]models.TruckStockItem, error) {
	var items []models.TruckStockItem
	if err := r.db.WithContext(ctx).Where("truck_id = ?", truckID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
