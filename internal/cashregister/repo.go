package cashregister

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
)

// CashTransactions groups the cash-affecting records aggregated for a session.
type CashTransactions struct {
	Sales            []models.Sale
	Expenses         []models.Expense
	PaymentsReceived []models.ReceivablePayment
}

// IsEmpty reports whether no transactions were collected.
func (c CashTransactions) IsEmpty() bool {
	return len(c.Sales) == 0 && len(c.Expenses) == 0 && len(c.PaymentsReceived) == 0
}

// Repository manages persistence for cash sessions, closings, and the
// aggregation of cash transactions inside a session window.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOpening(ctx context.Context, opening *models.CashOpening) error
	FindOpeningByID(ctx context.Context, id uuid.UUID) (*models.CashOpening, error)
	FindOpenByDistributor(ctx context.Context, distributorID uuid.UUID) (*models.CashOpening, error)
	MarkOpeningClosed(ctx context.Context, openingID uuid.UUID, closedAt time.Time) (int64, error)

	CreateClosing(ctx context.Context, closing *models.CashClosing) error
	FindClosingByID(ctx context.Context, id uuid.UUID) (*models.CashClosing, error)
	ListClosingsByDistributor(ctx context.Context, distributorID uuid.UUID) ([]models.CashClosing, error)

	CollectCashTransactions(ctx context.Context, distributorID uuid.UUID, since time.Time, exceptClosingID *uuid.UUID) (CashTransactions, error)
	TagTransactions(ctx context.Context, collected CashTransactions, closingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a cash register repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOpening(ctx context.Context, opening *models.CashOpening) error {
	return r.db.WithContext(ctx).Create(opening).Error
}

func (r *repository) FindOpeningByID(ctx context.Context, id uuid.UUID) (*models.CashOpening, error) {
	var opening models.CashOpening
	if err := r.db.WithContext(ctx).First(&opening, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &opening, nil
}

func (r *repository) FindOpenByDistributor(ctx context.Context, distributorID uuid.UUID) (*models.CashOpening, error) {
	var opening models.CashOpening
	err := r.db.WithContext(ctx).
		Where("distributor_id = ? AND closed_at IS NULL", distributorID).
		First(&opening).Error
	if err != nil {
		return nil, err
	}
	return &opening, nil
}

// MarkOpeningClosed sets closed_at only when the session is still open and
// returns the number of rows updated, so callers can detect a lost race.
func (r *repository) MarkOpeningClosed(ctx context.Context, openingID uuid.UUID, closedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CashOpening{}).
		Where("id = ? AND closed_at IS NULL", openingID).
		Update("closed_at", closedAt)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateClosing(ctx context.Context, closing *models.CashClosing) error {
	return r.db.WithContext(ctx).Create(closing).Error
}

func (r *repository) FindClosingByID(ctx context.Context, id uuid.UUID) (*models.CashClosing, error) {
	var closing models.CashClosing
	if err := r.db.WithContext(ctx).First(&closing, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &closing, nil
}

func (r *repository) ListClosingsByDistributor(ctx context.Context, distributorID uuid.UUID) ([]models.CashClosing, error) {
	var closings []models.CashClosing
	err := r.db.WithContext(ctx).
		Where("distributor_id = ?", distributorID).
		Order("closed_at DESC").
		Find(&closings).Error
	if err != nil {
		return nil, err
	}
	return closings, nil
}

// CollectCashTransactions gathers the cash-settled transactions inside the
// session window. A transaction already attributed to a different closing is
// excluded; one attributed to exceptClosingID is kept so an unfinalized
// closing can be recomputed without double counting.
//
// A zero since window fails closed: the caller gets empty sets rather than a
// guessed window that could inflate totals from unrelated history.
func (r *repository) CollectCashTransactions(ctx context.Context, distributorID uuid.UUID, since time.Time, exceptClosingID *uuid.UUID) (CashTransactions, error) {
	if since.IsZero() {
		return CashTransactions{}, nil
	}

	attribution := func(q *gorm.DB) *gorm.DB {
		if exceptClosingID != nil {
			return q.Where("closing_id IS NULL OR closing_id = ?", *exceptClosingID)
		}
		return q.Where("closing_id IS NULL")
	}

	var out CashTransactions

	// Credit sales with a partial cash tender count for their cash-settled
	// portion (amount_paid), so they join the window alongside cash sales.
	err := attribution(r.db.WithContext(ctx).
		Where("distributor_id = ? AND occurred_at >= ?", distributorID, since).
		Where("payment_method = ? OR (payment_method = ? AND amount_paid > 0)",
			enums.PaymentMethodCash, enums.PaymentMethodCredit)).
		Order("occurred_at ASC").
		Find(&out.Sales).Error
	if err != nil {
		return CashTransactions{}, err
	}

	err = attribution(r.db.WithContext(ctx).
		Where("distributor_id = ? AND occurred_at >= ? AND payment_method = ?",
			distributorID, since, enums.PaymentMethodCash)).
		Order("occurred_at ASC").
		Find(&out.Expenses).Error
	if err != nil {
		return CashTransactions{}, err
	}

	err = attribution(r.db.WithContext(ctx).
		Where("distributor_id = ? AND occurred_at >= ? AND payment_method = ?",
			distributorID, since, enums.PaymentMethodCash)).
		Order("occurred_at ASC").
		Find(&out.PaymentsReceived).Error
	if err != nil {
		return CashTransactions{}, err
	}

	return out, nil
}

// TagTransactions stamps every collected transaction with the closing id.
func (r *repository) TagTransactions(ctx context.Context, collected CashTransactions, closingID uuid.UUID) error {
	if ids := saleIDs(collected.Sales); len(ids) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Sale{}).
			Where("id IN ?", ids).
			Update("closing_id", closingID).Error; err != nil {
			return err
		}
	}
	if ids := expenseIDs(collected.Expenses); len(ids) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Expense{}).
			Where("id IN ?", ids).
			Update("closing_id", closingID).Error; err != nil {
			return err
		}
	}
	if ids := paymentIDs(collected.PaymentsReceived); len(ids) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.ReceivablePayment{}).
			Where("id IN ?", ids).
			Update("closing_id", closingID).Error; err != nil {
			return err
		}
	}
	return nil
}

func saleIDs(sales []models.Sale) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ID)
	}
	return ids
}

func expenseIDs(expenses []models.Expense) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.ID)
	}
	return ids
}

func paymentIDs(payments []models.ReceivablePayment) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ID)
	}
	return ids
}
