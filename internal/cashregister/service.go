package cashregister

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wash91/sitem-washo-distr-sub000/pkg/db"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/db/models"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

const openDistributorConstraint = "cash_openings_open_distributor_idx"

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the session lifecycle controller: the single invariant
// enforcement point for the NONE -> OPEN -> CLOSED state machine.
type Service interface {
	OpenSession(ctx context.Context, input OpenSessionInput) (*models.CashOpening, error)
	FindOpenSession(ctx context.Context, distributorID uuid.UUID) (*models.CashOpening, error)
	CloseSession(ctx context.Context, input CloseSessionInput) (*models.CashClosing, error)
	GetClosing(ctx context.Context, id uuid.UUID) (*ClosingDetail, error)
	ListClosings(ctx context.Context, distributorID uuid.UUID) ([]models.CashClosing, error)
	Catalog() Catalog
}

// OpenSessionInput captures the data required to open a cash session.
type OpenSessionInput struct {
	DistributorID     uuid.UUID
	OpeningCashAmount decimal.Decimal
	TruckID           *uuid.UUID
	InventorySnapshot types.InventorySnapshot
	OpenedAt          time.Time
}

// CloseSessionInput captures the data required to close a cash session.
type CloseSessionInput struct {
	SessionID          uuid.UUID
	DenominationCounts types.DenominationCounts
	Comments           *string
	Signature          string
	ClosedAt           time.Time
}

// ClosingDetail is a closing with its denomination breakdown for display.
type ClosingDetail struct {
	Closing   models.CashClosing `json:"closing"`
	Subtotals KindSubtotals      `json:"subtotals_by_kind"`
}

type service struct {
	repo    Repository
	tx      TxRunner
	catalog Catalog
	logg    *logger.Logger
}

// NewService wires the lifecycle controller with its repository, transaction
// runner, and the injected denomination catalog.
func NewService(repo Repository, tx TxRunner, catalog Catalog, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cash register repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if len(catalog.Denominations()) == 0 {
		return nil, fmt.Errorf("denomination catalog required")
	}
	return &service{repo: repo, tx: tx, catalog: catalog, logg: logg}, nil
}

func (s *service) Catalog() Catalog {
	return s.catalog
}

func (s *service) OpenSession(ctx context.Context, input OpenSessionInput) (*models.CashOpening, error) {
	if input.DistributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	if input.OpeningCashAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "opening cash amount must not be negative")
	}
	for _, line := range input.InventorySnapshot {
		if line.Quantity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory quantities must not be negative")
		}
	}

	openedAt := input.OpenedAt
	if openedAt.IsZero() {
		openedAt = time.Now().UTC()
	}

	opening := &models.CashOpening{
		ID:                uuid.New(),
		DistributorID:     input.DistributorID,
		TruckID:           input.TruckID,
		OpeningCashAmount: input.OpeningCashAmount,
		InventorySnapshot: input.InventorySnapshot,
		OpenedAt:          openedAt,
	}

	// The partial unique index is the real guard; the insert either succeeds
	// or reports the existing open session, with no check-then-act window.
	if err := s.repo.CreateOpening(ctx, opening); err != nil {
		if db.IsUniqueViolation(err, openDistributorConstraint) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "distributor already has an open cash session")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cash opening")
	}
	return opening, nil
}

func (s *service) FindOpenSession(ctx context.Context, distributorID uuid.UUID) (*models.CashOpening, error) {
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	opening, err := s.repo.FindOpenByDistributor(ctx, distributorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find open session")
	}
	return opening, nil
}

func (s *service) CloseSession(ctx context.Context, input CloseSessionInput) (*models.CashClosing, error) {
	session, err := s.repo.FindOpeningByID(ctx, input.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cash session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cash session")
	}
	if session.IsClosed() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cash session already closed")
	}

	if err := s.catalog.ValidateCounts(input.DenominationCounts); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid denomination counts")
	}

	collected, err := s.repo.CollectCashTransactions(ctx, session.DistributorID, session.OpenedAt, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "collect cash transactions")
	}

	totalSales := SumCashFromSales(collected.Sales)
	totalPayments := SumPayments(collected.PaymentsReceived)
	totalExpenses := SumExpenses(collected.Expenses)

	counted := s.catalog.ComputeTotal(input.DenominationCounts)
	expected := ComputeExpected(session.OpeningCashAmount, totalSales, totalPayments, totalExpenses)
	variance := ComputeVariance(counted, expected)

	if strings.TrimSpace(input.Signature) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature required")
	}

	closedAt := input.ClosedAt
	if closedAt.IsZero() {
		closedAt = time.Now().UTC()
	}

	closing := &models.CashClosing{
		ID:                        uuid.New(),
		OpeningID:                 session.ID,
		DistributorID:             session.DistributorID,
		TotalCashSales:            totalSales,
		TotalCashPaymentsReceived: totalPayments,
		TotalCashExpenses:         totalExpenses,
		ExpectedCash:              expected,
		CountedCash:               counted,
		Variance:                  variance.Amount,
		Classification:            variance.Classification,
		DenominationCounts:        input.DenominationCounts,
		SignatureBlob:             input.Signature,
		Comments:                  input.Comments,
		ClosedAt:                  closedAt,
	}

	// Persist closing, tag transactions, and mark the session closed as one
	// atomic unit. Any failure rolls everything back.
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateClosing(ctx, closing); err != nil {
			if db.IsUniqueViolation(err, "cash_closings_opening_idx") {
				return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "cash session already closed")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cash closing")
		}

		if err := txRepo.TagTransactions(ctx, collected, closing.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "tag session transactions")
		}

		rows, err := txRepo.MarkOpeningClosed(ctx, session.ID, closedAt)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark session closed")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cash session already closed")
		}
		return nil
	})
	if txErr != nil {
		return nil, s.classifyCloseFailure(ctx, txErr, session.ID)
	}

	return closing, nil
}

// classifyCloseFailure separates rolled-back failures (safe to surface as-is)
// from a failed rollback, which leaves the store inconsistent and must be
// logged with full context and blocked from automatic retry.
func (s *service) classifyCloseFailure(ctx context.Context, err error, sessionID uuid.UUID) error {
	if strings.Contains(err.Error(), "rollback failed") {
		if s.logg != nil {
			failCtx := s.logg.WithFields(ctx, map[string]any{
				"session_id": sessionID.String(),
				"failure":    err.Error(),
			})
			s.logg.Error(failCtx, "cash_closing.inconsistent_state", err)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInconsistentState, err, "cash closing partially applied")
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close cash session")
}

func (s *service) GetClosing(ctx context.Context, id uuid.UUID) (*ClosingDetail, error) {
	closing, err := s.repo.FindClosingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cash closing not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cash closing")
	}
	return &ClosingDetail{
		Closing:   *closing,
		Subtotals: s.catalog.SubtotalsByKind(closing.DenominationCounts),
	}, nil
}

func (s *service) ListClosings(ctx context.Context, distributorID uuid.UUID) ([]models.CashClosing, error) {
	if distributorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor id required")
	}
	closings, err := s.repo.ListClosingsByDistributor(ctx, distributorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cash closings")
	}
	return closings, nil
}

// SumCashFromSales totals the cash-settled portion of each sale. Cash sales
// carry their full amount in AmountPaid; credit sales only the cash tendered
// at sale time.
func SumCashFromSales(sales []models.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.AmountPaid)
	}
	return total
}

// SumExpenses totals cash expense amounts.
func SumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SumPayments totals cash receivable collections.
func SumPayments(payments []models.ReceivablePayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
