package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/api/responses"
	"github.com/wash91/sitem-washo-distr-sub000/api/validators"
	cashsvc "github.com/wash91/sitem-washo-distr-sub000/internal/cashregister"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/types"
)

type inventoryLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
}

type openSessionRequest struct {
	OpeningCashAmount string                 `json:"opening_cash_amount" validate:"required"`
	TruckID           *uuid.UUID             `json:"truck_id,omitempty"`
	InventorySnapshot []inventoryLineRequest `json:"inventory_snapshot,omitempty" validate:"omitempty,dive"`
}

type closeSessionRequest struct {
	DenominationCounts types.DenominationCounts `json:"denomination_counts" validate:"required"`
	Comments           *string                  `json:"comments,omitempty"`
	Signature          string                   `json:"signature" validate:"required"`
}

// OpenCashSession opens the distributor's cash session for the shift.
func OpenCashSession(svc cashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := distributorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload openSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(payload.OpeningCashAmount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid opening cash amount"))
			return
		}

		snapshot := make(types.InventorySnapshot, 0, len(payload.InventorySnapshot))
		for _, line := range payload.InventorySnapshot {
			snapshot = append(snapshot, types.InventoryLine{ProductID: line.ProductID, Quantity: line.Quantity})
		}

		opening, err := svc.OpenSession(r.Context(), cashsvc.OpenSessionInput{
			DistributorID:     actor,
			OpeningCashAmount: amount,
			TruckID:           payload.TruckID,
			InventorySnapshot: snapshot,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, opening)
	}
}

// GetOpenCashSession returns the distributor's current open session, if any.
func GetOpenCashSession(svc cashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := distributorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		opening, err := svc.FindOpenSession(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if opening == nil {
			responses.WriteSuccess(w, map[string]any{"open": false})
			return
		}
		responses.WriteSuccess(w, map[string]any{"open": true, "session": opening})
	}
}

// CloseCashSession reconciles and closes a cash session.
func CloseCashSession(svc cashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := validators.UUIDParam(r, "sessionId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload closeSessionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		closing, err := svc.CloseSession(r.Context(), cashsvc.CloseSessionInput{
			SessionID:          sessionID,
			DenominationCounts: payload.DenominationCounts,
			Comments:           payload.Comments,
			Signature:          payload.Signature,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, closing)
	}
}

// GetCashClosing returns one closing with its denomination breakdown.
func GetCashClosing(svc cashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "closingId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.GetClosing(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// ListMyCashClosings lists the acting distributor's closings.
func ListMyCashClosings(svc cashsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := distributorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		closings, err := svc.ListClosings(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, closings)
	}
}

// GetDenominationCatalog returns the configured denomination set.
func GetDenominationCatalog(svc cashsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, svc.Catalog().Denominations())
	}
}
