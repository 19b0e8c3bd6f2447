package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/api/middleware"
	"github.com/wash91/sitem-washo-distr-sub000/api/responses"
	"github.com/wash91/sitem-washo-distr-sub000/api/validators"
	salesvc "github.com/wash91/sitem-washo-distr-sub000/internal/sales"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
)

type saleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type recordSaleRequest struct {
	CustomerID    *uuid.UUID        `json:"customer_id,omitempty"`
	TruckID       *uuid.UUID        `json:"truck_id,omitempty"`
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=cash transfer credit"`
	AmountPaid    *string           `json:"amount_paid,omitempty"`
	Items         []saleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// distributorID resolves the acting distributor from the request context.
func distributorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

func RecordSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := distributorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordSaleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amountPaid := decimal.Zero
		if payload.AmountPaid != nil {
			amountPaid, err = decimal.NewFromString(*payload.AmountPaid)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount paid"))
				return
			}
		}

		items := make([]salesvc.SaleItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, salesvc.SaleItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		sale, err := svc.Record(r.Context(), salesvc.RecordSaleInput{
			DistributorID: actor,
			CustomerID:    payload.CustomerID,
			TruckID:       payload.TruckID,
			PaymentMethod: enums.PaymentMethod(payload.PaymentMethod),
			AmountPaid:    amountPaid,
			Items:         items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

func GetSale(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.UUIDParam(r, "saleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sale, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sale)
	}
}

func ListMySales(svc salesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := distributorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		since, err := validators.TimeQuery(r, "since")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sales, err := svc.ListByDistributor(r.Context(), actor, since)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sales)
	}
}
