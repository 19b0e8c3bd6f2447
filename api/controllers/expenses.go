package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/wash91/sitem-washo-distr-sub000/api/responses"
	"github.com/wash91/sitem-washo-distr-sub000/api/validators"
	expensesvc "github.com/wash91/sitem-washo-distr-sub000/internal/expenses"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/enums"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
)

type recordExpenseRequest struct {
	Category      string `json:"category" validate:"omitempty,oneof=fuel maintenance food other"`
	Description   string `json:"description" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=cash transfer"`
}

func RecordExpense(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := distributorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordExpenseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amount, err := decimal.NewFromString(payload.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid amount"))
			return
		}

		expense, err := svc.Record(r.Context(), expensesvc.RecordExpenseInput{
			DistributorID: actor,
			Category:      enums.ExpenseCategory(payload.Category),
			Description:   payload.Description,
			Amount:        amount,
			PaymentMethod: enums.PaymentMethod(payload.PaymentMethod),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

func ListMyExpenses(svc expensesvc.Service, logg *logger.Logger) http.HandlerFunc {
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
		expenses, err := svc.ListByDistributor(r.Context(), actor, since)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expenses)
	}
}
