package controllers

import (
	"net/http"
	"time"

	"github.com/wash91/sitem-washo-distr-sub000/api/responses"
	"github.com/wash91/sitem-washo-distr-sub000/api/validators"
	usersvc "github.com/wash91/sitem-washo-distr-sub000/internal/users"
	pkgerrors "github.com/wash91/sitem-washo-distr-sub000/pkg/errors"
	"github.com/wash91/sitem-washo-distr-sub000/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AuthLogin exchanges credentials for an access token.
func AuthLogin(svc usersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), payload.Email, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{
			Token:     result.Token,
			ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
			User: userResponse{
				ID:    result.User.ID.String(),
				Email: result.User.Email,
				Name:  result.User.Name,
				Role:  string(result.User.Role),
			},
		})
	}
}
