package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rentledger-backend/api/middleware"
	"github.com/angelmondragon/rentledger-backend/api/responses"
	"github.com/angelmondragon/rentledger-backend/api/validators"
	"github.com/angelmondragon/rentledger-backend/internal/whitelist"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
)

type addWhitelistPayload struct {
	Identity string `json:"identity" validate:"required"`
}

// WhitelistAdd registers an identity as allowed to book. Admin only; the
// service enforces the caller check.
func WhitelistAdd(svc whitelist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "whitelist service unavailable"))
			return
		}

		var payload addWhitelistPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Add(ctx, middleware.IdentityFromContext(ctx), payload.Identity); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"whitelisted": true})
	}
}

// WhitelistCheck reports whether an identity may book.
func WhitelistCheck(svc whitelist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "whitelist service unavailable"))
			return
		}

		identity := strings.TrimSpace(chi.URLParam(r, "identity"))
		if identity == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "identity is required"))
			return
		}

		ok, err := svc.Contains(ctx, identity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"whitelisted": ok})
	}
}
