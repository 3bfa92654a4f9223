package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rentledger-backend/api/responses"
	"github.com/angelmondragon/rentledger-backend/internal/stats"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
)

// StatisticDetail returns lifetime booking statistics for an identity.
// Identities that never took part in a booking read as all zeros.
func StatisticDetail(repo stats.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "statistics unavailable"))
			return
		}

		identity := strings.TrimSpace(chi.URLParam(r, "identity"))
		if identity == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "identity is required"))
			return
		}

		record, err := repo.Get(ctx, identity)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load statistics"))
			return
		}
		responses.WriteSuccess(w, record)
	}
}
