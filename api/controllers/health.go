package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/rentledger-backend/api/responses"
	"github.com/angelmondragon/rentledger-backend/pkg/config"
	"github.com/angelmondragon/rentledger-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/rentledger-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RentLedger-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the dependencies every request path needs. A nil pinger
// is skipped so the sqlite/no-redis development setup still reports ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, database db.Pinger, cache pkgredis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if database != nil {
			if err := database.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		w.Header().Set("X-RentLedger-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
