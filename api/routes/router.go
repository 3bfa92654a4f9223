package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/rentledger-backend/api/controllers"
	"github.com/angelmondragon/rentledger-backend/api/middleware"
	"github.com/angelmondragon/rentledger-backend/internal/rent"
	"github.com/angelmondragon/rentledger-backend/internal/stats"
	"github.com/angelmondragon/rentledger-backend/internal/whitelist"
	"github.com/angelmondragon/rentledger-backend/pkg/config"
	"github.com/angelmondragon/rentledger-backend/pkg/db"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
	"github.com/angelmondragon/rentledger-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	rentService rent.Service,
	whitelistService whitelist.Service,
	statsRepo stats.Repository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	bookingPolicy := middleware.NewBookingRateLimitPolicy(
		cfg.RateLimit.BookingWindow,
		cfg.RateLimit.BookingLimit,
	)

	// Interface-typed nils dodge the middlewares' nil checks, so the redis
	// handle is only handed over when it exists.
	var cachePinger redis.Pinger
	var idempotencyStore redis.IdempotencyStore
	var rateLimitStore middleware.RateLimiterStore
	if redisClient != nil {
		cachePinger = redisClient
		idempotencyStore = redisClient
		rateLimitStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cachePinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))
		r.Get("/ping", controllers.PrivatePing())

		r.Route("/properties", func(r chi.Router) {
			r.Post("/", controllers.PropertyCreate(rentService, logg))
			r.Get("/{propertyId}", controllers.PropertyDetail(rentService, logg))
			r.Post("/{propertyId}/unlist", controllers.PropertyUnlist(rentService, logg))
			r.With(middleware.BookingRateLimit(bookingPolicy, rateLimitStore, logg)).
				Post("/{propertyId}/book", controllers.PropertyBook(rentService, logg))
			r.Post("/{propertyId}/unbook", controllers.PropertyUnbook(rentService, logg))
			r.Post("/{propertyId}/unbook-by-owner", controllers.PropertyUnbookByOwner(rentService, logg))
			r.Get("/{propertyId}/rent-price", controllers.PropertyRentPrice(rentService, logg))
		})

		r.Get("/counter", controllers.LedgerCounter(rentService, logg))
		r.Get("/whitelist/{identity}", controllers.WhitelistCheck(whitelistService, logg))
		r.Get("/statistics/{identity}", controllers.StatisticDetail(statsRepo, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))
		r.Post("/whitelist", controllers.WhitelistAdd(whitelistService, logg))
	})

	return r
}
