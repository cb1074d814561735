package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dnoor/kasir/internal/adapter/http/handler"
	"github.com/dnoor/kasir/internal/adapter/http/middleware"
	"github.com/dnoor/kasir/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	RegisterHandler    *handler.RegisterHandler
	TransactionHandler *handler.TransactionHandler
	BalanceHandler     *handler.BalanceHandler
	QueueHandler       *handler.QueueHandler
	ProductHandler     *handler.ProductHandler
	ReportHandler      *handler.ReportHandler
	HealthHandler      *handler.HealthHandler
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Register session lifecycle
		r.Route("/register", func(r chi.Router) {
			r.Post("/initialize", cfg.RegisterHandler.Initialize)
			r.Post("/continue", cfg.RegisterHandler.Continue)
			r.Post("/reset", cfg.RegisterHandler.Reset)
			r.Post("/close", cfg.RegisterHandler.Close)
			r.Get("/status", cfg.RegisterHandler.Status)
			r.Get("/days", cfg.RegisterHandler.ListDays)
			r.Get("/days/{date}", cfg.RegisterHandler.GetDay)
			r.Delete("/days/{date}", cfg.RegisterHandler.DeleteDay)
			r.Post("/change-preview", cfg.RegisterHandler.ChangePreview)
		})

		// Transactions
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
			r.Get("/{id}/receipt", cfg.TransactionHandler.Receipt)
		})

		// Opening balance
		r.Route("/balance", func(r chi.Router) {
			r.Post("/add", cfg.BalanceHandler.Add)
			r.Put("/initial", cfg.BalanceHandler.EditInitial)
			r.Get("/modifications", cfg.BalanceHandler.ListModifications)
		})

		// Pending orders and debts
		r.Route("/pending", func(r chi.Router) {
			r.Post("/", cfg.QueueHandler.AddPending)
			r.Get("/", cfg.QueueHandler.ListPending)
			r.Delete("/{id}", cfg.QueueHandler.RemovePending)
			r.Post("/{id}/continue", cfg.QueueHandler.ContinuePending)
		})
		r.Route("/debts", func(r chi.Router) {
			r.Post("/", cfg.QueueHandler.AddDebt)
			r.Get("/", cfg.QueueHandler.ListDebts)
			r.Delete("/{id}", cfg.QueueHandler.RemoveDebt)
		})

		// Product catalog
		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.Create)
			r.Get("/", cfg.ProductHandler.List)
			r.Get("/{id}", cfg.ProductHandler.Get)
			r.Put("/{id}", cfg.ProductHandler.Update)
			r.Delete("/{id}", cfg.ProductHandler.Delete)
		})

		// Reports and exports
		r.Get("/reports", cfg.ReportHandler.GetReport)
		r.Get("/reports/days", cfg.ReportHandler.GetDaySummaries)
		r.Get("/reports/export", cfg.ReportHandler.ExportXLSX)
		r.Get("/export", cfg.ReportHandler.ExportJSON)
	})

	return r
}
