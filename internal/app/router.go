package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/banchee-erp/banchee-erp/internal/auth"
	"github.com/banchee-erp/banchee-erp/internal/backup"
	"github.com/banchee-erp/banchee-erp/internal/observability"
	"github.com/banchee-erp/banchee-erp/internal/settings"
	"github.com/banchee-erp/banchee-erp/internal/transactions"
	"github.com/banchee-erp/banchee-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	AuthHandler         *auth.Handler
	TransactionsHandler *transactions.Handler
	SettingsHandler     *settings.Handler
	BackupHandler       *backup.Handler
	JobHandler          *jobs.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router. Everything except the health probe,
// metrics and login sits behind bearer-token auth.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.AuthHandler.MountRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthHandler.RequireAuth)
		if params.TransactionsHandler != nil {
			params.TransactionsHandler.MountRoutes(r)
		}
		if params.SettingsHandler != nil {
			params.SettingsHandler.MountRoutes(r)
		}
		if params.BackupHandler != nil {
			params.BackupHandler.MountRoutes(r)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
