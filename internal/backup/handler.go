package backup

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// Handler exposes the backup download endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
	now     func() time.Time
}

// NewHandler constructs Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, now: time.Now}
}

// MountRoutes registers backup routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		// archive assembly is heavy, keep downloads infrequent
		r.Use(httprate.LimitByIP(2, time.Minute))
		r.Get("/backup", h.handleDownload)
	})
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("banchee-backup-%s.zip", h.now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := h.service.WriteArchive(r.Context(), w); err != nil {
		// headers are already out, the truncated zip signals the failure
		h.logger.Error("write backup archive", slog.Any("error", err))
	}
}
