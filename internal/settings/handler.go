package settings

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/banchee-erp/banchee-erp/internal/platform/httpx"
)

// Handler wires the school profile endpoints.
type Handler struct {
	logger    *slog.Logger
	repo      *Repository
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo *Repository) *Handler {
	return &Handler{logger: logger, repo: repo, validator: validator.New()}
}

// MountRoutes registers the settings routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.save)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		h.logger.Error("load settings", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var s Settings
	if err := httpx.DecodeJSON(r, &s); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	if err := h.validator.Struct(s); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	if err := h.repo.Save(r.Context(), s); err != nil {
		h.logger.Error("save settings", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, s)
}
