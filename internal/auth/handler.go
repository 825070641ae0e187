package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/banchee-erp/banchee-erp/internal/platform/httpx"
)

type contextKey struct{}

var userIDKey contextKey

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

type loginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	Token       string `json:"token"`
	UserID      int64  `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	user, err := h.service.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "unauthorized", "อีเมลหรือรหัสผ่านไม่ถูกต้อง")
		return
	}
	token, err := h.service.CreateToken(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("create token", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "could not create session")
		return
	}
	httpx.JSON(w, http.StatusOK, loginResponse{Token: token, UserID: user.ID, DisplayName: user.DisplayName})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.service.Revoke(r.Context(), token); err != nil {
			h.logger.Warn("revoke session", slog.Any("error", err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequireAuth rejects requests that lack a valid bearer token.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpx.Problem(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}
		userID, err := h.service.Validate(r.Context(), token)
		if err != nil {
			httpx.Problem(w, http.StatusUnauthorized, "unauthorized", "invalid or expired session")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
