package transactions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/banchee-erp/banchee-erp/internal/cashbook"
	"github.com/banchee-erp/banchee-erp/internal/cashbook/export"
	"github.com/banchee-erp/banchee-erp/internal/ledger"
	"github.com/banchee-erp/banchee-erp/internal/observability"
	"github.com/banchee-erp/banchee-erp/internal/platform/httpx"
	"github.com/banchee-erp/banchee-erp/internal/shared"
)

const (
	reportCacheTTL  = 10 * time.Minute
	exportRateLimit = 10 // renders per minute per client
)

// SettingsPort supplies the school identity threaded into report headers.
type SettingsPort interface {
	SchoolMeta(ctx context.Context) (ledger.SchoolMeta, error)
}

// Handler wires the transaction CRUD and report endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	settings  SettingsPort
	pdf       *export.PDFExporter
	cache     *redis.Client
	metrics   *observability.Metrics
	validator *validator.Validate
	fonts     cashbook.FontMetrics
}

// NewHandler constructs a Handler. The cache and pdf exporter are optional;
// without them report endpoints render uncached or return 503 for PDF.
func NewHandler(logger *slog.Logger, service *Service, settings SettingsPort, pdf *export.PDFExporter, cache *redis.Client, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		settings:  settings,
		pdf:       pdf,
		cache:     cache,
		metrics:   metrics,
		validator: validator.New(),
		fonts:     cashbook.SarabunMetrics{},
	}
}

// MountRoutes registers the API routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Get("/{id}/income-ref", h.incomeRef)
	})
	r.Route("/carry-forward/{fy}", func(r chi.Router) {
		r.Get("/", h.carryPreview)
		r.Post("/", h.carryPost)
	})
	r.Route("/reports", func(r chi.Router) {
		r.Use(httprate.LimitByIP(exportRateLimit, time.Minute))
		r.Get("/cashbook/{fy}", h.cashbookJSON)
		r.Get("/cashbook/{fy}/csv", h.cashbookCSV)
		r.Get("/cashbook/{fy}/pdf", h.cashbookPDF)
		r.Get("/cover/{fy}", h.coverJSON)
		r.Get("/cover/{fy}/csv", h.coverCSV)
		r.Get("/cover/{fy}/pdf", h.coverPDF)
		r.Get("/daily/{date}", h.dailyJSON)
		r.Get("/daily/{date}/pdf", h.dailyPDF)
	})
}

type txResponse struct {
	Transaction ledger.Transaction `json:"transaction"`
	Warnings    []Warning          `json:"warnings,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		From:     r.URL.Query().Get("from"),
		To:       r.URL.Query().Get("to"),
		FundType: r.URL.Query().Get("fundType"),
	}
	txs, err := h.service.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, "list transactions", err)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("perPage"))
	pg := shared.NewPagination(page, perPage, len(txs))
	lo := (pg.Page - 1) * pg.PerPage
	if lo > len(txs) {
		lo = len(txs)
	}
	hi := lo + pg.PerPage
	if hi > len(txs) {
		hi = len(txs)
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"transactions": txs[lo:hi],
		"pagination":   pg,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	tx, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get transaction", err)
		return
	}
	httpx.JSON(w, http.StatusOK, txResponse{Transaction: tx})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if !h.decode(w, r, &in) {
		return
	}
	tx, warnings, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create transaction", err)
		return
	}
	h.invalidateReports(r.Context(), tx.Date)
	httpx.JSON(w, http.StatusCreated, txResponse{Transaction: tx, Warnings: warnings})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	prev, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "load transaction", err)
		return
	}
	var in UpdateInput
	if !h.decode(w, r, &in) {
		return
	}
	in.ID = id
	tx, warnings, err := h.service.Update(r.Context(), in)
	if err != nil {
		h.fail(w, r, "update transaction", err)
		return
	}
	h.invalidateReports(r.Context(), prev.Date, tx.Date)
	httpx.JSON(w, http.StatusOK, txResponse{Transaction: tx, Warnings: warnings})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	prev, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "load transaction", err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete transaction", err)
		return
	}
	h.invalidateReports(r.Context(), prev.Date)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) incomeRef(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	tx, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "load transaction", err)
		return
	}
	ref, err := h.service.ResolveIncomeRef(r.Context(), tx)
	if err != nil {
		h.fail(w, r, "resolve income ref", err)
		return
	}
	httpx.JSON(w, http.StatusOK, txResponse{Transaction: ref})
}

func (h *Handler) carryPreview(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	items, err := h.service.CarryForwardPreview(r.Context(), fy)
	if err != nil {
		h.fail(w, r, "carry-forward preview", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"fiscalYearBE": fy, "items": items})
}

func (h *Handler) carryPost(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	created, err := h.service.PostCarryForward(r.Context(), fy)
	if err != nil {
		h.fail(w, r, "post carry-forward", err)
		return
	}
	h.invalidateReports(r.Context(), ledger.FiscalYearRange(fy).Start)
	httpx.JSON(w, http.StatusCreated, map[string]any{"transactions": created})
}

func (h *Handler) cashbookJSON(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	book, err := h.service.YearBook(r.Context(), fy)
	if err != nil {
		h.fail(w, r, "build cash book", err)
		return
	}
	httpx.JSON(w, http.StatusOK, book)
}

func (h *Handler) cashbookCSV(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	book, err := h.service.YearBook(r.Context(), fy)
	if err != nil {
		h.fail(w, r, "build cash book", err)
		return
	}
	h.observeRender("cashbook_csv")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cashbook-%d.csv"`, fy))
	if err := export.WriteCashBookCSV(w, book); err != nil {
		h.logger.Error("stream cashbook csv", slog.Any("error", err))
	}
}

func (h *Handler) cashbookPDF(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	h.servePDF(w, r, fmt.Sprintf("report:cashbook:%d:pdf", fy), fmt.Sprintf("cashbook-%d.pdf", fy), "cashbook_pdf",
		func(ctx context.Context, meta ledger.SchoolMeta) (cashbook.Document, error) {
			book, err := h.service.YearBook(ctx, fy)
			if err != nil {
				return cashbook.Document{}, err
			}
			return cashbook.BuildCashBook(h.fonts, book, meta), nil
		})
}

func (h *Handler) coverJSON(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	sheet, err := h.service.CoverSheet(r.Context(), fy)
	if err != nil {
		h.fail(w, r, "build cover sheet", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cover": sheet, "balanced": sheet.Balanced()})
}

func (h *Handler) coverCSV(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	sheet, err := h.service.CoverSheet(r.Context(), fy)
	if err != nil {
		h.fail(w, r, "build cover sheet", err)
		return
	}
	h.observeRender("cover_csv")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cover-%d.csv"`, fy))
	if err := export.WriteCoverCSV(w, sheet); err != nil {
		h.logger.Error("stream cover csv", slog.Any("error", err))
	}
}

func (h *Handler) coverPDF(w http.ResponseWriter, r *http.Request) {
	fy, ok := h.pathFY(w, r)
	if !ok {
		return
	}
	h.servePDF(w, r, fmt.Sprintf("report:cover:%d:pdf", fy), fmt.Sprintf("cover-%d.pdf", fy), "cover_pdf",
		func(ctx context.Context, meta ledger.SchoolMeta) (cashbook.Document, error) {
			sheet, err := h.service.CoverSheet(ctx, fy)
			if err != nil {
				return cashbook.Document{}, err
			}
			return cashbook.RenderCover(h.fonts, sheet, meta), nil
		})
}

func (h *Handler) dailyJSON(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	snap, err := h.service.DailySnapshot(r.Context(), date)
	if err != nil {
		h.fail(w, r, "build daily snapshot", err)
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

func (h *Handler) dailyPDF(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	fy := ledger.FiscalYearOf(date)
	if fy == 0 {
		httpx.Problem(w, http.StatusBadRequest, "invalid date", "date must be YYYY-MM-DD")
		return
	}
	h.servePDF(w, r, "report:daily:"+date+":pdf", "daily-"+date+".pdf", "daily_pdf",
		func(ctx context.Context, meta ledger.SchoolMeta) (cashbook.Document, error) {
			snap, err := h.service.DailySnapshot(ctx, date)
			if err != nil {
				return cashbook.Document{}, err
			}
			return cashbook.RenderDaily(h.fonts, snap, fy, meta), nil
		})
}

// servePDF renders a report document to PDF through the exporter, caching
// the bytes in Redis keyed by report identity.
func (h *Handler) servePDF(w http.ResponseWriter, r *http.Request, cacheKey, filename, kind string, build func(context.Context, ledger.SchoolMeta) (cashbook.Document, error)) {
	if h.pdf == nil {
		httpx.Problem(w, http.StatusServiceUnavailable, "pdf unavailable", "pdf renderer is not configured")
		return
	}
	ctx := r.Context()

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			h.sendPDF(w, filename, cached)
			return
		}
	}

	meta := ledger.SchoolMeta{}
	if h.settings != nil {
		m, err := h.settings.SchoolMeta(ctx)
		if err != nil {
			h.logger.Warn("load school meta", slog.Any("error", err))
		} else {
			meta = m
		}
	}

	doc, err := build(ctx, meta)
	if err != nil {
		h.fail(w, r, "build report", err)
		return
	}
	pdf, err := h.pdf.Export(ctx, doc)
	if err != nil {
		h.fail(w, r, "render pdf", err)
		return
	}
	h.observeRender(kind)

	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, pdf, reportCacheTTL).Err(); err != nil {
			h.logger.Warn("cache report", slog.String("key", cacheKey), slog.Any("error", err))
		}
	}
	h.sendPDF(w, filename, pdf)
}

func (h *Handler) sendPDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(pdf)
}

// invalidateReports drops cached report bytes for every fiscal year the
// written dates touch, plus the daily snapshots for those dates.
func (h *Handler) invalidateReports(ctx context.Context, dates ...string) {
	if h.cache == nil {
		return
	}
	keys := make([]string, 0, len(dates)*3)
	for _, fy := range touchedFiscalYears(dates...) {
		keys = append(keys,
			fmt.Sprintf("report:cashbook:%d:pdf", fy),
			fmt.Sprintf("report:cover:%d:pdf", fy),
			// The next year's cover opens from this year's balances.
			fmt.Sprintf("report:cover:%d:pdf", fy+1),
		)
	}
	for _, d := range dates {
		keys = append(keys, "report:daily:"+d+":pdf")
	}
	if len(keys) == 0 {
		return
	}
	if err := h.cache.Del(ctx, keys...).Err(); err != nil {
		h.logger.Warn("invalidate report cache", slog.Any("error", err))
	}
}

// WarmFiscalYear pre-renders the cashbook and cover PDFs for a fiscal year
// so the first download after an invalidation hits the cache.
func (h *Handler) WarmFiscalYear(ctx context.Context, fyBE int) error {
	if h.pdf == nil || h.cache == nil {
		return nil
	}
	meta := ledger.SchoolMeta{}
	if h.settings != nil {
		if m, err := h.settings.SchoolMeta(ctx); err == nil {
			meta = m
		}
	}
	targets := []struct {
		key   string
		kind  string
		build func(context.Context) (cashbook.Document, error)
	}{
		{fmt.Sprintf("report:cashbook:%d:pdf", fyBE), "cashbook_pdf", func(ctx context.Context) (cashbook.Document, error) {
			book, err := h.service.YearBook(ctx, fyBE)
			if err != nil {
				return cashbook.Document{}, err
			}
			return cashbook.BuildCashBook(h.fonts, book, meta), nil
		}},
		{fmt.Sprintf("report:cover:%d:pdf", fyBE), "cover_pdf", func(ctx context.Context) (cashbook.Document, error) {
			sheet, err := h.service.CoverSheet(ctx, fyBE)
			if err != nil {
				return cashbook.Document{}, err
			}
			return cashbook.RenderCover(h.fonts, sheet, meta), nil
		}},
	}
	for _, t := range targets {
		doc, err := t.build(ctx)
		if err != nil {
			return fmt.Errorf("warm %s: %w", t.key, err)
		}
		pdf, err := h.pdf.Export(ctx, doc)
		if err != nil {
			return fmt.Errorf("warm %s: %w", t.key, err)
		}
		h.observeRender(t.kind)
		if err := h.cache.Set(ctx, t.key, pdf, reportCacheTTL).Err(); err != nil {
			return fmt.Errorf("warm %s: %w", t.key, err)
		}
	}
	return nil
}

func (h *Handler) observeRender(kind string) {
	if h.metrics != nil {
		h.metrics.ReportRendered(kind)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid payload", err.Error())
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.Problem(w, http.StatusBadRequest, "invalid id", "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) pathFY(w http.ResponseWriter, r *http.Request) (int, bool) {
	fy, err := strconv.Atoi(chi.URLParam(r, "fy"))
	if err != nil || fy < 2400 || fy > 2700 {
		httpx.Problem(w, http.StatusBadRequest, "invalid fiscal year", "fiscal year must be a Buddhist Era year")
		return 0, false
	}
	return fy, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, ErrExclusiveAmounts), errors.Is(err, ErrInvalidDate):
		httpx.Problem(w, http.StatusUnprocessableEntity, "invalid transaction", err.Error())
	case errors.Is(err, ErrDuplicateDocNo):
		httpx.Problem(w, http.StatusConflict, "duplicate document number", err.Error())
	default:
		h.logger.Error(op, slog.String("path", r.URL.Path), slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "internal error", "")
	}
}
