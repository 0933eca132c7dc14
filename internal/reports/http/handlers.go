package reporthttp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"

	"github.com/stocklens-erp/stocklens/internal/inventory"
	"github.com/stocklens-erp/stocklens/internal/reports"
)

const requestTimeout = 10 * time.Second

// ReportService defines the report generation contract used by the handler.
type ReportService interface {
	GenerateReport(ctx context.Context, reportType reports.ReportType, filters reports.Filters, loc language.Tag) (*reports.Report, error)
}

// Handler serves report generation over HTTP.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
}

// NewHandler constructs the reports HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// reportQuery carries the raw query parameters before they become Filters.
type reportQuery struct {
	DateFrom        string `validate:"omitempty,datetime=2006-01-02"`
	DateTo          string `validate:"omitempty,datetime=2006-01-02"`
	Warehouse       string `validate:"omitempty,max=120"`
	Category        string `validate:"omitempty,max=120"`
	ProductID       string `validate:"omitempty,number"`
	UserID          string `validate:"omitempty,number"`
	Period          string `validate:"omitempty,oneof=WEEK MONTH QUARTER YEAR"`
	DaysAhead       string `validate:"omitempty,number"`
	IncludeInactive string `validate:"omitempty,oneof=true false 1 0"`
	Locale          string `validate:"omitempty,bcp47_language_tag"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reportType := reports.ReportType(chi.URLParam(r, "type"))

	filters, loc, err := h.parseQuery(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.GenerateReport(ctx, reportType, filters, loc)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidFilters):
			h.respondError(w, http.StatusBadRequest, err)
		case errors.Is(err, reports.ErrUnknownReportType):
			h.respondError(w, http.StatusNotFound, err)
		case errors.Is(err, inventory.ErrUnavailable):
			h.logger.Error("report data fetch failed", slog.String("type", string(reportType)), slog.Any("error", err))
			h.respondError(w, http.StatusBadGateway, errors.New("data store unavailable"))
		default:
			h.logger.Error("report generation failed", slog.String("type", string(reportType)), slog.Any("error", err))
			h.respondError(w, http.StatusInternalServerError, errors.New("internal error"))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		h.logger.Error("encode report", slog.Any("error", err))
	}
}

func (h *Handler) parseQuery(r *http.Request) (reports.Filters, language.Tag, error) {
	q := r.URL.Query()
	raw := reportQuery{
		DateFrom:        q.Get("date_from"),
		DateTo:          q.Get("date_to"),
		Warehouse:       q.Get("warehouse"),
		Category:        q.Get("category"),
		ProductID:       q.Get("product_id"),
		UserID:          q.Get("user_id"),
		Period:          q.Get("period"),
		DaysAhead:       q.Get("days_ahead"),
		IncludeInactive: q.Get("include_inactive"),
		Locale:          q.Get("locale"),
	}
	if err := h.validate.Struct(raw); err != nil {
		return reports.Filters{}, language.Und, errors.New("invalid query parameters")
	}

	filters := reports.Filters{
		Warehouse: raw.Warehouse,
		Category:  raw.Category,
		Period:    reports.Period(raw.Period),
	}
	if raw.DateFrom != "" {
		from, _ := time.Parse("2006-01-02", raw.DateFrom)
		filters.DateFrom = &from
	}
	if raw.DateTo != "" {
		// Inclusive end of day.
		to, _ := time.Parse("2006-01-02", raw.DateTo)
		to = to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &to
	}
	if raw.ProductID != "" {
		filters.ProductID, _ = strconv.ParseInt(raw.ProductID, 10, 64)
	}
	if raw.UserID != "" {
		filters.UserID, _ = strconv.ParseInt(raw.UserID, 10, 64)
	}
	if raw.DaysAhead != "" {
		filters.DaysAhead, _ = strconv.Atoi(raw.DaysAhead)
	}
	filters.IncludeInactive = raw.IncludeInactive == "true" || raw.IncludeInactive == "1"

	return filters, reports.MatchLocale(raw.Locale), nil
}

func (h *Handler) respondError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
