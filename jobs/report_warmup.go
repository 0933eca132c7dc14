package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/text/language"

	jobmetrics "github.com/stocklens-erp/stocklens/internal/jobs"
	"github.com/stocklens-erp/stocklens/internal/reports"
)

// ReportGenerator is the slice of the reports service the warmup needs.
type ReportGenerator interface {
	GenerateReport(ctx context.Context, reportType reports.ReportType, filters reports.Filters, loc language.Tag) (*reports.Report, error)
}

// warmupReportTypes are the dashboard reports pre-generated each morning.
var warmupReportTypes = []reports.ReportType{
	reports.ReportInventorySummary,
	reports.ReportABCClassification,
	reports.ReportLowStock,
	reports.ReportReorderPrediction,
	reports.ReportBatchAnomalies,
}

// ReportWarmupJob pre-generates the dashboard report set so the first morning
// request hits a warm cache.
type ReportWarmupJob struct {
	Service ReportGenerator
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReportWarmupJob initialises the warmup handler.
func NewReportWarmupJob(service ReportGenerator, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportWarmupJob {
	return &ReportWarmupJob{Service: service, Logger: logger, Metrics: metrics}
}

// Handle executes the warmup logic.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskReportWarmup)
	var resultErr error
	defer func() { resultErr = tracker.End(resultErr) }()

	loc := reports.MatchLocale(payload.Locale)
	filters := reports.Filters{Warehouse: payload.Warehouse}

	logger := j.logger().With(slog.String("warehouse", payload.Warehouse))
	logger.Info("starting report warmup")

	start := time.Now()
	var failed int
	for _, reportType := range warmupReportTypes {
		if _, err := j.Service.GenerateReport(ctx, reportType, filters, loc); err != nil {
			failed++
			logger.Warn("warmup report failed",
				slog.String("type", string(reportType)),
				slog.Any("error", err),
			)
			resultErr = err
		}
	}

	logger.Info("completed report warmup",
		slog.Int("reports", len(warmupReportTypes)),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
