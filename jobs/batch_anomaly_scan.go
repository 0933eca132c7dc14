package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stocklens-erp/stocklens/internal/inventory"
	jobmetrics "github.com/stocklens-erp/stocklens/internal/jobs"
	"github.com/stocklens-erp/stocklens/internal/reports"
)

// BatchLister is the slice of the inventory repository the scan needs.
type BatchLister interface {
	ListBatches(ctx context.Context, filter inventory.BatchFilter) ([]inventory.Batch, error)
}

// BatchAnomalyScanJob runs the batch anomaly detector on a schedule and logs
// every finding, so defective, blocked and expiring batches surface without
// anyone opening the report.
type BatchAnomalyScanJob struct {
	Repo    BatchLister
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewBatchAnomalyScanJob initialises the anomaly scan handler.
func NewBatchAnomalyScanJob(repo BatchLister, logger *slog.Logger, metrics *jobmetrics.Metrics) *BatchAnomalyScanJob {
	return &BatchAnomalyScanJob{
		Repo:    repo,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the anomaly scan logic.
func (j *BatchAnomalyScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Repo == nil {
		return errors.New("batch anomaly scan: handler not configured")
	}
	var payload BatchAnomalyScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.Metrics.Track(TaskBatchAnomalyScan)
	var resultErr error
	defer func() { resultErr = tracker.End(resultErr) }()

	logger := j.logger()
	logger.Info("starting batch anomaly scan")
	start := j.clock()

	batches, err := j.Repo.ListBatches(ctx, inventory.BatchFilter{ProductID: payload.ProductID})
	if err != nil {
		resultErr = err
		logger.Error("scan failed", slog.Any("error", err))
		return resultErr
	}

	scan := reports.DetectBatchAnomalies(batches, start)
	for _, a := range scan.Anomalies {
		logger.Warn("batch anomaly detected",
			slog.Int64("batch_id", a.Batch.ID),
			slog.Int64("product_id", a.Batch.ProductID),
			slog.String("kind", string(a.Kind)),
			slog.String("severity", string(a.Severity)),
		)
	}
	for severity, count := range scan.Summary {
		j.Metrics.AddAnomalies(string(severity), count)
	}

	logger.Info("completed batch anomaly scan",
		slog.Int("batches", len(batches)),
		slog.Int("anomalies", len(scan.Anomalies)),
		slog.Duration("duration", time.Since(start)),
	)
	return resultErr
}

func (j *BatchAnomalyScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
