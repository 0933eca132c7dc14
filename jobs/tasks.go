package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup pre-generates the dashboard report set into cache.
	TaskReportWarmup = "reports:warmup"
	// TaskBatchAnomalyScan runs the batch anomaly detector over all batches.
	TaskBatchAnomalyScan = "reports:batch_anomaly_scan"
)

// ReportWarmupPayload scopes the warmup run.
type ReportWarmupPayload struct {
	Warehouse string `json:"warehouse,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// NewReportWarmupTask constructs the warmup task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// BatchAnomalyScanPayload scopes the anomaly scan run.
type BatchAnomalyScanPayload struct {
	ProductID int64 `json:"product_id,omitempty"`
}

// NewBatchAnomalyScanTask constructs the anomaly scan task.
func NewBatchAnomalyScanTask(payload BatchAnomalyScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBatchAnomalyScan, data), nil
}
