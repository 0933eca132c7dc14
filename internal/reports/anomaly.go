package reports

import (
	"time"

	"github.com/stocklens-erp/stocklens/internal/inventory"
)

// AnomalyKind names an independent batch anomaly check.
type AnomalyKind string

const (
	// AnomalyHighDefectRate flags defective batches.
	AnomalyHighDefectRate AnomalyKind = "HIGH_DEFECT_RATE"
	// AnomalyBlockedTooLong flags batches blocked beyond a week.
	AnomalyBlockedTooLong AnomalyKind = "BLOCKED_TOO_LONG"
	// AnomalyExpiringSoon flags sellable batches close to expiry.
	AnomalyExpiringSoon AnomalyKind = "EXPIRING_SOON"
)

// Severity tiers an anomaly.
type Severity string

const (
	// SeverityCritical requires immediate action.
	SeverityCritical Severity = "CRITICAL"
	// SeverityHigh should be handled within the day.
	SeverityHigh Severity = "HIGH"
	// SeverityMedium should be reviewed.
	SeverityMedium Severity = "MEDIUM"
)

// BatchAnomaly is one flagged condition on a batch. A batch may carry several
// anomalies of different kinds but never two of the same kind.
type BatchAnomaly struct {
	Batch    inventory.Batch
	Kind     AnomalyKind
	Severity Severity
	Detail   string
}

// AnomalyScan is the detector output: the unordered anomaly list plus a
// severity count summary.
type AnomalyScan struct {
	Anomalies []BatchAnomaly
	Summary   map[Severity]int
}

// DetectBatchAnomalies runs the three independent checks over every batch.
func DetectBatchAnomalies(batches []inventory.Batch, now time.Time) AnomalyScan {
	scan := AnomalyScan{Summary: map[Severity]int{
		SeverityCritical: 0,
		SeverityHigh:     0,
		SeverityMedium:   0,
	}}

	record := func(a BatchAnomaly) {
		scan.Anomalies = append(scan.Anomalies, a)
		scan.Summary[a.Severity]++
	}

	for _, b := range batches {
		if a, ok := checkDefectRate(b); ok {
			record(a)
		}
		if a, ok := checkBlockedDuration(b, now); ok {
			record(a)
		}
		if a, ok := checkExpiry(b, now); ok {
			record(a)
		}
	}
	return scan
}

func checkDefectRate(b inventory.Batch) (BatchAnomaly, bool) {
	if b.Status != inventory.BatchDefective {
		return BatchAnomaly{}, false
	}
	severity := SeverityHigh
	detail := "batch marked defective"
	if b.QuantityDefective > b.QuantityTotal*0.5 {
		severity = SeverityCritical
		detail = "more than half of the batch is defective"
	}
	return BatchAnomaly{Batch: b, Kind: AnomalyHighDefectRate, Severity: severity, Detail: detail}, true
}

func checkBlockedDuration(b inventory.Batch, now time.Time) (BatchAnomaly, bool) {
	if b.Status != inventory.BatchBlocked {
		return BatchAnomaly{}, false
	}
	blockedDays := now.Sub(b.UpdatedAt).Hours() / 24
	if blockedDays <= 7 {
		return BatchAnomaly{}, false
	}
	severity := SeverityMedium
	switch {
	case blockedDays > 30:
		severity = SeverityCritical
	case blockedDays > 14:
		severity = SeverityHigh
	}
	return BatchAnomaly{Batch: b, Kind: AnomalyBlockedTooLong, Severity: severity, Detail: "batch blocked for over a week"}, true
}

func checkExpiry(b inventory.Batch, now time.Time) (BatchAnomaly, bool) {
	if b.Status != inventory.BatchOK || b.ExpiryDate == nil {
		return BatchAnomaly{}, false
	}
	daysLeft := b.ExpiryDate.Sub(now).Hours() / 24
	if daysLeft > 30 {
		return BatchAnomaly{}, false
	}
	severity := SeverityMedium
	switch {
	case daysLeft <= 7:
		severity = SeverityCritical
	case daysLeft <= 14:
		severity = SeverityHigh
	}
	return BatchAnomaly{Batch: b, Kind: AnomalyExpiringSoon, Severity: severity, Detail: "batch approaches expiry date"}, true
}
