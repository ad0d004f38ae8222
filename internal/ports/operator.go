package ports

import (
	"context"

	"cookbook-cleanup/internal/types"
)

//go:generate mockgen -source=operator.go -destination=mocks/mock_operator.go -package=mocks
type ConfirmPort interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ReportPort interface {
	Report(report types.CleanupReport) error
}

type AuditPort interface {
	ListRuns(ctx context.Context, limit int) ([]types.RunSummary, error)
	RecordRun(ctx context.Context, record types.RunRecord) error
}

type MetricsPort interface {
	Observe(report types.CleanupReport)
	Flush() error
}
