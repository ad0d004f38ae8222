package app

import (
	"os"
	"time"

	"github.com/google/uuid"

	"cookbook-cleanup/internal/adapters"
	"cookbook-cleanup/internal/ports"
)

// Service wires the cleanup use cases to their adapters. Nil ports are
// built from the request at call time.
type Service struct {
	Server   ports.ChefServerPort
	Confirm  ports.ConfirmPort
	Report   ports.ReportPort
	Audit    ports.AuditPort
	Metrics  ports.MetricsPort
	Clock    func() time.Time
	NewRunID func() string
}

func NewService() Service {
	return Service{
		Report:   adapters.NewConsoleReportAdapter(os.Stdout),
		Clock:    time.Now,
		NewRunID: uuid.NewString,
	}
}

func timeNow(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

func (s Service) runID() string {
	if s.NewRunID == nil {
		return uuid.NewString()
	}
	return s.NewRunID()
}
