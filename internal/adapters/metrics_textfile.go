package adapters

import (
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/prometheus/client_golang/prometheus"

	"cookbook-cleanup/internal/ports"
	"cookbook-cleanup/internal/types"
)

const metricsNamespace = "cookbook_cleanup"

// TextfileMetricsAdapter records run outcomes in a private registry and
// writes them in the node_exporter textfile format.
//
// Metrics:
//   - cookbook_cleanup_actions_total: action results by status
//   - cookbook_cleanup_protections_total: kept versions by protection source
//   - cookbook_cleanup_planned_versions: versions selected for deletion
//   - cookbook_cleanup_kept_versions: versions in the augmented keep set
//   - cookbook_cleanup_resolution_skips: soft run-list failures
//   - cookbook_cleanup_last_run_timestamp_seconds: completion time of the run
type TextfileMetricsAdapter struct {
	Path     string
	Clock    func() time.Time
	registry *prometheus.Registry

	actions     *prometheus.CounterVec
	protections *prometheus.CounterVec
	planned     prometheus.Gauge
	kept        prometheus.Gauge
	skips       prometheus.Gauge
	lastRun     prometheus.Gauge
}

func NewTextfileMetricsAdapter(path string) *TextfileMetricsAdapter {
	registry := prometheus.NewRegistry()
	m := &TextfileMetricsAdapter{
		Path:     path,
		Clock:    time.Now,
		registry: registry,
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "actions_total",
				Help:      "Cookbook version actions by status",
			},
			[]string{"status"},
		),
		protections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "protections_total",
				Help:      "Cookbook versions kept by environment policy, by source",
			},
			[]string{"source"},
		),
		planned: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "planned_versions",
			Help:      "Cookbook versions selected for deletion",
		}),
		kept: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "kept_versions",
			Help:      "Cookbook versions retained by the keep set",
		}),
		skips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "resolution_skips",
			Help:      "Run-list resolutions skipped during the run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last cleanup run finished",
		}),
	}
	registry.MustRegister(m.actions, m.protections, m.planned, m.kept, m.skips, m.lastRun)
	return m
}

func (m *TextfileMetricsAdapter) Observe(report types.CleanupReport) {
	for _, result := range report.Results {
		m.actions.WithLabelValues(string(result.Status)).Inc()
	}
	for _, protection := range report.Plan.Protections {
		m.protections.WithLabelValues(string(protection.Source)).Inc()
	}
	planned := 0
	for _, name := range report.Plan.Pending() {
		planned += len(report.Plan.Delete[name])
	}
	m.planned.Set(float64(planned))
	m.kept.Set(float64(report.Plan.Keep.Count()))
	m.skips.Set(float64(len(report.Plan.Skipped)))
	clock := m.Clock
	if clock == nil {
		clock = time.Now
	}
	m.lastRun.Set(float64(clock().Unix()))
}

// Flush writes the registry to Path. An empty Path disables output.
func (m *TextfileMetricsAdapter) Flush() error {
	if strings.TrimSpace(m.Path) == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.Path, m.registry); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write metrics textfile").
			WithCause(err)
	}
	return nil
}

var _ ports.MetricsPort = (*TextfileMetricsAdapter)(nil)
