package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/huangsam/codeinsights/schema"
)

// RunMetrics holds the gauges of one tool run. A nil *RunMetrics ignores every call.
type RunMetrics struct {
	registry *prometheus.Registry

	FilesAnalyzed           prometheus.Gauge
	LowestMaintainability   prometheus.Gauge
	AverageMaintainability  prometheus.Gauge
	LowMaintainabilityFiles prometheus.Gauge
	StageDuration           *prometheus.GaugeVec
}

// NewRunMetrics registers the run gauges on a private registry labeled with tool.
func NewRunMetrics(tool string) *RunMetrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	labels := prometheus.Labels{"tool": tool}

	return &RunMetrics{
		registry: registry,
		FilesAnalyzed: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "insights_files_analyzed",
			Help:        "Number of files processed by the last run.",
			ConstLabels: labels,
		}),
		LowestMaintainability: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "insights_lowest_maintainability",
			Help:        "Lowest maintainability index seen by the last run.",
			ConstLabels: labels,
		}),
		AverageMaintainability: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "insights_average_maintainability",
			Help:        "Average maintainability index over the project.",
			ConstLabels: labels,
		}),
		LowMaintainabilityFiles: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "insights_low_maintainability_files",
			Help:        "Number of files at or below the low maintainability threshold.",
			ConstLabels: labels,
		}),
		StageDuration: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "insights_stage_duration_seconds",
			Help:        "Wall time spent in each pipeline stage.",
			ConstLabels: labels,
		}, []string{"stage"}),
	}
}

// ObserveStage records how long a stage ran.
func (m *RunMetrics) ObserveStage(stage schema.StageState, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(string(stage)).Set(elapsed.Seconds())
}

// ObserveFiles records the number of processed files.
func (m *RunMetrics) ObserveFiles(n int) {
	if m == nil {
		return
	}
	m.FilesAnalyzed.Set(float64(n))
}

// ObserveComplexity records the maintainability summary of a js-complex run.
func (m *RunMetrics) ObserveComplexity(result *schema.ComplexityResult) {
	if m == nil || result == nil {
		return
	}
	m.FilesAnalyzed.Set(float64(result.Totals.Total))
	m.LowestMaintainability.Set(result.Totals.LowestMaintainability)
	m.AverageMaintainability.Set(result.Project.Maintainability)
	m.LowMaintainabilityFiles.Set(float64(len(result.Totals.LowMaintainability)))
}

// WriteTextfile writes every gauge in the Prometheus text format to path.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
