// Package metrics exports a run summary as Prometheus metrics in the
// node-exporter textfile format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/models"
)

// Collector holds the gauges describing one analysis run.
type Collector struct {
	registry *prometheus.Registry

	files          *prometheus.GaugeVec
	bytes          *prometheus.GaugeVec
	duplicateFiles prometheus.Gauge
	scanDuration   prometheus.Gauge
	cancelled      prometheus.Gauge
	lastRun        prometheus.Gauge
}

// NewCollector creates a Collector with its own registry so repeated runs in
// one process never collide on registration.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		files: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sweepsafe_files",
				Help: "Number of analyzed files per category",
			},
			[]string{"root", "category"},
		),
		bytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sweepsafe_bytes",
				Help: "Total size in bytes of analyzed files per category",
			},
			[]string{"root", "category"},
		),
		duplicateFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweepsafe_duplicate_older_copies",
			Help: "Files downgraded because a newer file with the same name exists",
		}),
		scanDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweepsafe_scan_duration_seconds",
			Help: "Wall time of the last analysis",
		}),
		cancelled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweepsafe_scan_cancelled",
			Help: "1 if the last analysis was cancelled before completion",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweepsafe_last_run_timestamp_seconds",
			Help: "Unix time the last analysis started",
		}),
	}

	c.registry.MustRegister(c.files, c.bytes, c.duplicateFiles, c.scanDuration, c.cancelled, c.lastRun)
	return c
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records result in the gauges, replacing earlier values.
func (c *Collector) Observe(result *analyzer.Result) {
	summary := result.Summary()
	for _, cat := range models.AllCategories {
		c.files.WithLabelValues(result.Root, cat.String()).Set(float64(summary.Count(cat)))
		c.bytes.WithLabelValues(result.Root, cat.String()).Set(float64(summary.Bytes(cat)))
	}

	older := 0
	for _, g := range result.DuplicateGroups() {
		older += len(g.Older())
	}
	c.duplicateFiles.Set(float64(older))

	c.scanDuration.Set(result.Duration.Seconds())
	if result.Cancelled {
		c.cancelled.Set(1)
	} else {
		c.cancelled.Set(0)
	}
	c.lastRun.Set(float64(result.StartedAt.Unix()))
}

// WriteTextfile writes the registry to path in text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// WriteTextfile observes result in a fresh collector and writes it to path.
func WriteTextfile(path string, result *analyzer.Result) error {
	c := NewCollector()
	c.Observe(result)
	return c.WriteTextfile(path)
}
