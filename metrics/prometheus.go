// SPDX-License-Identifier: MIT

package metrics

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Prometheus implements Recorder backed by a prometheus.Registry.
type Prometheus struct {
	reg       *prometheus.Registry
	namespace string
	once      sync.Once

	stageSeconds *prometheus.HistogramVec
	runs         *prometheus.CounterVec
	participants prometheus.Gauge
	groupSize    *prometheus.GaugeVec
	explained    *prometheus.GaugeVec
	offset       prometheus.Gauge
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus creates a Prometheus-backed recorder.
//
// Parameters:
//   - reg: registry to register into (a fresh one if nil)
//   - namespace: metric namespace (defaults to "radial" if empty)
func NewPrometheus(reg *prometheus.Registry, namespace string) *Prometheus {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = "radial"
	}

	return &Prometheus{reg: reg, namespace: namespace}
}

// Registry returns the registry holding the metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.reg }

func (p *Prometheus) ensureRegistered() {
	p.once.Do(func() {
		p.stageSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8), // 1ms .. ~16s
		}, []string{"stage"})

		p.runs = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Finished runs by result (success,failure).",
		}, []string{"result"})

		p.participants = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "participants",
			Help:      "Participants in the last partition.",
		})

		p.groupSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "group_size",
			Help:      "Members per group in the last partition.",
		}, []string{"group"})

		p.explained = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "projection",
			Name:      "explained_variance_ratio",
			Help:      "Explained-variance ratio per principal component.",
		}, []string{"component"})

		p.offset = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "partition",
			Name:      "offset_degrees",
			Help:      "Winning rotation offset of the last partition.",
		})

		p.reg.MustRegister(p.stageSeconds)
		p.reg.MustRegister(p.runs)
		p.reg.MustRegister(p.participants)
		p.reg.MustRegister(p.groupSize)
		p.reg.MustRegister(p.explained)
		p.reg.MustRegister(p.offset)
	})
}

// ObserveStage observes a stage duration.
func (p *Prometheus) ObserveStage(stage string, seconds float64) {
	p.ensureRegistered()
	p.stageSeconds.WithLabelValues(stage).Observe(seconds)
}

// RecordRun increments the run counter for result.
func (p *Prometheus) RecordRun(result string) {
	p.ensureRegistered()
	p.runs.WithLabelValues(result).Inc()
}

// SetParticipants sets the participant gauge.
func (p *Prometheus) SetParticipants(n int) {
	p.ensureRegistered()
	p.participants.Set(float64(n))
}

// SetGroupSize sets the size gauge of one group.
func (p *Prometheus) SetGroupSize(label string, n int) {
	p.ensureRegistered()
	p.groupSize.WithLabelValues(label).Set(float64(n))
}

// SetExplainedVariance sets the ratio gauge of one component (0-based index, labelled 1-based).
func (p *Prometheus) SetExplainedVariance(component int, ratio float64) {
	p.ensureRegistered()
	p.explained.WithLabelValues(strconv.Itoa(component + 1)).Set(ratio)
}

// SetOffset sets the offset gauge.
func (p *Prometheus) SetOffset(degrees float64) {
	p.ensureRegistered()
	p.offset.Set(degrees)
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, atomically (temp file + rename).
func (p *Prometheus) WriteTextfile(path string) error {
	p.ensureRegistered()
	if err := prometheus.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}

	return nil
}

// Push sends every registered metric to a Pushgateway under job.
func (p *Prometheus) Push(ctx context.Context, url, job string) error {
	p.ensureRegistered()
	if err := push.New(url, job).Gatherer(p.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("metrics: push to %s: %w", url, err)
	}

	return nil
}
