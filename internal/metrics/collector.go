package metrics

import (
	"context"

	"github.com/livp123/evtxsift/internal/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	namespace = "evtxsift"
	// JobName is the Pushgateway job label.
	JobName = "evtxsift"
)

// Collector holds the counters of one run on a private registry, so
// repeated runs in one process (tests) never collide.
// Collector 在私有注册表上保存一次运行的计数器。
type Collector struct {
	registry *prometheus.Registry

	files        *prometheus.CounterVec
	records      prometheus.Counter
	decodeErrors prometheus.Counter
	verdicts     *prometheus.CounterVec
	workers      prometheus.Gauge
	duration     prometheus.Gauge
}

// New registers the run metrics on a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_total",
				Help:      "Source files handled, by status",
			},
			[]string{"status"},
		),
		records: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_total",
				Help:      "Records decoded from source files",
			},
		),
		decodeErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_errors_total",
				Help:      "Records that could not be decoded and were skipped",
			},
		),
		verdicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "verdicts_total",
				Help:      "Filter outcomes per record (match or rejecting stage)",
			},
			[]string{"verdict"},
		),
		workers: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workers",
				Help:      "Size of the worker pool",
			},
		),
		duration: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Wall clock duration of the last run",
			},
		),
	}
}

// Registry exposes the underlying registry as a Gatherer.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) FileDone(failed bool) {
	if failed {
		c.files.WithLabelValues("failed").Inc()
		return
	}
	c.files.WithLabelValues("processed").Inc()
}

func (c *Collector) RecordDecoded() { c.records.Inc() }

func (c *Collector) DecodeError() { c.decodeErrors.Inc() }

func (c *Collector) ObserveVerdict(v event.Verdict) {
	c.verdicts.WithLabelValues(v.String()).Inc()
}

func (c *Collector) SetWorkers(n int) { c.workers.Set(float64(n)) }

func (c *Collector) SetDuration(seconds float64) { c.duration.Set(seconds) }

// WriteTextfile writes the metrics in the node_exporter textfile format.
// The file is replaced atomically.
// WriteTextfile 以 textfile 格式原子写入指标。
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Push sends the metrics to a Pushgateway, grouped by run id.
func (c *Collector) Push(ctx context.Context, url, runID string) error {
	p := push.New(url, JobName).Gatherer(c.registry)
	if runID != "" {
		p = p.Grouping("run_id", runID)
	}
	return p.PushContext(ctx)
}
