// Package metrics exposes signal pool statistics to Prometheus.
package metrics

import (
	"github.com/delaneyj/sigslot/sigslot"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is implemented by *sigslot.Signal of any payload type.
type StatsSource interface {
	Stats() sigslot.Stats
}

// Config configures a Collector.
type Config struct {
	// Namespace is the metrics namespace (default: "sigslot").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// Option configures a Collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func defaultConfig() Config {
	return Config{Namespace: "sigslot"}
}

// Collector reports the Stats of named signals. Every scrape takes each
// signal's write lock once.
type Collector struct {
	sources map[string]StatsSource

	connections *prometheus.Desc
	cells       *prometheus.Desc
	blocks      *prometheus.Desc
	readers     *prometheus.Desc
	blocked     *prometheus.Desc
	emits       *prometheus.Desc
	reclaimed   *prometheus.Desc
	expired     *prometheus.Desc
}

// NewCollector builds a collector over sources, keyed by the value of the
// "signal" label.
func NewCollector(sources map[string]StatsSource, opts ...Option) *Collector {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(cfg.Namespace, cfg.Subsystem, name),
			help,
			append([]string{"signal"}, labels...),
			cfg.ConstLabels,
		)
	}

	c := &Collector{
		sources:     make(map[string]StatsSource, len(sources)),
		connections: desc("connections", "Connection cells by state", "state"),
		cells:       desc("pool_cells", "Connection cells owned by the pool"),
		blocks:      desc("pool_blocks", "Blocks allocated by the pool"),
		readers:     desc("active_readers", "Readers registered per reclamation stage", "stage"),
		blocked:     desc("blocked", "Whether emit is blocked"),
		emits:       desc("emits_total", "Emit calls that were not blocked"),
		reclaimed:   desc("reclaimed_total", "Connection cells returned to the pool"),
		expired:     desc("expired_total", "Tracked connections dropped because their owner expired"),
	}
	for name, src := range sources {
		c.sources[name] = src
	}
	return c
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.connections
	ch <- c.cells
	ch <- c.blocks
	ch <- c.readers
	ch <- c.blocked
	ch <- c.emits
	ch <- c.reclaimed
	ch <- c.expired
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for name, src := range c.sources {
		st := src.Stats()

		gauge := func(d *prometheus.Desc, v float64, labels ...string) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, append([]string{name}, labels...)...)
		}
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}

		gauge(c.connections, float64(st.Live), "live")
		gauge(c.connections, float64(st.Pending()), "pending")
		gauge(c.connections, float64(st.Free), "free")
		gauge(c.cells, float64(st.Cells))
		gauge(c.blocks, float64(st.Blocks))
		gauge(c.readers, float64(st.ReadersA), "A")
		gauge(c.readers, float64(st.ReadersB), "B")
		blocked := 0.0
		if st.Blocked {
			blocked = 1
		}
		gauge(c.blocked, blocked)
		counter(c.emits, st.Emits)
		counter(c.reclaimed, st.Reclaimed)
		counter(c.expired, st.Expired)
	}
}

// Register creates a collector and registers it with reg, or with
// prometheus.DefaultRegisterer when reg is nil.
func Register(reg prometheus.Registerer, sources map[string]StatsSource, opts ...Option) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := NewCollector(sources, opts...)
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	return c, nil
}
