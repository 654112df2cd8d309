package sigslot

import (
	"io"

	"github.com/sirupsen/logrus"
)

// PanicHandler receives the value recovered from a panicking slot.
type PanicHandler func(recovered any)

type config struct {
	capacity int
	log      logrus.FieldLogger
	onPanic  PanicHandler
}

// Option configures a Signal or a Lite.
type Option func(*config)

// WithCapacity sets the number of connection cells per pool block.
func WithCapacity(capacity int) Option {
	return func(c *config) {
		c.capacity = capacity
	}
}

// WithLogger sets the logger used for pool and reclamation events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithPanicHandler recovers panics raised by slots during emit. The handler
// is called with the recovered value and delivery continues with the next
// slot. Without it a panic stops the emit and propagates to the caller.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) {
		c.onPanic = h
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newConfig(opts []Option) config {
	cfg := config{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.capacity < 1 {
		cfg.capacity = 1
	}
	if cfg.log == nil {
		cfg.log = discardLogger()
	}
	return cfg
}
