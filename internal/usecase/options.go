package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pickem"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/metrics"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const (
	defaultStoreTimeout     = 3 * time.Second
	defaultReconcileWorkers = 8
)

// Option tunes a service. Every service accepts the same set.
type Option func(*serviceOptions)

type serviceOptions struct {
	logger       *logging.Logger
	metrics      metrics.Metrics
	storeTimeout time.Duration
	rules        pickem.Rules
	tieOrder     standings.TieOrder
	workers      int
	now          func() time.Time
}

func WithLogger(logger *logging.Logger) Option {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m metrics.Metrics) Option {
	return func(o *serviceOptions) {
		o.metrics = metrics.OrNoop(m)
	}
}

// WithStoreTimeout bounds each repository call.
func WithStoreTimeout(d time.Duration) Option {
	return func(o *serviceOptions) {
		if d > 0 {
			o.storeTimeout = d
		}
	}
}

// WithRules replaces the standard scoring rules. Confidence leagues are unaffected.
func WithRules(rules pickem.Rules) Option {
	return func(o *serviceOptions) {
		o.rules = rules
	}
}

func WithTieOrder(order standings.TieOrder) Option {
	return func(o *serviceOptions) {
		o.tieOrder = order
	}
}

func WithReconcileWorkers(n int) Option {
	return func(o *serviceOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *serviceOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func newServiceOptions(opts []Option) serviceOptions {
	o := serviceOptions{
		logger:       logging.Default(),
		metrics:      metrics.Noop{},
		storeTimeout: defaultStoreTimeout,
		rules:        pickem.DefaultRules(),
		tieOrder:     standings.TieOrderInput,
		workers:      defaultReconcileWorkers,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o serviceOptions) withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, o.storeTimeout)
}
