package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service records metrics with Prometheus collectors.
type Service struct {
	Submissions        *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	Reconciled         *prometheus.CounterVec
	FeedRequests       *prometheus.CounterVec
	FeedDuration       prometheus.Histogram
	FeedCircuitOpen    prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickem_submissions_total",
			Help: "Weekly submissions accepted, by league mode.",
		}, []string{"mode"}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pickem_submission_validation_failures_total",
			Help: "Submissions rejected by validation.",
		}),
		Reconciled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickem_reconciliations_total",
			Help: "Submission reconciliations, by whether the stored score changed.",
		}, []string{"changed"}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pickem_feed_requests_total",
			Help: "Game feed requests, by outcome.",
		}, []string{"outcome"}),
		FeedDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pickem_feed_request_duration_seconds",
			Help:    "Duration of game feed requests that reached the network.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
		FeedCircuitOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pickem_feed_circuit_open",
			Help: "1 while the game feed circuit breaker is open.",
		}),
	}

	reg.MustRegister(
		s.Submissions,
		s.ValidationFailures,
		s.Reconciled,
		s.FeedRequests,
		s.FeedDuration,
		s.FeedCircuitOpen,
	)

	return s
}

func (s *Service) IncSubmissions(mode string) {
	s.Submissions.WithLabelValues(mode).Inc()
}

func (s *Service) IncValidationFailures() {
	s.ValidationFailures.Inc()
}

func (s *Service) IncReconciled(changed bool) {
	s.Reconciled.WithLabelValues(strconv.FormatBool(changed)).Inc()
}

func (s *Service) IncFeedRequests(outcome string) {
	s.FeedRequests.WithLabelValues(outcome).Inc()
}

func (s *Service) ObserveFeedDuration(seconds float64) {
	s.FeedDuration.Observe(seconds)
}

func (s *Service) SetFeedCircuitOpen(open bool) {
	if open {
		s.FeedCircuitOpen.Set(1)
		return
	}
	s.FeedCircuitOpen.Set(0)
}
