package metrics

// Metrics is what the service reports about scoring and the game feed.
type Metrics interface {
	IncSubmissions(mode string)
	IncValidationFailures()
	IncReconciled(changed bool)
	IncFeedRequests(outcome string)
	ObserveFeedDuration(seconds float64)
	SetFeedCircuitOpen(open bool)
}

// Feed request outcomes.
const (
	FeedOutcomeSuccess     = "success"
	FeedOutcomeError       = "error"
	FeedOutcomeCircuitOpen = "circuit_open"
	FeedOutcomeDegraded    = "degraded"
)

// Noop discards everything.
type Noop struct{}

var _ Metrics = Noop{}

func (Noop) IncSubmissions(string)       {}
func (Noop) IncValidationFailures()      {}
func (Noop) IncReconciled(bool)          {}
func (Noop) IncFeedRequests(string)      {}
func (Noop) ObserveFeedDuration(float64) {}
func (Noop) SetFeedCircuitOpen(bool)     {}

// OrNoop returns m, or Noop when m is nil.
func OrNoop(m Metrics) Metrics {
	if m == nil {
		return Noop{}
	}
	return m
}
