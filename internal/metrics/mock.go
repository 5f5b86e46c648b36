package metrics

import "sync"

// Mock counts calls for assertions in tests. It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	submissions        map[string]int
	validationFailures int
	reconciled         map[bool]int
	feedRequests       map[string]int
	feedDurations      []float64
	circuitOpen        bool
}

var _ Metrics = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{
		submissions:  make(map[string]int),
		reconciled:   make(map[bool]int),
		feedRequests: make(map[string]int),
	}
}

func (m *Mock) IncSubmissions(mode string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[mode]++
}

func (m *Mock) IncValidationFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validationFailures++
}

func (m *Mock) IncReconciled(changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reconciled[changed]++
}

func (m *Mock) IncFeedRequests(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedRequests[outcome]++
}

func (m *Mock) ObserveFeedDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedDurations = append(m.feedDurations, seconds)
}

func (m *Mock) SetFeedCircuitOpen(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuitOpen = open
}

func (m *Mock) Submissions(mode string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submissions[mode]
}

func (m *Mock) ValidationFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validationFailures
}

func (m *Mock) Reconciled(changed bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reconciled[changed]
}

func (m *Mock) FeedRequests(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.feedRequests[outcome]
}

func (m *Mock) FeedDurations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.feedDurations)
}

func (m *Mock) CircuitOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.circuitOpen
}
