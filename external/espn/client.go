package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/metrics"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const (
	defaultBaseURL      = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultTimeout      = 5 * time.Second
	defaultRetryBackoff = 500 * time.Millisecond
	scoreboardPath      = "/scoreboard"
	maxBodyBytes        = 4 << 20
	userAgent           = "pickem-league/1.0"
)

var errFeedTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	SeasonYear     int
	SeasonType     int
	Cache          *cache.Store
	Logger         *logging.Logger
	Metrics        metrics.Metrics
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads weekly games from the ESPN scoreboard.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	seasonYear   int
	seasonType   int
	cache        *cache.Store
	logger       *logging.Logger
	metrics      metrics.Metrics
	breaker      *resilience.CircuitBreaker
}

var _ usecase.GameFeed = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	m := metrics.OrNoop(cfg.Metrics)
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	breaker.OnStateChange(func(_, to resilience.CircuitState) {
		m.SetFeedCircuitOpen(to == resilience.CircuitStateOpen)
	})

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		timeout:      timeout,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		seasonYear:   cfg.SeasonYear,
		seasonType:   cfg.SeasonType,
		cache:        cfg.Cache,
		logger:       logger.With("component", "espn"),
		metrics:      m,
		breaker:      breaker,
	}
}

// ListGames returns the games of one week in feed order. Events without an id
// or without both competitors are skipped.
func (c *Client) ListGames(ctx context.Context, query game.Query) ([]game.Game, error) {
	if query.Week < 1 {
		return nil, fmt.Errorf("%w: week must be >= 1", usecase.ErrInvalidInput)
	}

	params := c.scoreboardParams(query)
	raw, err := c.fetch(ctx, scoreboardPath, params)
	if err != nil {
		return nil, err
	}

	var envelope scoreboardEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode scoreboard payload: %w", err)
	}

	games := make([]game.Game, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		g, ok := mapEvent(event, query.Week)
		if !ok {
			c.logger.DebugContext(ctx, "skip malformed scoreboard event", "event_id", event.ID, "week", query.Week)
			continue
		}
		games = append(games, g)
	}
	return games, nil
}

func (c *Client) scoreboardParams(query game.Query) url.Values {
	params := url.Values{}
	params.Set("week", strconv.Itoa(query.Week))

	season := query.Season
	if season <= 0 {
		season = c.seasonYear
	}
	if season > 0 {
		params.Set("year", strconv.Itoa(season))
	}

	seasonType := query.SeasonType
	if seasonType <= 0 {
		seasonType = c.seasonType
	}
	if seasonType > 0 {
		params.Set("seasontype", strconv.Itoa(seasonType))
	}
	return params
}

// fetch returns the raw body for path, served from the cache when fresh.
func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	load := func(ctx context.Context) (any, error) {
		return c.doRequest(ctx, fullURL, params)
	}

	var (
		out any
		err error
	)
	if c.cache != nil {
		out, err = c.cache.GetOrLoad(ctx, cache.Key(fullURL, params), load)
	} else {
		out, err = load(ctx)
	}
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected cached payload type %T", out)
	}
	return raw, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL string, params url.Values) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.metrics.IncFeedRequests(metrics.FeedOutcomeCircuitOpen)
		c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
		return nil, fmt.Errorf("%w: game feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	raw, err := c.executeRequest(ctx, fullURL+"?"+params.Encode())
	c.metrics.ObserveFeedDuration(time.Since(started).Seconds())

	switch {
	case err == nil:
		c.breaker.RecordSuccess()
		c.metrics.IncFeedRequests(metrics.FeedOutcomeSuccess)
		return raw, nil
	case crerr.Is(err, errFeedTransient):
		c.breaker.RecordFailure()
	default:
		c.breaker.RecordSuccess()
	}
	c.metrics.IncFeedRequests(metrics.FeedOutcomeError)
	return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, retry, err := c.attempt(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !retry || attempt == c.maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, crerr.Wrapf(errFeedTransient, "wait for retry: %v", ctx.Err())
		case <-timer.C:
		}
	}

	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "attempts", c.maxRetries+1, "error", lastErr)
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, fullURL string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, crerr.Wrapf(errFeedTransient, "send request: %v", err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, true, crerr.Wrapf(errFeedTransient, "read response body: %v", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return append([]byte(nil), buf.B...), false, nil
	}
	if isRetryableStatus(resp.StatusCode) {
		return nil, true, crerr.Wrapf(errFeedTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
	}
	return nil, false, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(buf.B))
}

func mapEvent(event scoreboardEvent, fallbackWeek int) (game.Game, bool) {
	id := strings.TrimSpace(event.ID)
	if id == "" || len(event.Competitions) == 0 {
		return game.Game{}, false
	}

	var home, away *competitor
	for i := range event.Competitions[0].Competitors {
		item := &event.Competitions[0].Competitors[i]
		switch item.HomeAway {
		case "home":
			home = item
		case "away":
			away = item
		}
	}
	if home == nil || away == nil {
		return game.Game{}, false
	}

	week := event.Week.Number
	if week < 1 {
		week = fallbackWeek
	}

	return game.Game{
		ID:        id,
		Week:      week,
		HomeTeam:  strings.TrimSpace(home.Team.DisplayName),
		AwayTeam:  strings.TrimSpace(away.Team.DisplayName),
		HomeScore: parseScore(home.Score),
		AwayScore: parseScore(away.Score),
		Status:    game.ParseStatus(event.Status.Type.State),
		KickoffAt: parseKickoff(event.Date),
	}, true
}

func parseScore(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseKickoff(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
