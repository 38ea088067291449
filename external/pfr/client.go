package pfr

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/riskibarqy/pfr-scraper/internal/platform/logging"
	"github.com/riskibarqy/pfr-scraper/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://www.pro-football-reference.com"

	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

var tracer = otel.Tracer("external/pfr")

// PageCache stores raw pages keyed by absolute URL.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, page []byte) error
}

type ClientConfig struct {
	BaseURL      string
	UserAgent    string
	Timeout time.Duration
	// MaxRetries of zero means the default of three; a negative value disables retries.
	MaxRetries   int
	RetryBackoff time.Duration
	// Breaker and Cache are optional and may be shared between clients.
	Breaker *resilience.CircuitBreaker
	Cache   PageCache
	Logger  *logging.Logger
}

// Client fetches pages from the site through a single resty session. A Client is
// not safe for concurrent use; give each worker its own.
type Client struct {
	baseURL      *url.URL
	userAgent    string
	timeout      time.Duration
	maxRetries   int
	retryBackoff time.Duration
	breaker      *resilience.CircuitBreaker
	cache        PageCache
	logger       *logging.Logger

	session    *resty.Client
	newSession func() (*resty.Client, error)
}

func NewClient(cfg ClientConfig) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	rawBase := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if rawBase == "" {
		rawBase = DefaultBaseURL
	}
	baseURL, err := url.Parse(rawBase)
	if err != nil || baseURL.Host == "" {
		return nil, errors.Newf("invalid site base url %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	switch {
	case maxRetries == 0:
		maxRetries = defaultMaxRetries
	case maxRetries < 0:
		maxRetries = 0
	}

	c := &Client{
		baseURL:      baseURL,
		userAgent:    strings.TrimSpace(cfg.UserAgent),
		timeout:      timeout,
		maxRetries:   maxRetries,
		retryBackoff: cfg.RetryBackoff,
		breaker:      cfg.Breaker,
		cache:        cfg.Cache,
		logger:       logger,
	}
	c.newSession = c.buildSession

	if c.session, err = c.newSession(); err != nil {
		return nil, err
	}
	return c, nil
}

// BaseURL returns the site root every fetched URL must live under.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Fetch returns the body of the page at rawURL. Transient failures are retried with
// a brand new session each time; the final failure is reported as a *FetchError.
// Context cancellation is returned unchanged.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.checkURL(rawURL); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "pfr.Fetch", trace.WithAttributes(attribute.String("url.full", rawURL)))
	defer span.End()

	if page, ok := c.lookupCache(ctx, rawURL); ok {
		span.SetAttributes(attribute.Bool("pfr.cache_hit", true))
		return page, nil
	}

	if err := c.breaker.Allow(); err != nil {
		fetchErr := &FetchError{URL: rawURL, Err: errors.Mark(err, ErrTransientFetch)}
		span.SetStatus(codes.Error, fetchErr.Error())
		return nil, fetchErr
	}

	var (
		lastErr    error
		lastStatus int
		attempts   int
	)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, attempt); err != nil {
				return nil, err
			}
			if err := c.replaceSession(); err != nil {
				lastErr = err
				break
			}
			c.logger.DebugContext(ctx, "retrying page fetch", "url", rawURL, "attempt", attempt+1, "error", lastErr)
		}

		attempts++
		page, status, err := c.get(ctx, rawURL)
		if err == nil {
			c.breaker.RecordSuccess()
			c.storeCache(ctx, rawURL, page)
			return page, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		lastErr, lastStatus = err, status
		if !errors.Is(err, ErrTransientFetch) {
			// The site answered; it is healthy even if the page is missing.
			c.breaker.RecordSuccess()
			break
		}
	}

	if errors.Is(lastErr, ErrTransientFetch) {
		c.breaker.RecordFailure()
	}
	fetchErr := &FetchError{URL: rawURL, Attempts: attempts, StatusCode: lastStatus, Err: lastErr}
	span.RecordError(fetchErr)
	span.SetStatus(codes.Error, fetchErr.Error())
	c.logger.WarnContext(ctx, "page fetch failed", "url", rawURL, "attempts", attempts, "status", lastStatus, "error", lastErr)
	return nil, fetchErr
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, int, error) {
	resp, err := c.session.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(rawURL)
	if err != nil {
		return nil, 0, errors.Mark(errors.Wrap(err, "send request"), ErrTransientFetch)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return resp.Body(), status, nil
	case isRetryableStatus(status):
		return nil, status, errors.Mark(errors.Newf("site status=%d", status), ErrTransientFetch)
	default:
		return nil, status, errors.Newf("site status=%d", status)
	}
}

func (c *Client) wait(ctx context.Context, attempt int) error {
	if c.retryBackoff <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(attempt) * c.retryBackoff)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// replaceSession swaps the current session for a fresh one with a new cookie jar
// and connection pool. The old session is only drained, never reused.
func (c *Client) replaceSession() error {
	next, err := c.newSession()
	if err != nil {
		return errors.Wrap(err, "build fetch session")
	}
	old := c.session
	c.session = next
	if old != nil {
		old.GetClient().CloseIdleConnections()
	}
	return nil
}

func (c *Client) buildSession() (*resty.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "create cookie jar")
	}

	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return nil, errors.New("default transport is not *http.Transport")
	}

	session := resty.New()
	session.SetTransport(otelhttp.NewTransport(base.Clone()))
	session.SetCookieJar(jar)
	session.SetTimeout(c.timeout)
	session.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(c.baseURL.Hostname()))
	if c.userAgent != "" {
		session.SetHeader("User-Agent", c.userAgent)
	}
	return session, nil
}

func (c *Client) checkURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() {
		return errors.Wrapf(ErrForeignURL, "%q is not an absolute url", rawURL)
	}
	if !strings.EqualFold(parsed.Host, c.baseURL.Host) {
		return errors.Wrapf(ErrForeignURL, "%q is outside %s", rawURL, c.baseURL.Host)
	}
	return nil
}

func (c *Client) lookupCache(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	page, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "page cache read failed", "url", key, "error", err)
		return nil, false
	}
	return page, ok
}

func (c *Client) storeCache(ctx context.Context, key string, page []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, page); err != nil {
		c.logger.WarnContext(ctx, "page cache write failed", "url", key, "error", err)
	}
}

func isRetryableStatus(status int) bool {
	return status == http.StatusRequestTimeout ||
		status == http.StatusTooManyRequests ||
		status >= http.StatusInternalServerError
}
