package pfr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/riskibarqy/pfr-scraper/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string, mutate func(*ClientConfig)) (*Client, *int) {
	t.Helper()

	cfg := ClientConfig{
		BaseURL:    baseURL,
		UserAgent:  "pfr-test-agent",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	client, err := NewClient(cfg)
	require.NoError(t, err)

	sessions := 0
	build := client.newSession
	client.newSession = func() (*resty.Client, error) {
		sessions++
		return build()
	}
	return client, &sessions
}

func TestClientFetch_ReturnsBodyAndSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pfr-test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "text/html", r.Header.Get("Accept"))
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)

	page, err := client.Fetch(context.Background(), srv.URL+"/players/A/")
	require.NoError(t, err)
	require.Equal(t, "<html>ok</html>", string(page))
	require.Zero(t, *sessions)
}

func TestClientFetch_RetriesTransientFailuresWithFreshSessions(t *testing.T) {
	var (
		mu        sync.Mutex
		calls     int
		sawCookie bool
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if _, err := r.Cookie("sid"); err == nil {
			sawCookie = true
		}
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "stale", Path: "/"})
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)

	_, err := client.Fetch(context.Background(), srv.URL+"/players/A/AbduAm00.htm")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, 4, fetchErr.Attempts)
	require.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	require.True(t, errors.Is(err, ErrTransientFetch))

	require.Equal(t, 4, calls)
	require.Equal(t, 3, *sessions)
	require.False(t, sawCookie, "a retried request must not reuse the previous session's cookies")
}

func TestClientFetch_RetriesConnectionFailures(t *testing.T) {
	t.Run("refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		baseURL := srv.URL
		srv.Close()

		client, sessions := newTestClient(t, baseURL, nil)

		_, err := client.Fetch(context.Background(), baseURL+"/players/A/")
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		require.Equal(t, 4, fetchErr.Attempts)
		require.Zero(t, fetchErr.StatusCode)
		require.True(t, errors.Is(err, ErrTransientFetch))
		require.Equal(t, 3, *sessions)
	})

	t.Run("timeout", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer srv.Close()

		client, sessions := newTestClient(t, srv.URL, func(cfg *ClientConfig) {
			cfg.Timeout = 50 * time.Millisecond
		})

		_, err := client.Fetch(context.Background(), srv.URL+"/players/A/")
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		require.Equal(t, 4, fetchErr.Attempts)
		require.True(t, errors.Is(err, ErrTransientFetch))
		require.Equal(t, int32(4), calls.Load())
		require.Equal(t, 3, *sessions)
	})
}

func TestNewClient_RetryCount(t *testing.T) {
	cases := map[string]struct {
		configured int
		want       int
	}{
		"zero uses default": {configured: 0, want: 3},
		"explicit":          {configured: 5, want: 5},
		"negative disables": {configured: -1, want: 0},
	}
	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			client, err := NewClient(ClientConfig{MaxRetries: tc.configured})
			require.NoError(t, err)
			if client.maxRetries != tc.want {
				t.Fatalf("maxRetries = %d, want %d", client.maxRetries, tc.want)
			}
		})
	}
}

func TestClientFetch_RecoversAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte("second time lucky"))
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)

	page, err := client.Fetch(context.Background(), srv.URL+"/players/B/")
	require.NoError(t, err)
	require.Equal(t, "second time lucky", string(page))
	require.Equal(t, 1, *sessions)
}

func TestClientFetch_NotFoundIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, sessions := newTestClient(t, srv.URL, nil)

	_, err := client.Fetch(context.Background(), srv.URL+"/players/Z/Missing.htm")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, 1, fetchErr.Attempts)
	require.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	require.False(t, errors.Is(err, ErrTransientFetch))
	require.EqualValues(t, 1, calls.Load())
	require.Zero(t, *sessions)
}

func TestClientFetch_RejectsForeignURL(t *testing.T) {
	client, _ := newTestClient(t, "https://www.pro-football-reference.com", nil)

	for _, rawURL := range []string{"https://example.com/players/A/", "/players/A/"} {
		_, err := client.Fetch(context.Background(), rawURL)
		require.True(t, errors.Is(err, ErrForeignURL), "url %q: %v", rawURL, err)
	}
}

func TestClientFetch_ContextCancellationIsNotRetried(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client, sessions := newTestClient(t, srv.URL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, srv.URL+"/players/C/")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	var fetchErr *FetchError
	require.False(t, errors.As(err, &fetchErr))
	require.Zero(t, *sessions)
}

type memoryPageCache struct {
	mu    sync.Mutex
	pages map[string][]byte
}

func (m *memoryPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	page, ok := m.pages[key]
	return page, ok, nil
}

func (m *memoryPageCache) Set(_ context.Context, key string, page []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[key] = page
	return nil
}

func TestClientFetch_ServesFromCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	cache := &memoryPageCache{pages: map[string][]byte{}}
	client, _ := newTestClient(t, srv.URL, func(cfg *ClientConfig) { cfg.Cache = cache })

	url := srv.URL + "/players/D/"
	for i := 0; i < 3; i++ {
		page, err := client.Fetch(context.Background(), url)
		require.NoError(t, err)
		require.Equal(t, "fresh", string(page))
	}
	require.EqualValues(t, 1, calls.Load())
}

func TestClientFetch_OpenBreakerRejectsWithoutCallingSite(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})
	client, _ := newTestClient(t, srv.URL, func(cfg *ClientConfig) {
		cfg.Breaker = breaker
		cfg.MaxRetries = -1
	})

	_, err := client.Fetch(context.Background(), srv.URL+"/players/E/")
	require.True(t, errors.Is(err, ErrTransientFetch))
	require.Equal(t, resilience.CircuitStateOpen, breaker.State())

	_, err = client.Fetch(context.Background(), srv.URL+"/players/E/")
	require.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	require.EqualValues(t, 1, calls.Load())
}
