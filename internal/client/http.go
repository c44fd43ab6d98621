package client

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	timeout          = 30 * time.Second
	retryWait        = 500 * time.Millisecond
	DefaultUserAgent = "langsalary/1.0 (+https://github.com/fr4nk3nst1ner/langsalary)"
)

// Options configures an API client for a single job board
type Options struct {
	BaseURL   string
	ProxyURL  string
	UserAgent string
	Headers   map[string]string

	Timeout    time.Duration
	RateLimit  time.Duration // minimum interval between requests; 0 disables pacing
	RetryCount int
	RetryWait  time.Duration

	Logger *slog.Logger
}

// createTransport creates the underlying HTTP transport, optionally routed through a proxy
func createTransport(proxyURL string, logger *slog.Logger) *http.Transport {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}

	if proxyURL == "" {
		return transport
	}

	proxy, err := url.Parse(proxyURL)
	if err != nil {
		logger.Warn("ignoring invalid proxy url", "proxy", proxyURL, "err", err)
		return transport
	}
	transport.Proxy = http.ProxyURL(proxy)
	return transport
}

// New creates a resty client with retry on transient failures and optional request pacing
func New(opts Options) *resty.Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := resty.New()
	c.SetTransport(createTransport(opts.ProxyURL, logger))
	if opts.BaseURL != "" {
		c.SetBaseURL(opts.BaseURL)
	}

	t := opts.Timeout
	if t <= 0 {
		t = timeout
	}
	c.SetTimeout(t)

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	c.SetHeader("User-Agent", ua)
	c.SetHeader("Accept", "application/json")
	for key, value := range opts.Headers {
		c.SetHeader(key, value)
	}

	wait := opts.RetryWait
	if wait <= 0 {
		wait = retryWait
	}
	c.SetRetryCount(opts.RetryCount)
	c.SetRetryWaitTime(wait)
	c.SetRetryMaxWaitTime(wait * 10)
	c.AddRetryCondition(IsRetryable)

	if opts.RateLimit > 0 {
		c.OnBeforeRequest(pace(rate.NewLimiter(rate.Every(opts.RateLimit), 1)))
	}

	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "start request",
			"method", req.Method,
			"url", req.URL,
			"attempt", req.Attempt,
		)
		return nil
	})
	c.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.DebugContext(res.Request.Context(), "request finished",
			"method", res.Request.Method,
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"duration", res.Time(),
		)
		return nil
	})
	c.OnError(func(req *resty.Request, err error) {
		logger.DebugContext(req.Context(), "request failed",
			"method", req.Method,
			"url", req.URL,
			"err", err,
		)
	})

	return c
}

// pace blocks every attempt, retries included, until the limiter admits it
func pace(limiter *rate.Limiter) resty.RequestMiddleware {
	return func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	}
}

// IsRetryable reports whether a request should be retried: network errors,
// rate limiting and server-side failures are transient, everything else is not
func IsRetryable(res *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if res == nil {
		return false
	}
	code := res.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
