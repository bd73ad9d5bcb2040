package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
	"golang.org/x/time/rate"
)

const (
	UserAgent = "ietf-groups/1.0 (github.com/pfrederiksen/ietf-groups)"
	Timeout   = 30 * time.Second
)

// Options configures a Fetcher. Zero values fall back to the defaults.
type Options struct {
	UserAgent string
	Timeout   time.Duration

	// RequestsPerSecond limits request rate; 0 disables limiting.
	RequestsPerSecond float64
	Burst             int

	// CacheSize and CacheTTL size the in-memory page memo; a TTL of 0
	// disables it.
	CacheSize int
	CacheTTL  time.Duration

	Logger  *logger.Logger
	Metrics *logger.Metrics
}

// Fetcher retrieves HTML pages and parses them into goquery documents.
// It makes a single attempt per URL; failures are logged and reported as an
// absent document.
type Fetcher struct {
	http    *resty.Client
	limiter *rate.Limiter
	cache   *expirable.LRU[string, []byte]
	log     *logger.Logger
	metrics *logger.Metrics
}

// New creates a Fetcher
func New(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = logger.DefaultMetrics()
	}

	f := &Fetcher{
		log:     opts.Logger.With(logger.Fields{"component": "fetch"}),
		metrics: opts.Metrics,
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	client.SetTimeout(opts.Timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return f.limiter.Wait(req.Context())
		})
	}

	if opts.CacheTTL > 0 {
		size := opts.CacheSize
		if size <= 0 {
			size = 512
		}
		f.cache = expirable.NewLRU[string, []byte](size, nil, opts.CacheTTL)
	}

	f.http = client
	return f
}

// Fetch retrieves url and parses it. On any transport, status or parse error
// it logs a warning and returns nil.
func (f *Fetcher) Fetch(ctx context.Context, url string) *goquery.Document {
	doc, err := f.FetchErr(ctx, url)
	if err != nil {
		f.log.Warn("Fetching page failed", logger.Fields{"url": url}, err)
		return nil
	}
	return doc
}

// FetchErr is Fetch for callers that want the cause of a failure. It does
// not log.
func (f *Fetcher) FetchErr(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.get(ctx, url)
	if err != nil {
		f.metrics.IncrCounter("fetch.error")
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		f.metrics.IncrCounter("fetch.error")
		return nil, fmt.Errorf("parsing HTML from %s: %w", url, err)
	}

	f.metrics.IncrCounter("fetch.ok")
	return doc, nil
}

// ErrStatus is wrapped by errors for non-2xx responses
var ErrStatus = errors.New("unexpected status code")

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(url); ok {
			f.metrics.IncrCounter("fetch.cache_hit")
			f.log.Debug("Serving page from cache", logger.Fields{"url": url})
			return body, nil
		}
	}

	start := time.Now()
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	f.metrics.RecordTiming("fetch.duration", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("fetching %s: %w: %d", url, ErrStatus, res.StatusCode())
	}

	f.log.Debug("Fetched page", logger.Fields{
		"url":      url,
		"status":   res.StatusCode(),
		"bytes":    len(res.Body()),
		"duration": time.Since(start).String(),
	})

	body := res.Body()
	if f.cache != nil {
		f.cache.Add(url, body)
	}
	return body, nil
}
