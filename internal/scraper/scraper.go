package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ietf-groups/internal/fetch"
	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
)

const (
	IETFGroupsURL = "https://datatracker.ietf.org/group/"
	IETFSiteURL   = "https://datatracker.ietf.org"
	IRTFGroupsURL = "https://www.irtf.org/groups.html"
	IETFNamesURL  = "https://tools.ietf.org/wg/"
	IRTFNamesURL  = "https://irtf.org/groups"
)

// Options configures a Scraper. Empty URLs fall back to the public sites.
type Options struct {
	IETFGroupsURL string
	// Origin that type listing and charter links are resolved against
	IETFSiteURL   string
	IRTFGroupsURL string
	IETFNamesURL  string
	IRTFNamesURL  string

	Dedup group.DedupPolicy

	Logger  *logger.Logger
	Metrics *logger.Metrics
}

// Scraper walks the IETF datatracker and the IRTF site and turns their pages
// into group records. Pages are fetched one at a time in discovery order.
type Scraper struct {
	fetcher *fetch.Fetcher
	opts    Options
	log     *logger.Logger
	metrics *logger.Metrics
}

// New creates a Scraper that fetches pages through fetcher
func New(fetcher *fetch.Fetcher, opts Options) *Scraper {
	if opts.IETFGroupsURL == "" {
		opts.IETFGroupsURL = IETFGroupsURL
	}
	if opts.IETFSiteURL == "" {
		opts.IETFSiteURL = IETFSiteURL
	}
	if opts.IRTFGroupsURL == "" {
		opts.IRTFGroupsURL = IRTFGroupsURL
	}
	if opts.IETFNamesURL == "" {
		opts.IETFNamesURL = IETFNamesURL
	}
	if opts.IRTFNamesURL == "" {
		opts.IRTFNamesURL = IRTFNamesURL
	}
	if opts.Dedup == "" {
		opts.Dedup = group.DedupFirstWins
	}
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = logger.DefaultMetrics()
	}

	return &Scraper{
		fetcher: fetcher,
		opts:    opts,
		log:     opts.Logger.With(logger.Fields{"component": "scraper"}),
		metrics: opts.Metrics,
	}
}

// FetchAll scrapes IETF groups followed by IRTF groups into one collection.
// Page and row failures only shrink the result; the returned error is
// non-nil only when ctx is done, in which case the partial result is
// discarded.
func (s *Scraper) FetchAll(ctx context.Context) (*group.Collection, error) {
	ietf, err := s.ietfGroups(ctx)
	if err != nil {
		return nil, err
	}
	irtf, err := s.irtfGroups(ctx)
	if err != nil {
		return nil, err
	}

	coll := group.NewCollection(append(ietf, irtf...), s.opts.Dedup)
	s.log.Info("Fetched groups", logger.Fields{
		"ietf":  len(ietf),
		"irtf":  len(irtf),
		"total": coll.Len(),
	})
	return coll, nil
}

// FetchIETF scrapes only the IETF datatracker
func (s *Scraper) FetchIETF(ctx context.Context) (*group.Collection, error) {
	groups, err := s.ietfGroups(ctx)
	if err != nil {
		return nil, err
	}
	return group.NewCollection(groups, s.opts.Dedup), nil
}

// FetchIRTF scrapes only the IRTF groups page
func (s *Scraper) FetchIRTF(ctx context.Context) (*group.Collection, error) {
	groups, err := s.irtfGroups(ctx)
	if err != nil {
		return nil, err
	}
	return group.NewCollection(groups, s.opts.Dedup), nil
}

// page fetches url. A failed fetch is logged and reported as a nil document
// with a nil error; the error is only set when ctx is done.
func (s *Scraper) page(ctx context.Context, url string, fields logger.Fields) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.fetcher.FetchErr(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logFields := logger.Fields{"url": url}
		for k, v := range fields {
			logFields[k] = v
		}
		s.log.Warn("Fetching page failed", logFields, err)
		return nil, nil
	}
	return doc, nil
}

// dropped records a group that was discovered but whose detail page could
// not be fetched
func (s *Scraper) dropped(org group.Organization, abbreviation, url string) {
	s.metrics.IncrCounter("scrape.dropped")
	s.log.Warn("Dropping group without detail page", logger.Fields{
		"organization": org,
		"abbreviation": abbreviation,
		"url":          url,
	}, nil)
}
