package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ietf-groups/internal/fetch"
	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
)

// pages maps request paths to response bodies. Unknown paths get a 404.
type pages map[string]string

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func newTestServer(t *testing.T, p pages) (*httptest.Server, *int32) {
	t.Helper()
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if userAgent := r.Header.Get("User-Agent"); !strings.Contains(userAgent, "ietf-groups") {
			t.Errorf("User-Agent = %q, should contain 'ietf-groups'", userAgent)
		}
		body, ok := p[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestScraper(server *httptest.Server, dedup group.DedupPolicy) (*Scraper, *logger.Metrics) {
	log := logger.New(logger.LevelError, io.Discard)
	metrics := logger.NewMetrics()
	fetcher := fetch.New(fetch.Options{Logger: log, Metrics: metrics})

	return New(fetcher, Options{
		IETFGroupsURL: server.URL + "/group/",
		IETFSiteURL:   server.URL,
		IRTFGroupsURL: server.URL + "/groups.html",
		IETFNamesURL:  server.URL + "/tools/wg/",
		IRTFNamesURL:  server.URL + "/irtf/groups",
		Dedup:         dedup,
		Logger:        log,
		Metrics:       metrics,
	}), metrics
}

func parseHTML(t *testing.T, content string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc.Selection
}

func abbreviations(groups []*group.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Abbreviation
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	s := New(fetch.New(fetch.Options{}), Options{})

	if s.opts.IETFGroupsURL != IETFGroupsURL {
		t.Errorf("IETFGroupsURL = %q, want %q", s.opts.IETFGroupsURL, IETFGroupsURL)
	}
	if s.opts.IRTFGroupsURL != IRTFGroupsURL {
		t.Errorf("IRTFGroupsURL = %q, want %q", s.opts.IRTFGroupsURL, IRTFGroupsURL)
	}
	if s.opts.Dedup != group.DedupFirstWins {
		t.Errorf("Dedup = %q, want first", s.opts.Dedup)
	}
}

func TestFetchAll(t *testing.T) {
	server, _ := newTestServer(t, pages{
		"/group/":          fixture(t, "ietf_index.html"),
		"/wg/":             fixture(t, "ietf_wg.html"),
		"/group/httpbis/":  fixture(t, "ietf_httpbis.html"),
		"/group/tls/":      fixture(t, "ietf_tls.html"),
		"/group/oldwg/":    fixture(t, "ietf_oldwg.html"),
		"/groups.html":     fixture(t, "irtf_sections.html"),
		"/cfrg/":           fixture(t, "irtf_cfrg.html"),
		"/panrg/":          fixture(t, "ietf_tls.html"),
		"/concluded/asrg/": fixture(t, "irtf_asrg.html"),
	})
	s, _ := newTestScraper(server, group.DedupFirstWins)

	coll, err := s.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll() unexpected error: %v", err)
	}

	got := strings.Join(abbreviations(coll.All()), ",")
	if want := "httpbis,tls,oldwg,CFRG,PANRG,ASRG"; got != want {
		t.Errorf("FetchAll() = %s, want %s (IETF first, discovery order)", got, want)
	}
	if len(coll.IETF()) != 3 || len(coll.IRTF()) != 3 {
		t.Errorf("IETF = %d, IRTF = %d; want 3 and 3", len(coll.IETF()), len(coll.IRTF()))
	}
	if !coll.Exists("CFRG") || !coll.Exists("HTTPBIS") {
		t.Error("expected CFRG and httpbis to be found case-insensitively")
	}
}

func TestFetchAll_CanceledContext(t *testing.T) {
	server, requests := newTestServer(t, pages{
		"/group/": fixture(t, "ietf_index.html"),
	})
	s, _ := newTestScraper(server, group.DedupFirstWins)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	coll, err := s.FetchAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("FetchAll() error = %v, want context.Canceled", err)
	}
	if coll != nil {
		t.Errorf("FetchAll() returned partial collection with %d groups", coll.Len())
	}
	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("server saw %d requests after cancellation, want 0", n)
	}
}

func TestNames(t *testing.T) {
	server, _ := newTestServer(t, pages{
		"/tools/wg/":   fixture(t, "names_ietf.html"),
		"/irtf/groups": fixture(t, "names_irtf.html"),
	})
	s, _ := newTestScraper(server, group.DedupFirstWins)

	names, err := s.Names(context.Background())
	if err != nil {
		t.Fatalf("Names() unexpected error: %v", err)
	}

	want := []string{"HTTP", "Transport Layer Security", "Crypto Forum", "CFRG", "Path Aware Networking", "PANRG"}
	if strings.Join(names, "|") != strings.Join(want, "|") {
		t.Errorf("Names() = %q, want %q", names, want)
	}
}

func TestNames_PagesUnavailable(t *testing.T) {
	server, _ := newTestServer(t, pages{})
	s, _ := newTestScraper(server, group.DedupFirstWins)

	names, err := s.Names(context.Background())
	if err != nil {
		t.Fatalf("Names() unexpected error: %v", err)
	}
	if names == nil || len(names) != 0 {
		t.Errorf("Names() = %#v, want empty non-nil slice", names)
	}
}
