package extract

import (
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc.Selection
}

func TestFirst_Order(t *testing.T) {
	sel := mustDoc(t, `<div>x</div>`)

	var calls []string
	strategy := func(name, value string) Strategy {
		return func(*goquery.Selection) (string, bool) {
			calls = append(calls, name)
			return value, value != ""
		}
	}

	got, ok := First(sel, strategy("a", ""), strategy("b", "second"), strategy("c", "third"))
	if !ok || got != "second" {
		t.Errorf("First() = %q, %v; want second, true", got, ok)
	}
	if strings.Join(calls, ",") != "a,b" {
		t.Errorf("strategies called = %v, want a,b (c must not run)", calls)
	}
}

func TestFirst_AllFail(t *testing.T) {
	sel := mustDoc(t, `<div>x</div>`)

	got, ok := First(sel, Text(".missing"), Attr("a", "href"))
	if ok || got != "" {
		t.Errorf("First() = %q, %v; want empty, false", got, ok)
	}
	if Optional(got, ok) != nil {
		t.Error("Optional() of a failed extraction should be nil")
	}
}

func TestFirst_OkButEmptyFallsThrough(t *testing.T) {
	sel := mustDoc(t, `<div>x</div>`)
	liar := func(*goquery.Selection) (string, bool) { return "", true }

	got, ok := First(sel, liar, func(*goquery.Selection) (string, bool) { return "fallback", true })
	if !ok || got != "fallback" {
		t.Errorf("First() = %q, %v; want fallback", got, ok)
	}
}

func TestStrategies(t *testing.T) {
	row := mustDoc(t, `
		<table><tbody><tr class="concluded">
			<td class="acronym"><a href="/group/httpbis/">httpbis</a></td>
			<td class="name">  HTTP
				 Working   Group </td>
			<td class="area"></td>
			<td><a href="mailto:httpbis@ietf.org">list</a></td>
		</tr></tbody></table>`).Find("tr")

	tests := []struct {
		name     string
		strategy Strategy
		want     string
		wantOK   bool
	}{
		{"text by class", Text(".acronym"), "httpbis", true},
		{"text collapses whitespace", Text(".name"), "HTTP Working Group", true},
		{"text of empty element", Text(".area"), "", false},
		{"text missing", Text(".status"), "", false},
		{"cell 1", Cell(1, 2), "HTTP Working Group", true},
		{"cell out of range", Cell(9, 2), "", false},
		{"cell requires min cells", Cell(0, 10), "", false},
		{"attr", Attr("td.acronym a", "href"), "/group/httpbis/", true},
		{"attr missing", Attr("img", "src"), "", false},
		{"attr trim prefix", AttrTrimPrefix(`a[href^="mailto:"]`, "href", "mailto:"), "httpbis@ietf.org", true},
		{"link text", LinkText(), "httpbis", true},
		{"link path segment", LinkPathSegment(regexp.MustCompile(`/([^/]+)/?$`), strings.ToUpper), "HTTPBIS", true},
		{"link path no match", LinkPathSegment(regexp.MustCompile(`(\w+)\.html$`), nil), "", false},
		{"matching", Matching(regexp.MustCompile(`HTTP\s+(\w+)`)), "Working", true},
		{"parenthesized none", Parenthesized(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.strategy(row)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("got %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParenthesized(t *testing.T) {
	item := mustDoc(t, `<ul><li><a href="cfrg.html">Crypto Forum (CFRG)</a> research on crypto</li></ul>`).Find("li")

	got, ok := Parenthesized()(item)
	if !ok || got != "CFRG" {
		t.Errorf("Parenthesized() = %q, %v; want CFRG", got, ok)
	}
}

func TestFirstSelector(t *testing.T) {
	doc := mustDoc(t, `
		<table class="table-sm"><tbody><tr><td>a</td></tr><tr><td>b</td></tr></tbody></table>
		<table class="tablesorter"><tbody><tr><td>c</td></tr></tbody></table>`)

	selector, rows := FirstSelector(doc, ".group-list tbody tr", "table.table-sm tbody tr", "table.tablesorter tbody tr")
	if selector != "table.table-sm tbody tr" {
		t.Errorf("selector = %q, want table.table-sm tbody tr", selector)
	}
	if rows.Length() != 2 {
		t.Errorf("rows = %d, want 2", rows.Length())
	}

	selector, rows = FirstSelector(doc, ".nothing", "#here")
	if selector != "" || rows.Length() != 0 {
		t.Errorf("FirstSelector() = %q with %d rows, want no match", selector, rows.Length())
	}
}

func TestStripParenthetical(t *testing.T) {
	tests := map[string]string{
		"Crypto Forum (CFRG)":           "Crypto Forum",
		"Crypto Forum (CFRG) Group":     "Crypto Forum Group",
		"  Plain name ":                 "Plain name",
		"(GAIA) Global Access":          "Global Access",
		"Decentralization (DINRG) (old)": "Decentralization (old)",
	}

	for input, want := range tests {
		if got := StripParenthetical(input); got != want {
			t.Errorf("StripParenthetical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		selector string
		want     string
	}{
		{"line breaks and control characters", "<p>Line one<br>line\u0007 two\n\n   three</p>", "p", "Line one line two three"},
		{"adjacent paragraphs", "<div id=\"x\"><p>a</p><p>b</p></div>", "#x", "a b"},
		{
			"compact charter",
			`<div id="charter"><p>First paragraph.</p><p>Second paragraph.</p><ul><li>one</li><li>two</li></ul></div>`,
			"#charter",
			"First paragraph. Second paragraph. one two",
		},
		{"inline elements stay joined", "<p>HTTP<b>bis</b> and <a href=\"/x\">more</a></p>", "p", "HTTPbis and more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(mustDoc(t, tt.input).Find(tt.selector)); got != tt.want {
				t.Errorf("CleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_CompactBlocks(t *testing.T) {
	doc := mustDoc(t, `<div id="charter"><p>First paragraph.</p><p>Second paragraph.</p></div>`)

	got, ok := Text("#charter")(doc)
	if !ok || got != "First paragraph. Second paragraph." {
		t.Errorf("Text(#charter) = %q, %v", got, ok)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		base, href, want string
		wantErr          bool
	}{
		{"https://datatracker.ietf.org/group/", "/group/tls/about/", "https://datatracker.ietf.org/group/tls/about/", false},
		{"https://datatracker.ietf.org/group/", "tls/", "https://datatracker.ietf.org/group/tls/", false},
		{"https://www.irtf.org/groups.html", "cfrg.html", "https://www.irtf.org/cfrg.html", false},
		{"https://www.irtf.org/groups.html", "https://example.org/x", "https://example.org/x", false},
		{"https://www.irtf.org/", " ", "", true},
	}

	for _, tt := range tests {
		got, err := Resolve(tt.base, tt.href)
		if (err != nil) != tt.wantErr {
			t.Errorf("Resolve(%q, %q) error = %v, wantErr %v", tt.base, tt.href, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
