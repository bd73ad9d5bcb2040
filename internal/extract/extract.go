package extract

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strategy extracts one value from a selection. It reports false when it
// found nothing usable.
type Strategy func(sel *goquery.Selection) (string, bool)

// First runs strategies left to right and returns the first non-empty
// result. Later strategies only run when earlier ones yielded nothing.
func First(sel *goquery.Selection, strategies ...Strategy) (string, bool) {
	for _, strategy := range strategies {
		if value, ok := strategy(sel); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// Optional converts a strategy result to the nil-or-value form used for
// optional record fields.
func Optional(value string, ok bool) *string {
	if !ok || value == "" {
		return nil
	}
	return &value
}

// FirstSelector returns the first selector that matches anything in doc,
// along with its matches. Returns "" and an empty selection if none match.
func FirstSelector(doc *goquery.Selection, selectors ...string) (string, *goquery.Selection) {
	for _, selector := range selectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return selector, found
		}
	}
	return "", doc.Find("__no_match__")
}

// Text returns the cleaned text of the first element matching selector
func Text(selector string) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		found := sel.Find(selector).First()
		if found.Length() == 0 {
			return "", false
		}
		return nonEmpty(CleanText(found))
	}
}

// Attr returns an attribute of the first element matching selector
func Attr(selector, attr string) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		value, exists := sel.Find(selector).First().Attr(attr)
		if !exists {
			return "", false
		}
		return nonEmpty(strings.TrimSpace(value))
	}
}

// AttrTrimPrefix is Attr with a fixed prefix removed, e.g. "mailto:"
func AttrTrimPrefix(selector, attr, prefix string) Strategy {
	attrStrategy := Attr(selector, attr)
	return func(sel *goquery.Selection) (string, bool) {
		value, ok := attrStrategy(sel)
		if !ok {
			return "", false
		}
		return nonEmpty(strings.TrimSpace(strings.TrimPrefix(value, prefix)))
	}
}

// Cell returns the text of the index-th td of a table row. It only applies
// to rows with at least minCells cells, so that a short row doesn't get its
// only cell read as both abbreviation and name.
func Cell(index, minCells int) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		cells := sel.Find("td")
		if cells.Length() < minCells || index >= cells.Length() {
			return "", false
		}
		return nonEmpty(CleanText(cells.Eq(index)))
	}
}

// LinkText returns the text of the first link
func LinkText() Strategy {
	return Text("a")
}

// LinkPathSegment applies pattern to the href of the first link and returns
// its first capture group, passed through transform when it is non-nil.
func LinkPathSegment(pattern *regexp.Regexp, transform func(string) string) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		href, exists := sel.Find("a").First().Attr("href")
		if !exists {
			return "", false
		}
		matches := pattern.FindStringSubmatch(href)
		if len(matches) < 2 {
			return "", false
		}
		value := matches[1]
		if transform != nil {
			value = transform(value)
		}
		return nonEmpty(value)
	}
}

// Parenthesized returns the text inside the first pair of parentheses of
// the first link's text, e.g. "Crypto Forum (CFRG)" yields "CFRG".
func Parenthesized() Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		link := sel.Find("a").First()
		if link.Length() == 0 {
			return "", false
		}
		matches := parenthesized.FindStringSubmatch(link.Text())
		if len(matches) < 2 {
			return "", false
		}
		return nonEmpty(strings.TrimSpace(matches[1]))
	}
}

// Matching applies pattern to the selection's full text and returns the
// first capture group.
func Matching(pattern *regexp.Regexp) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		matches := pattern.FindStringSubmatch(sel.Text())
		if len(matches) < 2 {
			return "", false
		}
		return nonEmpty(strings.TrimSpace(matches[1]))
	}
}

var (
	parenthesized   = regexp.MustCompile(`\(([^)]+)\)`)
	innerWhitespace = regexp.MustCompile(`\s+`)
)

// StripParenthetical removes the first parenthesized part of s, e.g.
// "Crypto Forum (CFRG)" becomes "Crypto Forum".
func StripParenthetical(s string) string {
	loc := parenthesized.FindStringIndex(s)
	if loc == nil {
		return strings.TrimSpace(s)
	}
	return CollapseSpace(s[:loc[0]] + " " + s[loc[1]:])
}

// CleanText returns the text of every node in sel with non-printable
// characters removed and runs of whitespace collapsed to a single space.
func CleanText(sel *goquery.Selection) string {
	var buffer bytes.Buffer
	for _, node := range sel.Nodes {
		writeText(node, &buffer)
	}
	return CollapseSpace(removeNonPrintable(buffer.String()))
}

// CollapseSpace trims s and collapses inner whitespace
func CollapseSpace(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

func writeText(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	block := node.Type == html.ElementNode && blockElements[node.DataAtom]
	if block {
		buffer.WriteByte(' ')
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, buffer)
	}
	if block {
		buffer.WriteByte(' ')
	}
}

// Elements whose boundaries separate words
var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true,
	atom.Ul: true, atom.Ol: true, atom.Tr: true, atom.Td: true, atom.Th: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Section: true, atom.Article: true, atom.Blockquote: true,
	atom.Dt: true, atom.Dd: true, atom.Hr: true,
}

func removeNonPrintable(s string) string {
	var b strings.Builder
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func nonEmpty(value string) (string, bool) {
	return value, value != ""
}
