// Package extract provides the field extraction strategies used by the
// group scrapers.
//
// A Strategy reads one value out of a goquery selection. First evaluates an
// ordered list of strategies and commits to the first non-empty result, so a
// scraper can list its most specific selector first and fall back to more
// generic ones when the page markup drifts. Each strategy is a plain function
// and can be tested on its own against a fixture document.
package extract
