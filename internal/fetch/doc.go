// Package fetch retrieves HTML pages for the group scrapers.
//
// A Fetcher makes one best-effort GET per URL through a resty client with a
// configurable timeout, an optional token-bucket rate limit and an optional
// in-memory page memo, so a group reachable from two listing pages is only
// downloaded once per run. Fetch never returns an error: failures are logged
// as warnings and reported as a nil document.
package fetch
