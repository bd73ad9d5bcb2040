package extract

import (
	"fmt"
	"net/url"
	"strings"
)

// Resolve resolves href against base, the way a browser follows a link on
// the page at base. Absolute hrefs are returned as-is.
func Resolve(base, href string) (string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", fmt.Errorf("empty link")
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", base, err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing link %q: %w", href, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
