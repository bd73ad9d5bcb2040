package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
)

// Names returns the plain list of group names shown on the IETF tools index
// and the IRTF groups page. IRTF groups contribute their name followed by
// their abbreviation. Unavailable pages contribute nothing.
func (s *Scraper) Names(ctx context.Context) ([]string, error) {
	names := make([]string, 0)

	doc, err := s.page(ctx, s.opts.IETFNamesURL, nil)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		names = append(names, ietfNames(doc.Selection)...)
	}

	doc, err = s.page(ctx, s.opts.IRTFNamesURL, nil)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		names = append(names, irtfNames(doc.Selection)...)
	}

	s.log.Info("Collected group names", logger.Fields{"names": len(names)})
	return names, nil
}

func ietfNames(doc *goquery.Selection) []string {
	var names []string
	doc.Find(`td[width="50%"]`).Each(func(_ int, cell *goquery.Selection) {
		if cell.Children().Length() > 0 {
			return
		}
		name := strings.TrimSpace(cell.Text())
		name = strings.TrimSuffix(name, " Working Group")
		if name != "" {
			names = append(names, name)
		}
	})
	return names
}

func irtfNames(doc *goquery.Selection) []string {
	const suffix = " Research Group"

	var names []string
	doc.Find(`a[title$="` + suffix + `"]`).Each(func(_ int, link *goquery.Selection) {
		title, _ := link.Attr("title")
		name := strings.TrimSpace(strings.TrimSuffix(title, suffix))
		abbreviation := strings.TrimSpace(link.Text())
		if name == "" || abbreviation == "" {
			return
		}
		names = append(names, name, abbreviation)
	})
	return names
}
