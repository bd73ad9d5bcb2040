package scraper

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/ietf-groups/internal/extract"
	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
)

// groupType is one category of the datatracker, e.g. working groups
type groupType struct {
	Abbreviation string
	Name         string
	URL          string
}

// Used when the datatracker index can't be fetched or lists nothing
var standardGroupTypes = []groupType{
	{Abbreviation: "wg", Name: "Working Group", URL: "/wg/"},
	{Abbreviation: "rg", Name: "Research Group", URL: "/rg/"},
	{Abbreviation: "area", Name: "Area", URL: "/area/"},
	{Abbreviation: "team", Name: "Team", URL: "/team/"},
	{Abbreviation: "program", Name: "Program", URL: "/program/"},
	{Abbreviation: "dir", Name: "Directorate", URL: "/dir/"},
	{Abbreviation: "ag", Name: "Advisory Group", URL: "/ag/"},
	{Abbreviation: "bof", Name: "BOF", URL: "/bof/"},
}

// Listing layouts the datatracker has used, newest last
var ietfRowSelectors = []string{
	".group-list tbody tr",
	"table.table-sm tbody tr",
	"table.tablesorter tbody tr",
}

var (
	lastPathSegment = regexp.MustCompile(`/([^/]+)/?$`)
	ietfConcluded   = regexp.MustCompile(`Concluded\s+([A-Z][a-z]+\s+\d{4})`)

	ietfAbbreviation = []extract.Strategy{
		extract.Text(".acronym"),
		extract.Cell(0, 2),
		extract.LinkPathSegment(lastPathSegment, strings.ToUpper),
	}
	ietfName = []extract.Strategy{
		extract.Text(".name"),
		extract.Cell(1, 2),
		extract.LinkText(),
	}
)

func (s *Scraper) ietfGroups(ctx context.Context) ([]*group.Group, error) {
	s.log.Info("Fetching IETF groups", logger.Fields{"url": s.opts.IETFGroupsURL})

	types, err := s.ietfGroupTypes(ctx)
	if err != nil {
		return nil, err
	}

	groups := make([]*group.Group, 0)
	for _, gt := range types {
		if gt.URL == "" {
			continue
		}
		listURL, err := extract.Resolve(s.opts.IETFSiteURL, gt.URL)
		if err != nil {
			s.log.Warn("Skipping group type with bad URL", logger.Fields{"type": gt.Abbreviation}, err)
			continue
		}

		doc, err := s.page(ctx, listURL, logger.Fields{"type": gt.Abbreviation})
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}

		found, err := s.ietfListing(ctx, doc, gt)
		if err != nil {
			return nil, err
		}
		s.log.Debug("Fetched group type", logger.Fields{"type": gt.Abbreviation, "groups": len(found)})
		groups = append(groups, found...)
	}

	s.metrics.SetGauge("scrape.ietf.groups", float64(len(groups)))
	return groups, nil
}

// ietfGroupTypes reads the categories off the datatracker index
func (s *Scraper) ietfGroupTypes(ctx context.Context) ([]groupType, error) {
	doc, err := s.page(ctx, s.opts.IETFGroupsURL, nil)
	if err != nil {
		return nil, err
	}

	var types []groupType
	if doc != nil {
		types = parseGroupTypes(doc.Selection)
	}
	if len(types) == 0 {
		s.log.Info("Using standard group types", nil)
		return standardGroupTypes, nil
	}
	return types, nil
}

func parseGroupTypes(doc *goquery.Selection) []groupType {
	var types []groupType
	doc.Find("table.tablesorter tbody tr").Each(func(_ int, row *goquery.Selection) {
		link := row.Find("td a").First()
		href, ok := link.Attr("href")
		if !ok || !strings.Contains(href, "/") {
			return
		}

		segments := strings.Split(strings.TrimSuffix(href, "/"), "/")
		types = append(types, groupType{
			Abbreviation: strings.ToLower(segments[len(segments)-1]),
			Name:         extract.CleanText(link),
			URL:          href,
		})
	})
	return types
}

// ietfRow is what a listing row says about a group before its detail page
// is read
type ietfRow struct {
	Abbreviation string
	Name         string
	Status       group.Status
	Area         *string
	Href         string
}

func (s *Scraper) ietfListing(ctx context.Context, doc *goquery.Document, gt groupType) ([]*group.Group, error) {
	selector, rows := extract.FirstSelector(doc.Selection, ietfRowSelectors...)
	if selector == "" {
		s.log.Warn("No group rows found", logger.Fields{"type": gt.Abbreviation}, nil)
		return nil, nil
	}
	s.log.Debug("Found group rows", logger.Fields{"type": gt.Abbreviation, "selector": selector, "rows": rows.Length()})

	var groups []*group.Group
	for i := 0; i < rows.Length(); i++ {
		row, ok := parseIETFRow(rows.Eq(i))
		if !ok {
			continue
		}

		detailURL, err := extract.Resolve(s.opts.IETFGroupsURL, row.Href)
		if err != nil {
			s.dropped(group.OrgIETF, row.Abbreviation, row.Href)
			continue
		}
		detail, err := s.page(ctx, detailURL, logger.Fields{"abbreviation": row.Abbreviation})
		if err != nil {
			return nil, err
		}
		if detail == nil {
			s.dropped(group.OrgIETF, row.Abbreviation, detailURL)
			continue
		}

		g := &group.Group{
			Abbreviation: row.Abbreviation,
			Name:         row.Name,
			Organization: group.OrgIETF,
			Type:         gt.Abbreviation,
			Area:         row.Area,
			Status:       row.Status,
		}
		s.ietfDetails(detail.Selection, g)
		groups = append(groups, g)
	}
	return groups, nil
}

// parseIETFRow extracts a listing row. It reports false for rows without an
// abbreviation, a name or a link to the detail page.
func parseIETFRow(row *goquery.Selection) (ietfRow, bool) {
	abbreviation, _ := extract.First(row, ietfAbbreviation...)
	name, _ := extract.First(row, ietfName...)
	if abbreviation == "" || name == "" {
		return ietfRow{}, false
	}

	href, ok := row.Find("a").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return ietfRow{}, false
	}

	return ietfRow{
		Abbreviation: abbreviation,
		Name:         name,
		Status:       rowStatus(row),
		Area:         extract.Optional(extract.Text(".area")(row)),
		Href:         href,
	}, true
}

// rowStatus defaults to active. Markers of an active group override markers
// of a concluded one.
func rowStatus(row *goquery.Selection) group.Status {
	status := group.StatusActive
	class, _ := row.Attr("class")
	text := row.Text()
	if strings.Contains(class, "concluded") || strings.Contains(text, "Concluded") {
		status = group.StatusConcluded
	}
	if row.Find(".active").Length() > 0 || strings.Contains(text, "Active") {
		status = group.StatusActive
	}
	return status
}

func (s *Scraper) ietfDetails(doc *goquery.Selection, g *group.Group) {
	g.Description = extract.Optional(extract.Text("#charter")(doc))

	doc.Find(".role-WG-chair, .role-RG-chair").Each(func(_ int, chair *goquery.Selection) {
		if name := extract.CleanText(chair); name != "" {
			g.Chairs = append(g.Chairs, name)
		}
	})

	g.MailingList = extract.Optional(extract.AttrTrimPrefix(`a[href^="mailto:"]`, "href", "mailto:")(doc))
	g.MailingListArchive = extract.Optional(extract.Attr(`a[href*="mailarchive.ietf.org"]`, "href")(doc))
	g.WebsiteURL = extract.Optional(extract.Attr(".additional-urls a", "href")(doc))

	if href, ok := extract.Attr(`a[href*="/charter/"]`, "href")(doc); ok {
		if charter, err := extract.Resolve(s.opts.IETFSiteURL, href); err == nil {
			g.CharterURL = &charter
		}
	}

	g.ConcludedDate = group.FindConcludedDate(ietfConcluded, doc.Text())
}
