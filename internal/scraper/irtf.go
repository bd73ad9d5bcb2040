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

var (
	htmlPageName  = regexp.MustCompile(`(\w+)\.html$`)
	wordSegment   = regexp.MustCompile(`/(\w+)/?$`)
	irtfConcluded = regexp.MustCompile(`concluded in\s+([A-Z][a-z]+\s+\d{4})`)

	irtfAbbreviation = []extract.Strategy{
		extract.Parenthesized(),
		extract.LinkPathSegment(wordSegment, strings.ToUpper),
	}
)

// Titles of list sections tried after the active and concluded sections
var alternateSectionTitles = []string{
	"Current Research Groups",
	"Research Groups",
	"IRTF Groups",
}

// irtfItem is a research group as listed on the groups page
type irtfItem struct {
	Abbreviation string
	Name         string
	Description  *string
	Href         string
	Status       group.Status
}

// candidates is one way of reading the groups page. Candidates are tried in
// order and the first that produces any groups is used on its own.
type candidates struct {
	Source string
	Items  []irtfItem
}

func (s *Scraper) irtfGroups(ctx context.Context) ([]*group.Group, error) {
	s.log.Info("Fetching IRTF groups", logger.Fields{"url": s.opts.IRTFGroupsURL})

	doc, err := s.page(ctx, s.opts.IRTFGroupsURL, nil)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return []*group.Group{}, nil
	}

	for _, c := range irtfCandidates(doc.Selection) {
		groups, err := s.irtfRecords(ctx, c.Items)
		if err != nil {
			return nil, err
		}
		if len(groups) > 0 {
			s.log.Info("Found IRTF groups", logger.Fields{"source": c.Source, "groups": len(groups)})
			s.metrics.SetGauge("scrape.irtf.groups", float64(len(groups)))
			return groups, nil
		}
		s.log.Debug("No IRTF groups from source", logger.Fields{"source": c.Source, "items": len(c.Items)})
	}

	s.log.Warn("No IRTF groups found", logger.Fields{"url": s.opts.IRTFGroupsURL}, nil)
	return []*group.Group{}, nil
}

// irtfCandidates lists the readings of the groups page in preference order:
// the navigation dropdown, the active and concluded sections together, each
// alternate section title, then every plain list of links.
func irtfCandidates(doc *goquery.Selection) []candidates {
	var out []candidates
	add := func(source string, items []irtfItem) {
		if len(items) > 0 {
			out = append(out, candidates{Source: source, Items: items})
		}
	}

	add("dropdown", dropdownItems(doc))
	add("sections", append(
		sectionItems(doc, "Active Research Groups", group.StatusActive),
		sectionItems(doc, "Concluded Research Groups", group.StatusConcluded)...,
	))
	for _, title := range alternateSectionTitles {
		add("section "+title, sectionItems(doc, title, group.StatusActive))
	}
	doc.Find("ul").Each(func(i int, list *goquery.Selection) {
		if list.Find("li a").Length() > 0 {
			add("list", listItems(list, group.StatusActive))
		}
	})
	return out
}

// dropdownItems reads the "Research Groups" navigation menu. Entries whose
// link isn't a "<name>.html" page are skipped.
func dropdownItems(doc *goquery.Selection) []irtfItem {
	toggle := doc.Find("a.dropdown-toggle").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return strings.Contains(sel.Text(), "Research Groups")
	}).First()
	if toggle.Length() == 0 {
		return nil
	}

	var items []irtfItem
	toggle.Parent().Find(".dropdown-menu a.dropdown-item").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		matches := htmlPageName.FindStringSubmatch(href)
		if matches == nil {
			return
		}
		name := extract.CleanText(link)
		if name == "" {
			return
		}
		items = append(items, irtfItem{
			Abbreviation: strings.ToUpper(matches[1]),
			Name:         name,
			Href:         href,
			Status:       group.StatusActive,
		})
	})
	return items
}

// sectionItems reads the list following each h3 whose text contains title
func sectionItems(doc *goquery.Selection, title string, status group.Status) []irtfItem {
	var items []irtfItem
	doc.Find("h3").FilterFunction(func(_ int, heading *goquery.Selection) bool {
		return strings.Contains(heading.Text(), title)
	}).Each(func(_ int, heading *goquery.Selection) {
		list := heading.NextAllFiltered("ul").First()
		items = append(items, listItems(list, status)...)
	})
	return items
}

// listItems reads "<li><a href=...>Name (ABBR)</a> description</li>" entries
func listItems(list *goquery.Selection, status group.Status) []irtfItem {
	var items []irtfItem
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		abbreviation, ok := extract.First(li, irtfAbbreviation...)
		if !ok {
			return
		}
		linkText := link.Text()
		name := extract.StripParenthetical(extract.CollapseSpace(linkText))
		if name == "" {
			return
		}

		rest := strings.Replace(li.Text(), linkText, "", 1)
		description := extract.StripParenthetical(extract.CollapseSpace(rest))

		items = append(items, irtfItem{
			Abbreviation: abbreviation,
			Name:         name,
			Description:  extract.Optional(description, description != ""),
			Href:         href,
			Status:       status,
		})
	})
	return items
}

// irtfRecords fetches the detail page of every item. Items whose page can't
// be fetched are dropped.
func (s *Scraper) irtfRecords(ctx context.Context, items []irtfItem) ([]*group.Group, error) {
	var groups []*group.Group
	for _, item := range items {
		detailURL, err := extract.Resolve(s.opts.IRTFGroupsURL, item.Href)
		if err != nil {
			s.dropped(group.OrgIRTF, item.Abbreviation, item.Href)
			continue
		}
		detail, err := s.page(ctx, detailURL, logger.Fields{"abbreviation": item.Abbreviation})
		if err != nil {
			return nil, err
		}
		if detail == nil {
			s.dropped(group.OrgIRTF, item.Abbreviation, detailURL)
			continue
		}

		website := detailURL
		g := &group.Group{
			Abbreviation: item.Abbreviation,
			Name:         item.Name,
			Organization: group.OrgIRTF,
			Type:         "rg",
			Status:       item.Status,
			Description:  item.Description,
			WebsiteURL:   &website,
		}
		irtfDetails(detail.Selection, detailURL, g)
		groups = append(groups, g)
	}
	return groups, nil
}

func irtfDetails(doc *goquery.Selection, detailURL string, g *group.Group) {
	chairs := doc.Find("h3").FilterFunction(func(_ int, heading *goquery.Selection) bool {
		return strings.Contains(heading.Text(), "Chair")
	}).First().NextAllFiltered("p").First()
	if text := extract.CleanText(chairs); text != "" {
		g.Chairs = []string{text}
	}

	g.MailingList = extract.Optional(extract.AttrTrimPrefix(`a[href^="mailto:"]`, "href", "mailto:")(doc))
	g.MailingListArchive = extract.Optional(extract.Attr(`a[href*="mailarchive.ietf.org"]`, "href")(doc))

	if href, ok := extract.Attr(`a[href*="charter"]`, "href")(doc); ok {
		if charter, err := extract.Resolve(detailURL, href); err == nil {
			g.CharterURL = &charter
		}
	}

	if strings.Contains(detailURL, "/concluded/") {
		g.ConcludedDate = group.FindConcludedDate(irtfConcluded, doc.Text())
	}
}
