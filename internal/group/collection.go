package group

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// fold returns the case-folded form of s used for abbreviation lookups.
// A Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// DedupPolicy decides what happens to records sharing organization and
// abbreviation when a collection is built.
type DedupPolicy string

const (
	// DedupNone keeps every record in discovery order, duplicates included.
	DedupNone DedupPolicy = "none"
	// DedupFirstWins keeps the first record seen for a key.
	DedupFirstWins DedupPolicy = "first"
	// DedupLastWins keeps the position of the first record but the contents
	// of the last one seen for a key.
	DedupLastWins DedupPolicy = "last"
)

// ParseDedupPolicy validates a policy name; "" means DedupNone
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch p := DedupPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DedupNone, nil
	case DedupNone, DedupFirstWins, DedupLastWins:
		return p, nil
	}
	return "", fmt.Errorf("invalid dedup policy: %q (must be none, first or last)", s)
}

// Collection is an ordered, read-only sequence of groups. Order is discovery
// order for scraped data and document order for loaded snapshots.
//
// A nil *Collection behaves as an empty one.
type Collection struct {
	groups []*Group
}

// NewCollection builds a collection from groups, applying policy. The input
// slice is copied; nil entries are dropped.
func NewCollection(groups []*Group, policy DedupPolicy) *Collection {
	out := make([]*Group, 0, len(groups))

	if policy == DedupNone || policy == "" {
		for _, g := range groups {
			if g != nil {
				out = append(out, g)
			}
		}
		return &Collection{groups: out}
	}

	index := make(map[Key]int, len(groups))
	for _, g := range groups {
		if g == nil {
			continue
		}
		key := g.Key()
		if pos, seen := index[key]; seen {
			if policy == DedupLastWins {
				out[pos] = g
			}
			continue
		}
		index[key] = len(out)
		out = append(out, g)
	}

	return &Collection{groups: out}
}

// Empty returns a collection with no groups
func Empty() *Collection {
	return &Collection{groups: []*Group{}}
}

// All returns the groups in collection order. The returned slice is a copy;
// the records themselves are shared and must not be modified.
func (c *Collection) All() []*Group {
	if c == nil {
		return []*Group{}
	}
	out := make([]*Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// Len returns the number of groups
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.groups)
}

// Find returns the first group whose abbreviation matches, ignoring case.
func (c *Collection) Find(abbreviation string) (*Group, bool) {
	if c == nil {
		return nil, false
	}
	want := fold(abbreviation)
	if want == "" {
		return nil, false
	}
	for _, g := range c.groups {
		if fold(g.Abbreviation) == want {
			return g, true
		}
	}
	return nil, false
}

// Exists reports whether Find would return a group
func (c *Collection) Exists(abbreviation string) bool {
	_, ok := c.Find(abbreviation)
	return ok
}

// Filter returns the groups matching pred, in collection order
func (c *Collection) Filter(pred func(*Group) bool) []*Group {
	out := []*Group{}
	if c == nil {
		return out
	}
	for _, g := range c.groups {
		if pred(g) {
			out = append(out, g)
		}
	}
	return out
}

// ByOrganization returns groups from one organization
func (c *Collection) ByOrganization(org Organization) []*Group {
	return c.Filter(func(g *Group) bool { return g.Organization == org })
}

// IETF returns all IETF groups
func (c *Collection) IETF() []*Group {
	return c.ByOrganization(OrgIETF)
}

// IRTF returns all IRTF groups
func (c *Collection) IRTF() []*Group {
	return c.ByOrganization(OrgIRTF)
}

// ByType returns groups of the given type, ignoring case
func (c *Collection) ByType(groupType string) []*Group {
	return c.Filter(func(g *Group) bool { return strings.EqualFold(g.Type, groupType) })
}

// WorkingGroups returns groups of type "wg"
func (c *Collection) WorkingGroups() []*Group {
	return c.ByType("wg")
}

// ResearchGroups returns groups of type "rg"
func (c *Collection) ResearchGroups() []*Group {
	return c.ByType("rg")
}

// ByArea returns groups in the given area, ignoring case. Groups without an
// area, or with an empty one, never match.
func (c *Collection) ByArea(area string) []*Group {
	return c.Filter(func(g *Group) bool {
		return g.Area != nil && *g.Area != "" && strings.EqualFold(*g.Area, area)
	})
}

// ByStatus returns groups with the given status
func (c *Collection) ByStatus(status Status) []*Group {
	return c.Filter(func(g *Group) bool { return g.Status == status })
}

// Active returns groups with status active
func (c *Collection) Active() []*Group {
	return c.ByStatus(StatusActive)
}

// Concluded returns groups with status concluded
func (c *Collection) Concluded() []*Group {
	return c.ByStatus(StatusConcluded)
}

// Types returns the sorted distinct group types
func (c *Collection) Types() []string {
	return c.distinct(func(g *Group) string { return g.Type })
}

// Areas returns the sorted distinct areas, absent and empty areas excluded
func (c *Collection) Areas() []string {
	return c.distinct(func(g *Group) string { return g.AreaName() })
}

func (c *Collection) distinct(value func(*Group) string) []string {
	out := []string{}
	if c == nil {
		return out
	}
	seen := make(map[string]bool)
	for _, g := range c.groups {
		v := value(g)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
