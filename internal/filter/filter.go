// Package filter selects groups by organization, type, area, status and
// name.
//
// Criteria of the same kind are alternatives and different kinds must all
// hold: a filter for types wg and rg in area sec matches security working
// and research groups. Comparisons ignore case.
//
// Example usage:
//
//	f, err := filter.Parse("org=ietf,type=wg|rg,status=active")
//	if err != nil {
//		return err
//	}
//	active := f.Apply(coll.All())
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/ietf-groups/internal/group"
)

// Filter represents group selection criteria
type Filter struct {
	Organizations []string `json:"organizations,omitempty"`
	Types         []string `json:"types,omitempty"`

	// Groups without an area never match an area criterion
	Areas []string `json:"areas,omitempty"`

	Statuses []string `json:"statuses,omitempty"`

	// Name filtering (case-insensitive substring match)
	Names []string `json:"names,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all groups until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Organizations: []string{},
		Types:         []string{},
		Areas:         []string{},
		Statuses:      []string{},
		Names:         []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all groups.
func (f *Filter) IsEmpty() bool {
	return f == nil ||
		len(f.Organizations) == 0 &&
			len(f.Types) == 0 &&
			len(f.Areas) == 0 &&
			len(f.Statuses) == 0 &&
			len(f.Names) == 0
}

// Matches checks if a group matches all active filter criteria.
// An empty filter matches all groups.
func (f *Filter) Matches(g *group.Group) bool {
	if g == nil {
		return false
	}
	if f.IsEmpty() {
		return true
	}

	if len(f.Organizations) > 0 && !equalsAny(string(g.Organization), f.Organizations) {
		return false
	}

	if len(f.Types) > 0 && !equalsAny(g.Type, f.Types) {
		return false
	}

	if len(f.Areas) > 0 {
		if g.Area == nil || *g.Area == "" || !equalsAny(*g.Area, f.Areas) {
			return false
		}
	}

	if len(f.Statuses) > 0 && !equalsAny(string(g.Status), f.Statuses) {
		return false
	}

	if len(f.Names) > 0 {
		matched := false
		nameLower := strings.ToLower(g.Name)
		for _, name := range f.Names {
			if strings.Contains(nameLower, strings.ToLower(name)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the groups that match, in their original order.
// If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(groups []*group.Group) []*group.Group {
	if f.IsEmpty() {
		return groups
	}

	filtered := make([]*group.Group, 0)
	for _, g := range groups {
		if f.Matches(g) {
			filtered = append(filtered, g)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
// Format: "Organizations: ietf | Types: wg, rg | Statuses: active"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Organizations) > 0 {
		parts = append(parts, fmt.Sprintf("Organizations: %s", strings.Join(f.Organizations, ", ")))
	}

	if len(f.Types) > 0 {
		parts = append(parts, fmt.Sprintf("Types: %s", strings.Join(f.Types, ", ")))
	}

	if len(f.Areas) > 0 {
		parts = append(parts, fmt.Sprintf("Areas: %s", strings.Join(f.Areas, ", ")))
	}

	if len(f.Statuses) > 0 {
		parts = append(parts, fmt.Sprintf("Statuses: %s", strings.Join(f.Statuses, ", ")))
	}

	if len(f.Names) > 0 {
		parts = append(parts, fmt.Sprintf("Names: %s", strings.Join(f.Names, ", ")))
	}

	return strings.Join(parts, " | ")
}

func equalsAny(value string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.EqualFold(value, candidate) {
			return true
		}
	}
	return false
}
