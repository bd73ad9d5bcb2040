package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/ietf-groups/internal/group"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortNone           SortOrder = ""
	SortByAbbreviation SortOrder = "abbreviation"
	SortByName         SortOrder = "name"
	SortByType         SortOrder = "type"
	SortByOrganization SortOrder = "organization"
)

func (o SortOrder) valid() bool {
	switch o {
	case SortNone, SortByAbbreviation, SortByName, SortByType, SortByOrganization:
		return true
	}
	return false
}

// sortGroups sorts groups in place. Ties keep snapshot order; SortNone
// leaves the slice untouched.
func sortGroups(groups []*group.Group, sortOrder SortOrder) {
	switch sortOrder {
	case SortByAbbreviation:
		sort.SliceStable(groups, func(i, j int) bool {
			return compareByAbbreviation(groups[i], groups[j])
		})
	case SortByName:
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := strings.ToLower(groups[i].Name), strings.ToLower(groups[j].Name)
			if a != b {
				return a < b
			}
			return compareByAbbreviation(groups[i], groups[j])
		})
	case SortByType:
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Type != groups[j].Type {
				return groups[i].Type < groups[j].Type
			}
			return compareByAbbreviation(groups[i], groups[j])
		})
	case SortByOrganization:
		sort.SliceStable(groups, func(i, j int) bool {
			if groups[i].Organization != groups[j].Organization {
				return groups[i].Organization < groups[j].Organization
			}
			return compareByAbbreviation(groups[i], groups[j])
		})
	}
}

// compareByAbbreviation orders case-insensitively
func compareByAbbreviation(i, j *group.Group) bool {
	return strings.ToLower(i.Abbreviation) < strings.ToLower(j.Abbreviation)
}
