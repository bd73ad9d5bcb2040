package group

import (
	"sort"
	"strings"
)

// FieldChange is a single field that differs between two versions of a group
type FieldChange struct {
	Key   Key    `json:"-"`
	Group string `json:"group"`
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// DiffResult contains the results of comparing two collections
type DiffResult struct {
	Added   []*Group      `json:"added"`
	Removed []*Group      `json:"removed"`
	Changed []FieldChange `json:"changed"`
}

// Empty reports whether the two collections had the same content
func (d *DiffResult) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Diff compares a freshly fetched collection against the previous snapshot.
// Groups are matched by Key; when a key repeats, the first record wins.
// Results are sorted by key so the report is stable across runs.
func Diff(previous, current *Collection) *DiffResult {
	result := &DiffResult{
		Added:   make([]*Group, 0),
		Removed: make([]*Group, 0),
		Changed: make([]FieldChange, 0),
	}

	prevIndex := indexByKey(previous)
	currIndex := indexByKey(current)

	for key, curr := range currIndex {
		prev, exists := prevIndex[key]
		if !exists {
			result.Added = append(result.Added, curr)
			continue
		}
		result.Changed = append(result.Changed, DetectChanges(prev, curr)...)
	}

	for key, prev := range prevIndex {
		if _, exists := currIndex[key]; !exists {
			result.Removed = append(result.Removed, prev)
		}
	}

	sortGroups(result.Added)
	sortGroups(result.Removed)
	sort.SliceStable(result.Changed, func(i, j int) bool {
		a, b := result.Changed[i], result.Changed[j]
		if a.Key != b.Key {
			return lessKey(a.Key, b.Key)
		}
		return a.Field < b.Field
	})

	return result
}

// DetectChanges compares two versions of the same group field by field
func DetectChanges(previous, current *Group) []FieldChange {
	var changes []FieldChange

	key := current.Key()
	record := func(field, oldValue, newValue string) {
		if oldValue == newValue {
			return
		}
		changes = append(changes, FieldChange{
			Key:   key,
			Group: key.String(),
			Field: field,
			Old:   oldValue,
			New:   newValue,
		})
	}

	record("name", previous.Name, current.Name)
	record("type", previous.Type, current.Type)
	record("status", string(previous.Status), string(current.Status))
	record("area", deref(previous.Area), deref(current.Area))
	record("chairs", strings.Join(previous.Chairs, ", "), strings.Join(current.Chairs, ", "))
	record("mailing_list", deref(previous.MailingList), deref(current.MailingList))
	record("charter_url", deref(previous.CharterURL), deref(current.CharterURL))
	record("concluded_date", dateText(previous.ConcludedDate), dateText(current.ConcludedDate))

	return changes
}

func indexByKey(c *Collection) map[Key]*Group {
	index := make(map[Key]*Group, c.Len())
	if c == nil {
		return index
	}
	for _, g := range c.groups {
		key := g.Key()
		if _, exists := index[key]; !exists {
			index[key] = g
		}
	}
	return index
}

func sortGroups(groups []*Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return lessKey(groups[i].Key(), groups[j].Key())
	})
}

func lessKey(a, b Key) bool {
	if a.Organization != b.Organization {
		return a.Organization < b.Organization
	}
	return a.Abbreviation < b.Abbreviation
}

func dateText(d *Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
