package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/ietf-groups/internal/group"
)

// Parse parses a filter expression into a Filter.
//
// An expression is a comma-separated list of "key=value" clauses where a
// value may list alternatives separated by "|":
//
//	org=ietf,type=wg|rg,area=sec,status=active,name=security
//
// Keys are org (or organization), type, area, status and name. Repeating a
// key adds alternatives. Organization and status values are validated and
// normalized to lower case. An empty expression yields an empty filter.
func Parse(input string) (*Filter, error) {
	f := NewFilter()

	input = strings.TrimSpace(input)
	if input == "" {
		return f, nil
	}

	for _, clause := range strings.Split(input, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		key, value, ok := strings.Cut(clause, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter clause %q: want key=value", clause)
		}
		key = strings.ToLower(strings.TrimSpace(key))

		values, err := splitValues(value)
		if err != nil {
			return nil, fmt.Errorf("invalid filter clause %q: %w", clause, err)
		}

		switch key {
		case "org", "organization":
			for _, v := range values {
				org, err := group.ParseOrganization(v)
				if err != nil {
					return nil, err
				}
				f.Organizations = append(f.Organizations, string(org))
			}
		case "type":
			f.Types = append(f.Types, values...)
		case "area":
			f.Areas = append(f.Areas, values...)
		case "status":
			for _, v := range values {
				status, err := group.ParseStatus(v)
				if err != nil {
					return nil, err
				}
				f.Statuses = append(f.Statuses, string(status))
			}
		case "name":
			f.Names = append(f.Names, values...)
		default:
			return nil, fmt.Errorf("unknown filter key %q (must be org, type, area, status or name)", key)
		}
	}

	return f, nil
}

func splitValues(value string) ([]string, error) {
	var values []string
	for _, v := range strings.Split(value, "|") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("empty value")
	}
	return values, nil
}
