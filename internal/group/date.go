package group

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time of day, stored at UTC midnight
type Date struct {
	time.Time
}

// NewDate builds a Date from its components
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD" and, for older snapshots, RFC3339 timestamps.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// Equal reports whether both dates name the same day
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON writes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("concluded_date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML writes the date as a plain YYYY-MM-DD scalar
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts both quoted and unquoted dates. yaml.v3 resolves an
// unquoted 2015-03-01 to a timestamp tag, so only the scalar text is used.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("concluded_date: line %d: expected a scalar", node.Line)
	}
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = parsed
	return nil
}

// Month-and-year text as found on group pages, e.g. "Concluded March 2015".
var monthYearLayouts = []string{"January 2006", "Jan 2006"}

// ParseMonthYear parses "March 2015" or "Mar 2015" into the first day of that
// month. Returns nil when the text isn't a month name followed by a year.
func ParseMonthYear(text string) *Date {
	text = strings.Join(strings.Fields(text), " ")
	for _, layout := range monthYearLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			d := NewDate(t.Year(), t.Month(), 1)
			return &d
		}
	}
	return nil
}

// FindConcludedDate looks for pattern in text and parses its first capture
// group with ParseMonthYear. Returns nil if nothing matches or parses.
func FindConcludedDate(pattern *regexp.Regexp, text string) *Date {
	matches := pattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return nil
	}
	return ParseMonthYear(matches[1])
}
