package group

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseMonthYear(t *testing.T) {
	tests := []struct {
		text string
		want string // "" means nil
	}{
		{"March 2015", "2015-03-01"},
		{"Mar 2015", "2015-03-01"},
		{"December  1999", "1999-12-01"},
		{"Sept 2010", ""},
		{"2015", ""},
		{"", ""},
		{"Smarch 2015", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseMonthYear(tt.text)
			if tt.want == "" {
				if got != nil {
					t.Errorf("ParseMonthYear(%q) = %v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseMonthYear(%q) = nil, want %s", tt.text, tt.want)
			}
			if got.String() != tt.want {
				t.Errorf("ParseMonthYear(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestFindConcludedDate(t *testing.T) {
	pattern := regexp.MustCompile(`Concluded\s+([A-Z][a-z]+\s+\d{4})`)

	if d := FindConcludedDate(pattern, "This group was Concluded June 2019 after RFC 8446."); d == nil || d.String() != "2019-06-01" {
		t.Errorf("FindConcludedDate() = %v, want 2019-06-01", d)
	}
	if d := FindConcludedDate(pattern, "Active since 2001"); d != nil {
		t.Errorf("FindConcludedDate() = %v, want nil", d)
	}
	// Matches the pattern but is not a month name
	if d := FindConcludedDate(pattern, "Concluded Maybe 2019"); d != nil {
		t.Errorf("FindConcludedDate() = %v, want nil", d)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2015-03-01", "2015-03-01", false},
		{" 2015-03-01 ", "2015-03-01", false},
		{"2015-03-01T00:00:00Z", "2015-03-01", false},
		{"2015-03-01T23:30:00-05:00", "2015-03-01", false},
		{"March 2015", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2019, time.June, 1)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `"2019-06-01"` {
		t.Errorf("Marshal() = %s, want \"2019-06-01\"", data)
	}

	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.Equal(d) {
		t.Errorf("Unmarshal() = %s, want %s", decoded, d)
	}

	if err := json.Unmarshal([]byte(`12`), &decoded); err == nil {
		t.Error("Unmarshal(12) expected error, got nil")
	}
}

func TestDate_YAML(t *testing.T) {
	type wrapper struct {
		Date *Date `yaml:"date,omitempty"`
	}

	data, err := yaml.Marshal(wrapper{Date: datePtr(NewDate(2013, time.March, 1))})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "date: 2013-03-01\n" && string(data) != "date: \"2013-03-01\"\n" {
		t.Errorf("Marshal() = %q", data)
	}

	for _, input := range []string{"date: 2013-03-01\n", "date: \"2013-03-01\"\n"} {
		var w wrapper
		if err := yaml.Unmarshal([]byte(input), &w); err != nil {
			t.Fatalf("Unmarshal(%q) error = %v", input, err)
		}
		if w.Date == nil || w.Date.String() != "2013-03-01" {
			t.Errorf("Unmarshal(%q) = %v, want 2013-03-01", input, w.Date)
		}
	}

	var w wrapper
	if err := yaml.Unmarshal([]byte("date: [1, 2]\n"), &w); err == nil {
		t.Error("Unmarshal(sequence) expected error, got nil")
	}
}
