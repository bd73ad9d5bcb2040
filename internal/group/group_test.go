package group

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"active", StatusActive, false},
		{"Concluded", StatusConcluded, false},
		{" BOF ", StatusBOF, false},
		{"proposed", StatusProposed, false},
		{"dormant", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseOrganization(t *testing.T) {
	if got, err := ParseOrganization("IRTF"); err != nil || got != OrgIRTF {
		t.Errorf("ParseOrganization(IRTF) = %q, %v", got, err)
	}
	if _, err := ParseOrganization("iab"); err == nil {
		t.Error("ParseOrganization(iab) expected error, got nil")
	}
}

func TestGroup_Validate(t *testing.T) {
	valid := Group{Abbreviation: "tls", Name: "TLS", Organization: OrgIETF, Type: "wg", Status: StatusActive}

	tests := []struct {
		name    string
		mutate  func(g *Group)
		wantErr bool
	}{
		{"valid", func(g *Group) {}, false},
		{"missing abbreviation", func(g *Group) { g.Abbreviation = " " }, true},
		{"missing name", func(g *Group) { g.Name = "" }, true},
		{"bad organization", func(g *Group) { g.Organization = "iab" }, true},
		{"bad status", func(g *Group) { g.Status = "sleeping" }, true},
		{"empty type allowed", func(g *Group) { g.Type = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := valid
			tt.mutate(&g)
			err := g.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidGroup) {
				t.Errorf("Validate() error = %v, want ErrInvalidGroup", err)
			}
		})
	}
}

func TestGroup_Key(t *testing.T) {
	a := &Group{Abbreviation: "CFRG", Organization: OrgIRTF}
	b := &Group{Abbreviation: "cfrg ", Organization: OrgIRTF}
	c := &Group{Abbreviation: "cfrg", Organization: OrgIETF}

	if a.Key() != b.Key() {
		t.Errorf("keys should match ignoring case: %v vs %v", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Error("keys from different organizations should differ")
	}
	if got := a.Key().String(); got != "irtf/cfrg" {
		t.Errorf("Key().String() = %q, want irtf/cfrg", got)
	}
}

func TestGroup_Clone(t *testing.T) {
	d := NewDate(2013, 3, 1)
	original := &Group{
		Abbreviation:  "asrg",
		Name:          "Anti-Spam",
		Organization:  OrgIRTF,
		Type:          "rg",
		Status:        StatusConcluded,
		Area:          Ptr("none"),
		Chairs:        []string{"John Levine"},
		ConcludedDate: &d,
	}

	clone := original.Clone()
	if diff := cmp.Diff(original, clone); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	*clone.Area = "changed"
	clone.Chairs[0] = "changed"
	*clone.ConcludedDate = NewDate(2020, 1, 1)

	if *original.Area != "none" || original.Chairs[0] != "John Levine" || original.ConcludedDate.String() != "2013-03-01" {
		t.Errorf("Clone() shares memory with the original: %+v", original)
	}
}

func TestGroup_AbsentVersusEmpty(t *testing.T) {
	absent := &Group{Abbreviation: "a"}
	empty := &Group{Abbreviation: "a", Area: Ptr("")}

	if absent.Area != nil {
		t.Error("zero value Area should be nil")
	}
	if empty.Area == nil || *empty.Area != "" {
		t.Error("Ptr(\"\") should be a non-nil empty value")
	}
	if absent.AreaName() != "" || empty.AreaName() != "" {
		t.Error("AreaName() should be empty for both")
	}
}
