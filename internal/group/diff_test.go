package group

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDiff(t *testing.T) {
	previous := NewCollection([]*Group{
		{Abbreviation: "tls", Name: "TLS", Organization: OrgIETF, Type: "wg", Status: StatusActive, Chairs: []string{"Joe"}},
		{Abbreviation: "sipcore", Name: "SIP Core", Organization: OrgIETF, Type: "wg", Status: StatusActive},
		{Abbreviation: "ASRG", Name: "Anti-Spam", Organization: OrgIRTF, Type: "rg", Status: StatusActive},
	}, DedupNone)

	current := NewCollection([]*Group{
		{Abbreviation: "TLS", Name: "TLS", Organization: OrgIETF, Type: "wg", Status: StatusActive, Chairs: []string{"Joe", "Sean"}},
		{Abbreviation: "ASRG", Name: "Anti-Spam", Organization: OrgIRTF, Type: "rg", Status: StatusConcluded, ConcludedDate: datePtr(NewDate(2013, 3, 1))},
		{Abbreviation: "quic", Name: "QUIC", Organization: OrgIETF, Type: "wg", Status: StatusActive},
		{Abbreviation: "CFRG", Name: "Crypto Forum", Organization: OrgIRTF, Type: "rg", Status: StatusActive},
	}, DedupNone)

	result := Diff(previous, current)

	if diff := cmp.Diff([]string{"quic", "CFRG"}, abbreviations(result.Added)); diff != "" {
		t.Errorf("Added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"sipcore"}, abbreviations(result.Removed)); diff != "" {
		t.Errorf("Removed mismatch (-want +got):\n%s", diff)
	}

	want := []FieldChange{
		{Group: "ietf/tls", Field: "chairs", Old: "Joe", New: "Joe, Sean"},
		{Group: "irtf/asrg", Field: "concluded_date", Old: "", New: "2013-03-01"},
		{Group: "irtf/asrg", Field: "status", Old: "active", New: "concluded"},
	}
	if diff := cmp.Diff(want, result.Changed, cmpopts.IgnoreFields(FieldChange{}, "Key")); diff != "" {
		t.Errorf("Changed mismatch (-want +got):\n%s", diff)
	}
	if result.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestDiff_Identical(t *testing.T) {
	c := NewCollection(testGroups(), DedupNone)

	result := Diff(c, c)
	if !result.Empty() {
		t.Errorf("Diff of identical collections = %+v, want empty", result)
	}
}

func TestDiff_NilPrevious(t *testing.T) {
	c := NewCollection(testGroups(), DedupNone)

	result := Diff(nil, c)
	if len(result.Added) != c.Len() {
		t.Errorf("len(Added) = %d, want %d", len(result.Added), c.Len())
	}
	if len(result.Removed) != 0 || len(result.Changed) != 0 {
		t.Errorf("unexpected removed/changed: %+v", result)
	}
}
