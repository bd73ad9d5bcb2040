package group

import (
	"errors"
	"fmt"
	"strings"
)

// Organization is the standards body a group belongs to
type Organization string

const (
	OrgIETF Organization = "ietf"
	OrgIRTF Organization = "irtf"
)

// Valid reports whether o is a known organization
func (o Organization) Valid() bool {
	return o == OrgIETF || o == OrgIRTF
}

// ParseOrganization normalizes case and validates the organization name
func ParseOrganization(s string) (Organization, error) {
	org := Organization(strings.ToLower(strings.TrimSpace(s)))
	if !org.Valid() {
		return "", fmt.Errorf("invalid organization: %q (must be ietf or irtf)", s)
	}
	return org, nil
}

// Status is the lifecycle state of a group
type Status string

const (
	StatusActive    Status = "active"
	StatusConcluded Status = "concluded"
	StatusBOF       Status = "bof"
	StatusProposed  Status = "proposed"
)

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusConcluded, StatusBOF, StatusProposed:
		return true
	}
	return false
}

// ParseStatus normalizes case and validates the status name
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid status: %q (must be active, concluded, bof or proposed)", s)
	}
	return status, nil
}

// ErrInvalidGroup is returned by Validate for records missing required data
var ErrInvalidGroup = errors.New("invalid group")

// Group represents one IETF working group or IRTF research group.
//
// Optional fields are pointers: nil means the value is absent and it is
// omitted on output, while a pointer to "" is an explicitly empty value.
type Group struct {
	Abbreviation       string       `yaml:"abbreviation" json:"abbreviation"`
	Name               string       `yaml:"name" json:"name"`
	Organization       Organization `yaml:"organization" json:"organization"`
	Type               string       `yaml:"type" json:"type"`
	Area               *string      `yaml:"area,omitempty" json:"area,omitempty"`
	Status             Status       `yaml:"status" json:"status"`
	Description        *string      `yaml:"description,omitempty" json:"description,omitempty"`
	Chairs             []string     `yaml:"chairs,omitempty" json:"chairs,omitempty"`
	MailingList        *string      `yaml:"mailing_list,omitempty" json:"mailing_list,omitempty"`
	MailingListArchive *string      `yaml:"mailing_list_archive,omitempty" json:"mailing_list_archive,omitempty"`
	WebsiteURL         *string      `yaml:"website_url,omitempty" json:"website_url,omitempty"`
	CharterURL         *string      `yaml:"charter_url,omitempty" json:"charter_url,omitempty"`
	ConcludedDate      *Date        `yaml:"concluded_date,omitempty" json:"concluded_date,omitempty"`
}

// Key identifies a group within a collection: organization plus the
// case-folded abbreviation.
type Key struct {
	Organization Organization
	Abbreviation string
}

func (k Key) String() string {
	return string(k.Organization) + "/" + k.Abbreviation
}

// Key returns the uniqueness key of the group
func (g *Group) Key() Key {
	return Key{Organization: g.Organization, Abbreviation: fold(g.Abbreviation)}
}

// Validate checks the required fields of a record loaded from outside the
// scrapers (e.g. a snapshot being integrated).
func (g *Group) Validate() error {
	switch {
	case strings.TrimSpace(g.Abbreviation) == "":
		return fmt.Errorf("%w: missing abbreviation", ErrInvalidGroup)
	case strings.TrimSpace(g.Name) == "":
		return fmt.Errorf("%w: %s: missing name", ErrInvalidGroup, g.Abbreviation)
	case !g.Organization.Valid():
		return fmt.Errorf("%w: %s: organization %q", ErrInvalidGroup, g.Abbreviation, g.Organization)
	case !g.Status.Valid():
		return fmt.Errorf("%w: %s: status %q", ErrInvalidGroup, g.Abbreviation, g.Status)
	}
	return nil
}

// AreaName returns the area or "" when absent
func (g *Group) AreaName() string {
	return deref(g.Area)
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	clone := *g
	clone.Area = clonePtr(g.Area)
	clone.Description = clonePtr(g.Description)
	clone.MailingList = clonePtr(g.MailingList)
	clone.MailingListArchive = clonePtr(g.MailingListArchive)
	clone.WebsiteURL = clonePtr(g.WebsiteURL)
	clone.CharterURL = clonePtr(g.CharterURL)
	if g.ConcludedDate != nil {
		d := *g.ConcludedDate
		clone.ConcludedDate = &d
	}
	if g.Chairs != nil {
		clone.Chairs = append([]string(nil), g.Chairs...)
	}
	return &clone
}

// String returns a short description like "ietf/httpbis (HTTP)"
func (g *Group) String() string {
	return fmt.Sprintf("%s/%s (%s)", g.Organization, g.Abbreviation, g.Name)
}

// Ptr returns a pointer to s. Handy for building records in code.
func Ptr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
