package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/storage"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// WriteGroups writes groups in the specified format. JSON and YAML use the
// snapshot document layout.
func WriteGroups(w io.Writer, groups []*group.Group, format OutputFormat) error {
	switch format {
	case FormatTable:
		return writeTable(w, groups)
	case FormatJSON:
		return storage.Encode(w, group.NewCollection(groups, group.DedupNone), storage.FormatJSON)
	case FormatYAML:
		return storage.Encode(w, group.NewCollection(groups, group.DedupNone), storage.FormatYAML)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// writeTable outputs groups as a human-readable table
func writeTable(w io.Writer, groups []*group.Group) error {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No groups found.")
		return nil
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"Abbreviation", "Name", "Org", "Type", "Area", "Status"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.Abbreviation, g.Name, g.Organization, g.Type, g.AreaName(), g.Status})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d", len(groups))})
	t.Render()
	return nil
}

// writeGroup outputs a single group as YAML
func writeGroup(w io.Writer, g *group.Group) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(g); err != nil {
		return fmt.Errorf("encoding group: %w", err)
	}
	return encoder.Close()
}

// writeLines outputs one value per line
func writeLines(w io.Writer, values []string) error {
	for _, v := range values {
		if _, err := fmt.Fprintln(w, v); err != nil {
			return err
		}
	}
	return nil
}

// writeDiff outputs a change report against a previous snapshot
func writeDiff(w io.Writer, d *group.DiffResult) error {
	if d.Empty() {
		fmt.Fprintln(w, "No changes since the previous snapshot.")
		return nil
	}

	for _, g := range d.Added {
		fmt.Fprintf(w, "ADDED: %s\n", g)
	}
	for _, g := range d.Removed {
		fmt.Fprintf(w, "REMOVED: %s\n", g)
	}
	for _, c := range d.Changed {
		fmt.Fprintf(w, "CHANGED: %s %s: %s -> %s\n", c.Group, c.Field, quoted(c.Old), quoted(c.New))
	}

	fmt.Fprintf(w, "\nTotal: %d added, %d removed, %d changed\n", len(d.Added), len(d.Removed), len(d.Changed))
	return nil
}

func quoted(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return fmt.Sprintf("%q", s)
}
