package cli

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/ietf-groups/internal/dataset"
	"github.com/pfrederiksen/ietf-groups/internal/filter"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagSnapshot   string
	flagFilter     string
	flagListFormat string
	flagSort       string
)

// addSnapshotFlag binds --snapshot on a query command
func addSnapshotFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagSnapshot, "snapshot", "", "Snapshot to query (default from config)")
}

// openDataset loads the snapshot named by --snapshot or the config
func openDataset() (*dataset.Dataset, error) {
	path := flagSnapshot
	if path == "" {
		path = cfg.SnapshotPath
	}
	ds, err := dataset.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}
	return ds, nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups in the snapshot",
		Long: `List the groups in the snapshot, optionally filtered.

Filters are comma-separated key=value clauses; values within a clause are
separated by '|'. Keys: org, type, area, status, name.

  ietf-groups list --filter "org=ietf,status=active,area=sec|art"`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	addSnapshotFlag(cmd)
	cmd.Flags().StringVar(&flagFilter, "filter", "", "Filter expression")
	cmd.Flags().StringVar(&flagListFormat, "format", "table", "Output format: table, json or yaml")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Sort by: abbreviation, name, type or organization (default snapshot order)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagListFormat))
	if format != FormatTable && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format: %s (must be 'table', 'json' or 'yaml')", flagListFormat)
	}

	order := SortOrder(strings.ToLower(flagSort))
	if !order.valid() {
		return fmt.Errorf("invalid sort: %s (must be 'abbreviation', 'name', 'type' or 'organization')", flagSort)
	}

	f, err := filter.Parse(flagFilter)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	ds, err := openDataset()
	if err != nil {
		return err
	}

	groups := f.Apply(ds.Groups())
	sortGroups(groups, order)
	logger.Debug("Listed groups", logger.Fields{"filter": f.String(), "groups": len(groups)})

	return WriteGroups(cmd.OutOrStdout(), groups, format)
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ABBREV",
		Short: "Show one group",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	addSnapshotFlag(cmd)

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ds, err := openDataset()
	if err != nil {
		return err
	}

	g, ok := ds.FindGroup(args[0])
	if !ok {
		return fmt.Errorf("group not found: %s", args[0])
	}
	return writeGroup(cmd.OutOrStdout(), g)
}

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the distinct group types in the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := openDataset()
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), ds.GroupTypes())
		},
	}

	addSnapshotFlag(cmd)

	return cmd
}

func newAreasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "areas",
		Short: "List the distinct IETF areas in the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := openDataset()
			if err != nil {
				return err
			}
			return writeLines(cmd.OutOrStdout(), ds.Areas())
		},
	}

	addSnapshotFlag(cmd)

	return cmd
}
