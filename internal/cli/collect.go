package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
	"github.com/pfrederiksen/ietf-groups/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagFetchFormat string
	flagOnly        string
	flagDiff        string

	flagDataDir string

	flagNamesOutput string
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [OUTPUT_FILE]",
		Short: "Scrape all groups and write them to a snapshot file",
		Long: `Scrape the IETF datatracker and the IRTF groups page and write every group
found to OUTPUT_FILE (default ietf_groups.<format>).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runFetch,
	}

	cmd.Flags().StringVar(&flagFetchFormat, "format", "yaml", "Output format: yaml or json (default from OUTPUT_FILE extension)")
	cmd.Flags().StringVar(&flagOnly, "only", "all", "Organizations to scrape: ietf, irtf or all")
	cmd.Flags().StringVar(&flagDiff, "diff", "", "Previous snapshot to report changes against")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	// Input is validated before any network access
	format, err := storage.ParseFormat(flagFetchFormat)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	only := strings.ToLower(strings.TrimSpace(flagOnly))
	if only != "all" && only != "ietf" && only != "irtf" {
		return fmt.Errorf("invalid --only: %s (must be 'ietf', 'irtf' or 'all')", flagOnly)
	}

	output := "ietf_groups." + format.Extension()
	if len(args) == 1 {
		output = args[0]
		// A known extension decides the format unless --format says otherwise,
		// and the two must agree when both are given
		if ext, extErr := storage.FormatFromPath(output); extErr == nil && ext != format {
			if cmd.Flags().Changed("format") {
				return fmt.Errorf("output file %s does not match --format %s", output, format)
			}
			format = ext
		}
	}
	store, err := storage.NewStoreWithFormat(output, format)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	var previous *group.Collection
	if flagDiff != "" {
		previous, err = storage.ReadFile(flagDiff)
		if err != nil {
			return fmt.Errorf("loading previous snapshot: %w", err)
		}
	}

	sc := newScraper()
	ctx := cmd.Context()

	var coll *group.Collection
	switch only {
	case "ietf":
		coll, err = sc.FetchIETF(ctx)
	case "irtf":
		coll, err = sc.FetchIRTF(ctx)
	default:
		coll, err = sc.FetchAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetching groups: %w", err)
	}

	if err := store.Save(coll); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	logger.Info("Saved snapshot", logger.Fields{"path": store.Path(), "groups": coll.Len()})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Saved %d groups (%d IETF, %d IRTF) to %s\n",
		coll.Len(), len(coll.IETF()), len(coll.IRTF()), store.Path())

	if previous != nil {
		return writeDiff(out, group.Diff(previous, coll))
	}
	return nil
}

func newIntegrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integrate FILE",
		Short: "Install a fetched snapshot as the default data file",
		Long: `Check that FILE decodes and that every group in it is complete, then copy it
to the default snapshot location used by the query commands.`,
		Args: cobra.ExactArgs(1),
		RunE: runIntegrate,
	}

	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Directory to install the snapshot into (default from config)")

	return cmd
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	coll, err := storage.ReadFile(args[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("snapshot not found: %s", args[0])
		}
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var invalid []error
	for i, g := range coll.All() {
		if err := g.Validate(); err != nil {
			invalid = append(invalid, fmt.Errorf("group %d: %w", i+1, err))
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("%s has %d invalid groups: %w", args[0], len(invalid), errors.Join(invalid...))
	}

	target := cfg.SnapshotPath
	if flagDataDir != "" {
		target = filepath.Join(flagDataDir, filepath.Base(target))
	}
	store, err := storage.NewStore(target)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}
	if err := store.Save(coll); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Integrated %d groups into %s\n", coll.Len(), store.Path())
	return nil
}

func newNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Print the flat list of group names as JSON",
		Args:  cobra.NoArgs,
		RunE:  runNames,
	}

	cmd.Flags().StringVar(&flagNamesOutput, "output", "", "Write the list to this file instead of stdout")

	return cmd
}

func runNames(cmd *cobra.Command, args []string) error {
	names, err := newScraper().Names(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching names: %w", err)
	}

	if flagNamesOutput == "" {
		return storage.EncodeNames(cmd.OutOrStdout(), names)
	}

	f, err := os.Create(flagNamesOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", flagNamesOutput, err)
	}
	if err := storage.EncodeNames(f, names); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", flagNamesOutput, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d names to %s\n", len(names), flagNamesOutput)
	return nil
}
