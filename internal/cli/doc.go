// Package cli implements the command-line interface for ietf-groups.
//
// The cli package provides the Cobra-based CLI: fetch scrapes both
// organizations into a snapshot file, integrate installs a snapshot as the
// default data file, and list, show, types and areas query it. Output is a
// table, JSON or YAML. The root command loads the config and sets up the
// shared logger before any subcommand runs.
package cli
