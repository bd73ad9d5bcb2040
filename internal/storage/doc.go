// Package storage reads and writes group snapshots.
//
// A snapshot is a single document with a top-level "groups" list, stored as
// YAML or JSON depending on the file extension. Records keep their order and
// absent optional fields are left out. The default snapshot location is
// ~/.local/share/ietf-groups/groups.yaml.
//
// EncodeNames writes the plain JSON array of names produced by the name-list
// scraper.
package storage
