// Package group provides the typed record for IETF working groups and IRTF
// research groups, and the read-only collection that holds them.
//
// A Collection is built once, from a scrape or from a snapshot, and never
// mutated afterwards. Query accessors (Find, ByType, Active, Types, ...)
// preserve collection order and treat abbreviations case-insensitively.
// Diff compares two collections to report added, removed and changed groups
// between snapshots.
package group
