// Package config loads ietf-groups settings.
//
// Settings come from a JSON5 file (default ~/.config/ietf-groups/config.json5)
// merged over built-in defaults. A sibling "config.local.json5" is merged on
// top when present so machine-specific overrides can stay out of shared
// files. A missing default file is not an error.
package config
