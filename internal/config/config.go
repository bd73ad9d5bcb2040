package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/pfrederiksen/ietf-groups/internal/group"
	"github.com/pfrederiksen/ietf-groups/internal/logger"
	"github.com/titanous/json5"
)

const (
	DefaultConfigPath   = "~/.config/ietf-groups/config.json5"
	DefaultSnapshotPath = "~/.local/share/ietf-groups/groups.yaml"
)

// Duration is a time.Duration written as a Go duration string ("30s") in
// config files.
type Duration time.Duration

// UnmarshalJSON accepts "30s" style strings and plain numbers of seconds
func (d *Duration) UnmarshalJSON(data []byte) error {
	var text string
	if err := json5.Unmarshal(data, &text); err == nil {
		parsed, err := time.ParseDuration(text)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", text, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := json5.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("invalid duration %s: want a string like \"30s\" or seconds", data)
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a string
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// Config holds the settings shared by every command
type Config struct {
	// IETF datatracker group index and the origin links are resolved against
	IETFGroupsURL string `json:"ietf_groups_url"`
	IETFSiteURL   string `json:"ietf_site_url"`

	IRTFGroupsURL string `json:"irtf_groups_url"`

	// Pages scraped by the plain name-list utility
	IETFNamesURL string `json:"ietf_names_url"`
	IRTFNamesURL string `json:"irtf_names_url"`

	UserAgent string   `json:"user_agent"`
	Timeout   Duration `json:"timeout"`

	// Negative disables rate limiting
	RequestsPerSecond float64 `json:"requests_per_second"`
	Burst             int     `json:"burst"`

	CacheSize int `json:"cache_size"`
	// Negative disables the page memo
	CacheTTL Duration `json:"cache_ttl"`

	Dedup        string `json:"dedup"`
	SnapshotPath string `json:"snapshot_path"`
	LogLevel     string `json:"log_level"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		IETFGroupsURL:     "https://datatracker.ietf.org/group/",
		IETFSiteURL:       "https://datatracker.ietf.org",
		IRTFGroupsURL:     "https://www.irtf.org/groups.html",
		IETFNamesURL:      "https://tools.ietf.org/wg/",
		IRTFNamesURL:      "https://irtf.org/groups",
		UserAgent:         "ietf-groups/1.0 (github.com/pfrederiksen/ietf-groups)",
		Timeout:           Duration(30 * time.Second),
		RequestsPerSecond: 2,
		Burst:             2,
		CacheSize:         1024,
		CacheTTL:          Duration(time.Hour),
		Dedup:             string(group.DedupFirstWins),
		SnapshotPath:      DefaultSnapshotPath,
		LogLevel:          "info",
	}
}

// Load reads the config file at path and merges it, followed by its
// "<name>.local.<ext>" sibling, over the defaults. An empty path means
// DefaultConfigPath, which may be missing. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	found, err := mergeFile(cfg, path)
	if err != nil {
		return nil, err
	}
	if !found && explicit {
		return nil, fmt.Errorf("config file %s: %w", path, os.ErrNotExist)
	}

	if _, err := mergeFile(cfg, localPath(path)); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading config: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return true, nil
	}

	var override Config
	if err := json5.Unmarshal(data, &override); err != nil {
		return false, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
		return false, fmt.Errorf("merging config %s: %w", path, err)
	}
	logger.Debug("Loaded config file", logger.Fields{"path": path})
	return true, nil
}

// localPath turns "dir/config.json5" into "dir/config.local.json5"
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// Validate rejects settings that can't work
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"ietf_groups_url": c.IETFGroupsURL,
		"ietf_site_url":   c.IETFSiteURL,
		"irtf_groups_url": c.IRTFGroupsURL,
	} {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, value)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if _, err := group.ParseDedupPolicy(c.Dedup); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// DedupPolicy returns the parsed dedup policy. Validate has already
// rejected invalid values.
func (c *Config) DedupPolicy() group.DedupPolicy {
	policy, _ := group.ParseDedupPolicy(c.Dedup)
	return policy
}

// ExpandHome expands a leading "~/" to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
