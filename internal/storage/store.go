package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/ietf-groups/internal/group"
)

// ErrCorruptSnapshot is wrapped by errors for snapshot files that exist but
// can't be read or parsed
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

// Store handles persistence of a group snapshot file
type Store struct {
	path   string
	format Format
}

// NewStore creates a Store for the snapshot at path. A leading "~/" is
// expanded and the format is taken from the file extension.
func NewStore(path string) (*Store, error) {
	return NewStoreWithFormat(path, "")
}

// NewStoreWithFormat is NewStore with an explicit format; an empty format
// means the file extension decides.
func NewStoreWithFormat(path string, format Format) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if format == "" {
		var err error
		if format, err = FormatFromPath(path); err != nil {
			return nil, err
		}
	} else if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	return &Store{path: path, format: format}, nil
}

// Path returns the expanded snapshot path
func (s *Store) Path() string {
	return s.path
}

// Format returns the snapshot format
func (s *Store) Format() Format {
	return s.format
}

// Load reads the snapshot. A missing file is an empty collection; a file
// that can't be read or decoded is an ErrCorruptSnapshot error.
func (s *Store) Load() (*group.Collection, error) {
	coll, err := readFile(s.path, s.format)
	if errors.Is(err, os.ErrNotExist) {
		// No snapshot yet
		return group.Empty(), nil
	}
	return coll, err
}

// Save writes coll to the snapshot file, creating its directory. The file is
// replaced atomically so readers never see a partial snapshot.
func (s *Store) Save(coll *group.Collection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, coll, s.format); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// ReadFile decodes the groups document at path, taking the format from its
// extension. Unlike Store.Load a missing file is an error matching
// os.ErrNotExist.
func ReadFile(path string) (*group.Collection, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return readFile(path, format)
}

func readFile(path string, format Format) (*group.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: reading %s: %w", ErrCorruptSnapshot, path, err)
	}
	defer f.Close()

	coll, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorruptSnapshot, path, err)
	}
	return coll, nil
}
