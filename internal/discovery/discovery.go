// Package discovery enumerates versioned spec files in a directory and
// orders them newest-first.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/beezly/specdocs/internal/version"
)

// SpecExt is the file extension spec files must carry to be discovered.
const SpecExt = ".json"

// SpecFile is one discovered spec file. The version is parsed from the
// base filename with the extension stripped.
type SpecFile struct {
	Path    string
	Name    string // base filename, e.g. "9.4.120.json"
	Version version.Version
}

// Collection is an ordered list of spec files, highest version first.
// Files parsing to the same version value are ordered by filename,
// ascending, so identical directory contents always produce the same
// collection.
type Collection []SpecFile

// Latest returns the newest spec file, or nil if the collection is empty.
func (c Collection) Latest() *SpecFile {
	if len(c) == 0 {
		return nil
	}
	return &c[0]
}

// Older returns every spec file except the newest.
func (c Collection) Older() []SpecFile {
	if len(c) <= 1 {
		return nil
	}
	return c[1:]
}

// Versions returns the version strings in collection order.
func (c Collection) Versions() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.Version.String()
	}
	return out
}

// Discover scans dir for spec files and returns them ordered newest
// version first. A nonexistent directory yields an empty collection and
// no error. A file whose name does not parse as a version fails the whole
// scan; a misparsed version would silently corrupt the published ordering.
func Discover(dir string) (Collection, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read spec directory %s: %w", dir, err)
	}

	var specs Collection
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), SpecExt) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), SpecExt)
		v, err := version.Parse(stem)
		if err != nil {
			return nil, fmt.Errorf("spec file %s: %w", filepath.Join(dir, entry.Name()), err)
		}
		specs = append(specs, SpecFile{
			Path:    filepath.Join(dir, entry.Name()),
			Name:    entry.Name(),
			Version: v,
		})
	}

	slices.SortFunc(specs, func(a, b SpecFile) int {
		if c := b.Version.Compare(a.Version); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return specs, nil
}
