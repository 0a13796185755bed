// Package catalog enumerates the match files of a configuration directory.
package catalog

import (
	"os"
	"sort"

	"matchman/internal/log"

	"github.com/gobwas/glob"
)

// Catalog lists match files directly inside one directory (non-recursive).
// File names are matched against a set of glob patterns, by default *.yml.
type Catalog struct {
	dir      string
	patterns []glob.Glob
}

// New creates a catalog over dir. Patterns that fail to compile are skipped
// with a warning; with no usable pattern the catalog falls back to *.yml.
func New(dir string, patterns []string) *Catalog {
	c := &Catalog{dir: dir}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			log.Warnf("skipping invalid file pattern %q: %v", p, err)
			continue
		}
		c.patterns = append(c.patterns, g)
	}
	if len(c.patterns) == 0 {
		c.patterns = append(c.patterns, glob.MustCompile("*.yml"))
	}
	return c
}

// Dir returns the directory the catalog enumerates.
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns the names (not paths) of the matching regular files, sorted
// lexically. A missing or unreadable directory yields an empty list; entries
// that cannot be inspected are skipped rather than aborting the listing.
func (c *Catalog) List() []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("cannot read match directory %s: %v", c.dir, err)
		}
		return nil
	}

	var names []string
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			log.Debugf("skipping unreadable entry in %s: %v", c.dir, err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		if c.matches(entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)
	return names
}

// Contains reports whether name is currently in the catalog.
func (c *Catalog) Contains(name string) bool {
	for _, n := range c.List() {
		if n == name {
			return true
		}
	}
	return false
}

func (c *Catalog) matches(name string) bool {
	for _, g := range c.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
