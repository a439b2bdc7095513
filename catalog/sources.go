// Copyright 2024 - 2026, the transcat contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"os"
	"path/filepath"
	"strings"
)

// RejectedSourceRoots lists directories that are never accepted as a
// project's source root when only a single search path is declared; a root
// there almost always means the catalog is misconfigured. Overridable so
// installations can adjust the platform heuristic.
var RejectedSourceRoots = defaultRejectedSourceRoots

func defaultRejectedSourceRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		home,
		filepath.Join(home, "Documents"),
		filepath.Join(home, "Desktop"),
	}
}

// SourcesBasePath resolves the header's declared base path against the
// catalog file's directory. Returns "" when the catalog has no file name or
// declares no base path.
func (c *Catalog) SourcesBasePath() string {
	if c.fileName == "" || c.header.BasePath == "" {
		return ""
	}
	bp := c.header.BasePath
	if filepath.IsAbs(bp) {
		return filepath.Clean(bp)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(c.fileName), bp))
}

// SourcesRootPath computes the common ancestor directory of the base path
// and every declared search path. Declared base paths are often one level
// too deep; reducing against the search paths compensates.
func (c *Catalog) SourcesRootPath() string {
	root := c.SourcesBasePath()
	if root == "" {
		return ""
	}
	for _, sp := range c.header.SearchPaths {
		dir := root
		if sp != "." {
			if filepath.IsAbs(sp) {
				dir = filepath.Clean(sp)
			} else {
				dir = filepath.Clean(filepath.Join(c.SourcesBasePath(), sp))
			}
		}
		root = commonDirectory(root, dir)
	}
	return root
}

// commonDirectory returns the longest shared directory prefix of two
// cleaned absolute paths.
func commonDirectory(a, b string) string {
	if a == b {
		return a
	}
	sep := string(filepath.Separator)
	as := strings.Split(a, sep)
	bs := strings.Split(b, sep)

	n := 0
	for n < len(as) && n < len(bs) && as[n] == bs[n] {
		n++
	}
	common := strings.Join(as[:n], sep)
	if common == "" {
		return sep
	}
	return common
}

// HasSourcesConfigured reports whether the catalog declares everything
// needed to locate its sources: a file path, a base path and at least one
// search path.
func (c *Catalog) HasSourcesConfigured() bool {
	return c.fileName != "" && c.header.BasePath != "" && len(c.header.SearchPaths) > 0
}

// HasSourcesAvailable estimates whether the declared sources are actually
// present on this machine. A WordPress-style marker header short-circuits
// the heuristics: the marker file's existence alone decides. With a single
// search path the resolved root is additionally rejected when it lands in
// a well-known personal directory, which practically never holds a real
// project.
func (c *Catalog) HasSourcesAvailable() bool {
	if !c.HasSourcesConfigured() {
		return false
	}

	base := c.SourcesBasePath()
	if !dirExists(base) {
		return false
	}
	for _, sp := range c.header.SearchPaths {
		full := sp
		if !filepath.IsAbs(sp) {
			full = filepath.Join(base, sp)
		}
		if !pathExists(full) {
			return false
		}
	}

	if wp := c.header.Get("X-Poedit-WPHeader"); wp != "" {
		return fileExists(filepath.Join(base, wp))
	}

	if len(c.header.SearchPaths) == 1 {
		root := c.SourcesRootPath()
		for _, rejected := range RejectedSourceRoots() {
			if root == filepath.Clean(rejected) {
				return false
			}
		}
		if filepath.Base(root) == "Desktop" {
			return false
		}
	}

	return true
}

// ExtensionMapping associates a source file extension with the extractor
// that should process it.
type ExtensionMapping struct {
	Ext    string
	Format string
}

// SourceCodeSpec is a read-only snapshot of everything a source-code
// string extractor needs, computed from the header and file path on
// demand.
type SourceCodeSpec struct {
	BasePath      string
	SearchPaths   []string
	ExcludedPaths []string
	Charset       string
	Keywords      []string
	XHeaders      map[string]string
	TypeMapping   []ExtensionMapping
}

// SourceCodeSpec bundles the extraction settings, or returns nil when the
// declared base path does not exist on disk.
func (c *Catalog) SourceCodeSpec() *SourceCodeSpec {
	path := c.SourcesBasePath()
	if path != "" && !dirExists(path) {
		return nil
	}
	if path == "" {
		path = "."
	}

	spec := &SourceCodeSpec{
		BasePath:      path,
		SearchPaths:   append([]string(nil), c.header.SearchPaths...),
		ExcludedPaths: append([]string(nil), c.header.SearchPathsExcluded...),
		Charset:       c.header.SourceCodeCharset,
		Keywords:      append([]string(nil), c.header.Keywords...),
		XHeaders:      make(map[string]string, len(c.header.Entries)),
	}
	for _, e := range c.header.Entries {
		if _, dup := spec.XHeaders[e.Key]; !dup {
			spec.XHeaders[e.Key] = e.Value
		}
	}
	for _, pair := range strings.Split(c.header.Get("X-Poedit-Mapping"), ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		ext, format, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		spec.TypeMapping = append(spec.TypeMapping, ExtensionMapping{Ext: ext, Format: format})
	}
	return spec
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
