package split

import (
	"sort"
	"strings"
)

// File is a path plus its resolved content, eligible for embedding in a part.
// Path is the file's identity and must be unique within one split request.
type File struct {
	Path    string
	Content string
}

// Group is a root-entry group: every known path and every selected file whose
// relative path starts with the same top-level segment. Groups are the atomic
// unit of byte-mode splitting and are immutable once built.
type Group struct {
	// Name is the root entry, e.g. "src" for "src/a.go".
	Name string

	// AllPaths holds every known path under the root entry, including files
	// whose content is not embedded. Used for the directory listing.
	AllPaths []string

	// Files holds the selected files under the root entry, in input order.
	Files []File
}

// RootEntry returns the first path segment of a relative path. Separators are
// normalized to "/" first; a path with no separator is its own root entry.
func RootEntry(path string) string {
	normalized := strings.ReplaceAll(path, "\\", "/")
	if i := strings.Index(normalized, "/"); i >= 0 {
		return normalized[:i]
	}
	return normalized
}

// GroupByRootEntry partitions paths and files into root-entry groups, ordered
// lexicographically by root entry. Pure and deterministic: identical inputs
// always yield identical group ordering and membership. Within each group the
// original relative order of paths and files is preserved.
func GroupByRootEntry(allPaths []string, files []File) []Group {
	byName := make(map[string]*Group)
	var names []string

	groupFor := func(name string) *Group {
		g, ok := byName[name]
		if !ok {
			g = &Group{Name: name}
			byName[name] = g
			names = append(names, name)
		}
		return g
	}

	for _, p := range allPaths {
		g := groupFor(RootEntry(p))
		g.AllPaths = append(g.AllPaths, p)
	}
	for _, f := range files {
		g := groupFor(RootEntry(f.Path))
		g.Files = append(g.Files, f)
	}

	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		groups = append(groups, *byName[name])
	}
	return groups
}
