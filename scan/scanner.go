package scan

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/randalmurphal/packkit/split"
)

// DefaultMaxFileSize is the per-file size ceiling for embedding content.
const DefaultMaxFileSize = 50 * 1024 * 1024

// binarySniffLen is how many leading bytes are checked for a NUL byte.
const binarySniffLen = 8192

// defaultIgnores are always-excluded patterns, in gitignore syntax.
var defaultIgnores = []string{
	".git/",
	".hg/",
	".svn/",
	"node_modules/",
	"bower_components/",
	"dist/",
	"build/",
	"coverage/",
	"target/",
	".cache/",
	".DS_Store",
	"*.min.js",
	"*.map",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
}

// Result is the outcome of a scan.
type Result struct {
	// Files are the selected files with content, ordered lexicographically.
	Files []split.File

	// AllPaths is every discovered path, including binary and oversized
	// files whose content is not loaded. Superset of the file paths.
	AllPaths []string
}

// Scanner walks root directories and loads pack-eligible files.
type Scanner struct {
	includes       []string
	ignores        []string
	maxFileSize    int64
	useGitignore   bool
	defaultIgnores bool
	workers        int
}

// Option configures a Scanner.
type Option func(*Scanner)

// New creates a scanner honoring .gitignore and the default ignore set.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		maxFileSize:    DefaultMaxFileSize,
		useGitignore:   true,
		defaultIgnores: true,
		workers:        runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithInclude restricts the scan to paths matching at least one glob.
// Globs match against the full relative path or the base name.
func WithInclude(patterns ...string) Option {
	return func(s *Scanner) { s.includes = append(s.includes, patterns...) }
}

// WithIgnore adds ignore patterns in gitignore syntax.
func WithIgnore(patterns ...string) Option {
	return func(s *Scanner) { s.ignores = append(s.ignores, patterns...) }
}

// WithMaxFileSize caps the size of files loaded for embedding.
func WithMaxFileSize(n int64) Option {
	return func(s *Scanner) { s.maxFileSize = n }
}

// WithGitignore toggles honoring the root's .gitignore file.
func WithGitignore(enabled bool) Option {
	return func(s *Scanner) { s.useGitignore = enabled }
}

// WithDefaultIgnores toggles the built-in ignore set.
func WithDefaultIgnores(enabled bool) Option {
	return func(s *Scanner) { s.defaultIgnores = enabled }
}

// WithWorkers bounds concurrent content loading. Zero means NumCPU.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// candidate is a discovered file awaiting content loading.
type candidate struct {
	rel  string // result path, "/"-separated
	abs  string
	size int64
}

// Scan walks the roots and returns the loaded file set. When more than one
// root is given, result paths are prefixed with the root's base name to keep
// them unambiguous.
func (s *Scanner) Scan(ctx context.Context, roots ...string) (*Result, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("at least one root directory is required")
	}

	var candidates []candidate
	for _, root := range roots {
		found, err := s.walkRoot(root, len(roots) > 1)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, found...)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].rel < candidates[j].rel })

	type loaded struct {
		content string
		binary  bool
	}
	results := make([]loaded, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, c := range candidates {
		if c.size > s.maxFileSize {
			continue // listed, not embedded
		}
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(c.abs)
			if err != nil {
				return fmt.Errorf("read %s: %w", c.rel, err)
			}
			results[i] = loaded{content: string(data), binary: isBinary(data)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{}
	for i, c := range candidates {
		result.AllPaths = append(result.AllPaths, c.rel)
		if c.size > s.maxFileSize || results[i].binary {
			continue
		}
		result.Files = append(result.Files, split.File{Path: c.rel, Content: results[i].content})
	}
	return result, nil
}

// walkRoot discovers candidate files under one root.
func (s *Scanner) walkRoot(root string, prefixRoot bool) ([]candidate, error) {
	matcher, err := s.matcherFor(root)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if prefixRoot {
		prefix = filepath.Base(root)
	}

	var found []candidate
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		segments := strings.Split(rel, "/")

		if d.IsDir() {
			if matcher.Match(segments, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matcher.Match(segments, false) {
			return nil
		}
		if !s.included(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		result := rel
		if prefix != "" {
			result = path.Join(prefix, rel)
		}
		found = append(found, candidate{rel: result, abs: p, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return found, nil
}

// matcherFor builds the combined ignore matcher for one root: built-in
// defaults, the root's top-level .gitignore, then caller patterns.
func (s *Scanner) matcherFor(root string) (gitignore.Matcher, error) {
	var patterns []gitignore.Pattern
	if s.defaultIgnores {
		for _, line := range defaultIgnores {
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
	}
	if s.useGitignore {
		lines, err := readIgnoreFile(filepath.Join(root, ".gitignore"))
		if err != nil {
			return nil, err
		}
		for _, line := range lines {
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
	}
	for _, line := range s.ignores {
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	return gitignore.NewMatcher(patterns), nil
}

// readIgnoreFile reads one gitignore file, tolerating its absence.
func readIgnoreFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// included reports whether rel matches the include globs, or no globs are set.
func (s *Scanner) included(rel string) bool {
	if len(s.includes) == 0 {
		return true
	}
	base := path.Base(rel)
	for _, pattern := range s.includes {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// isBinary reports whether data looks like binary content, by checking the
// leading bytes for a NUL.
func isBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}
