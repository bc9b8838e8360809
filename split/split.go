package split

import (
	"context"
	"fmt"

	"github.com/randalmurphal/packkit/gitmeta"
)

// Request describes one split operation.
type Request struct {
	// RootDirs are the scanned root directories, passed through to the
	// renderer for the document preamble.
	RootDirs []string

	// Output is the base output path part paths are derived from.
	Output string

	// Files are the selected files with content, in their original relative
	// order. Paths must be unique.
	Files []File

	// AllPaths is the full list of known paths, a superset of the file
	// paths, used for the directory listing of every part.
	AllPaths []string

	// Diff and Log are optional git context, embedded in the first part only.
	Diff *gitmeta.Diff
	Log  *gitmeta.Log

	// MaxBytes and MaxTokens are the budgets. At most one is honored: a
	// positive MaxTokens takes precedence over MaxBytes. With neither set,
	// Split returns no parts and performs no work.
	MaxBytes  int
	MaxTokens int

	// Workers bounds the token pre-estimation pool. Zero means NumCPU.
	Workers int

	// Progress receives human-readable status strings. Informational only;
	// never used for control flow. May be nil.
	Progress func(msg string)

	// Render produces one document per trial or committed batch. Required
	// whenever a budget is set.
	Render RenderFunc

	// Counter is the exact token counter. Required in token mode.
	Counter TokenCounter
}

func (r *Request) progress(format string, args ...any) {
	if r.Progress != nil {
		r.Progress(fmt.Sprintf(format, args...))
	}
}

// validate checks the request before any rendering or counting happens.
func (r *Request) validate() error {
	if r.MaxBytes < 0 || r.MaxTokens < 0 {
		return ErrInvalidBudget
	}
	if r.Render == nil {
		return fmt.Errorf("renderer is required")
	}
	if r.MaxTokens > 0 && r.Counter == nil {
		return fmt.Errorf("token counter is required for a token budget")
	}
	seen := make(map[string]struct{}, len(r.Files))
	for _, f := range r.Files {
		if _, dup := seen[f.Path]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, f.Path)
		}
		seen[f.Path] = struct{}{}
	}
	return nil
}

// Split cuts the packed output into budget-compliant parts and returns them
// in order. A positive token budget selects token mode; otherwise a positive
// byte budget selects byte mode; with neither, Split returns (nil, nil)
// without invoking any collaborator.
//
// On success the concatenation of all parts' embedded files equals the input
// file set, each file exactly once, in original order. On error no parts are
// returned; there is no partial success.
func Split(ctx context.Context, req Request) ([]Part, error) {
	if req.MaxBytes == 0 && req.MaxTokens == 0 {
		return nil, nil
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.MaxTokens > 0 {
		return splitByTokens(ctx, req)
	}
	return splitByBytes(ctx, req)
}
