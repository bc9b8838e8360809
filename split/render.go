package split

import (
	"context"

	"github.com/randalmurphal/packkit/gitmeta"
)

// RenderRequest carries everything a renderer needs to produce one document.
type RenderRequest struct {
	// RootDirs are the scanned root directories, for the document preamble.
	RootDirs []string

	// Files are the files to embed in this document, in order.
	Files []File

	// AllPaths is the full list of known paths across the whole split, so
	// the directory listing stays complete even when a file's content lands
	// in another part.
	AllPaths []string

	// Diff and Log are optional git context. The engine clears both for
	// every part after the first so large position-independent sections are
	// not repeated.
	Diff *gitmeta.Diff
	Log  *gitmeta.Log

	// Position is the part's place within the split, or nil when the output
	// is not being split.
	Position *Position
}

// RenderFunc renders one document. The engine calls it once per trial in
// byte mode and once per committed batch in token mode; implementations must
// be pure request/response with no retained state between calls.
type RenderFunc func(ctx context.Context, req RenderRequest) (string, error)

// TokenCounter counts tokens of a text in the configured encoding. Used both
// for the concurrent per-file pre-estimate and for exact verification of
// rendered parts.
type TokenCounter interface {
	Count(ctx context.Context, text string) (int, error)
}
