package split

import (
	"context"
	"fmt"
)

// FileTokenOverhead is the fixed per-file token tax added to every estimate
// before batching, covering the markup that wraps a file's content in the
// rendered document (section header, path, fences).
const FileTokenOverhead = 20

// splitByTokens cuts the output into parts no larger than req.MaxTokens
// tokens. Exact counting requires rendering plus a tokenizer pass, so the
// algorithm estimates each file cheaply and concurrently first, batches
// greedily by estimate, and pays the exact cost once per committed batch.
//
// Only single-file batches are re-verified exactly after rendering: an
// estimate overshooting is not proof the rendered output will, so an
// oversized single file is deferred to verification rather than failed
// during batching. Multi-file batches rely on the estimate plus overhead
// being conservative.
func splitByTokens(ctx context.Context, req Request) ([]Part, error) {
	if len(req.Files) == 0 {
		return nil, nil
	}

	pool := newEstimatePool(req.Counter, req.Workers)
	defer pool.Close()

	req.progress("estimating tokens for %d files", len(req.Files))
	estimates, err := pool.CountAll(ctx, req.Files)
	if err != nil {
		return nil, err
	}

	var batches [][]File
	var batch []File
	running := 0

	flush := func() {
		if len(batch) > 0 {
			batches = append(batches, batch)
			batch = nil
			running = 0
		}
	}
	for _, f := range req.Files {
		est := estimates[f.Path] + FileTokenOverhead
		switch {
		case est > req.MaxTokens:
			// Alone in its own part, verified exactly below.
			flush()
			batches = append(batches, []File{f})
		case running+est > req.MaxTokens:
			flush()
			batch = []File{f}
			running = est
		default:
			batch = append(batch, f)
			running += est
		}
	}
	flush()

	totalFiles := len(req.Files)
	parts := make([]Part, 0, len(batches))
	for i, b := range batches {
		partNumber := i + 1
		req.progress("rendering part %d/%d (%d files)", partNumber, len(batches), len(b))

		rr := RenderRequest{
			RootDirs: req.RootDirs,
			Files:    b,
			AllPaths: req.AllPaths,
			Position: &Position{
				PartNumber: partNumber,
				TotalParts: len(batches),
				TotalFiles: totalFiles,
			},
		}
		if partNumber == 1 {
			rr.Diff = req.Diff
			rr.Log = req.Log
		}
		content, err := req.Render(ctx, rr)
		if err != nil {
			return nil, fmt.Errorf("render part %d: %w", partNumber, err)
		}
		tokens, err := pool.Count(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("count part %d: %w", partNumber, err)
		}
		if len(b) == 1 && tokens > req.MaxTokens {
			return nil, &TokenError{Path: b[0].Path, Tokens: tokens, Limit: req.MaxTokens}
		}
		parts = append(parts, Part{
			Index:   partNumber,
			Path:    PartPath(req.Output, partNumber),
			Content: content,
			Bytes:   len(content),
			Tokens:  tokens,
		})
	}
	return parts, nil
}
