package split

import (
	"context"
	"fmt"
)

// splitByBytes cuts the output into parts no larger than req.MaxBytes
// rendered bytes. The atomic unit is a root-entry group; structural overhead
// is unknown until rendered, so each candidate boundary is decided by
// rendering a trial document and measuring it.
//
// The loop keeps two states: a committed accumulator of groups known to fit,
// and the trial extension of it by the next group. An oversized trial closes
// the accumulator as a finished part and retries the candidate group alone;
// a group oversized on its own is a hard error, since the engine never
// splits inside a group.
func splitByBytes(ctx context.Context, req Request) ([]Part, error) {
	groups := GroupByRootEntry(req.AllPaths, req.Files)
	if len(groups) == 0 {
		return nil, nil
	}

	// TotalParts is a provisional upper bound here: the final committed
	// count is unknown until the loop finishes.
	provisionalTotal := len(groups)
	totalFiles := len(req.Files)

	renderGroups := func(ctx context.Context, gs []Group, partNumber int) (string, error) {
		var files []File
		for _, g := range gs {
			files = append(files, g.Files...)
		}
		rr := RenderRequest{
			RootDirs: req.RootDirs,
			Files:    files,
			AllPaths: req.AllPaths,
			Position: &Position{
				PartNumber: partNumber,
				TotalParts: provisionalTotal,
				TotalFiles: totalFiles,
			},
		}
		// Only the first part carries diff/log context.
		if partNumber == 1 {
			rr.Diff = req.Diff
			rr.Log = req.Log
		}
		return req.Render(ctx, rr)
	}

	var parts []Part
	var committed []Group
	var committedContent string
	partNumber := 1

	closePart := func() {
		names := make([]string, len(committed))
		for i, g := range committed {
			names[i] = g.Name
		}
		parts = append(parts, Part{
			Index:   partNumber,
			Path:    PartPath(req.Output, partNumber),
			Content: committedContent,
			Bytes:   len(committedContent),
			Groups:  names,
		})
		req.progress("part %d closed: %d bytes (%d groups)", partNumber, len(committedContent), len(committed))
		partNumber++
		committed = nil
		committedContent = ""
	}

	for i, g := range groups {
		req.progress("measuring %s (group %d/%d) against part %d", g.Name, i+1, len(groups), partNumber)

		trial := append(append([]Group(nil), committed...), g)
		content, err := renderGroups(ctx, trial, partNumber)
		if err != nil {
			return nil, fmt.Errorf("render part %d: %w", partNumber, err)
		}
		if len(content) <= req.MaxBytes {
			committed = trial
			committedContent = content
			continue
		}

		if len(committed) == 0 {
			return nil, &SizeError{Entry: g.Name, Size: len(content), Limit: req.MaxBytes}
		}
		closePart()

		content, err = renderGroups(ctx, []Group{g}, partNumber)
		if err != nil {
			return nil, fmt.Errorf("render part %d: %w", partNumber, err)
		}
		if len(content) > req.MaxBytes {
			return nil, &SizeError{Entry: g.Name, Size: len(content), Limit: req.MaxBytes}
		}
		committed = []Group{g}
		committedContent = content
	}

	if len(committed) > 0 {
		closePart()
	}
	return parts, nil
}
