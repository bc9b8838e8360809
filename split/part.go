package split

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Part is one committed, budget-compliant output artifact. Parts are
// append-only: once returned they are never mutated or merged.
type Part struct {
	// Index is the 1-based sequence number of the part.
	Index int

	// Path is the output file path, derived from the base output path by
	// PartPath.
	Path string

	// Content is the complete rendered document for this part.
	Content string

	// Bytes is the content length in UTF-8 bytes.
	Bytes int

	// Tokens is the exact token count of the content. Zero when the split
	// ran in byte mode and no token counting was performed.
	Tokens int

	// Groups names the root-entry groups embedded in this part. Empty in
	// token mode, which batches individual files rather than groups.
	Groups []string
}

// Position locates one part within the whole split for rendering purposes.
type Position struct {
	// PartNumber is the 1-based index of the part being rendered.
	PartNumber int

	// TotalParts is the number of parts in the whole split. During byte-mode
	// trial renders this is a provisional upper bound (the group count), not
	// necessarily the final committed count.
	TotalParts int

	// TotalFiles is the number of selected files across the whole split.
	TotalFiles int
}

// String renders the position as a human-readable note.
func (p Position) String() string {
	return fmt.Sprintf("part %d of %d (%d files total)", p.PartNumber, p.TotalParts, p.TotalFiles)
}

// PartPath derives the output path for one part by inserting the 1-based
// index before the file extension, or appending it when there is none:
//
//	PartPath("out.xml", 2) == "out.2.xml"
//	PartPath("out", 2)     == "out.2"
func PartPath(base string, index int) string {
	ext := filepath.Ext(base)
	if ext == "" {
		return fmt.Sprintf("%s.%d", base, index)
	}
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s.%d%s", stem, index, ext)
}
