package split

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/packkit/gitmeta"
)

// concatRenderer renders a document as the bare concatenation of file
// contents plus any diff/log text, so byte sizes are fully predictable.
// Captured requests allow asserting what the engine passed in.
func concatRenderer(calls *[]RenderRequest) RenderFunc {
	return func(_ context.Context, req RenderRequest) (string, error) {
		if calls != nil {
			*calls = append(*calls, req)
		}
		var sb strings.Builder
		for _, f := range req.Files {
			sb.WriteString(f.Content)
		}
		if req.Diff != nil {
			sb.WriteString(req.Diff.WorkTree)
			sb.WriteString(req.Diff.Staged)
		}
		if req.Log != nil {
			for _, c := range req.Log.Commits {
				sb.WriteString(c.Message)
			}
		}
		return sb.String(), nil
	}
}

func TestSplitByBytes_TwoParts(t *testing.T) {
	// Scenario: src renders to 50 bytes alone, src+tests to 100, budget 70.
	files := []File{
		{Path: "src/a.ts", Content: strings.Repeat("a", 50)},
		{Path: "tests/test.ts", Content: strings.Repeat("b", 50)},
	}
	parts, err := Split(context.Background(), Request{
		Output:   "out.xml",
		Files:    files,
		AllPaths: []string{"src/a.ts", "tests/test.ts"},
		MaxBytes: 70,
		Render:   concatRenderer(nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Content != strings.Repeat("a", 50) {
		t.Errorf("part 1 content = %q", parts[0].Content)
	}
	if parts[1].Content != strings.Repeat("b", 50) {
		t.Errorf("part 2 content = %q", parts[1].Content)
	}
	if parts[0].Path != "out.1.xml" || parts[1].Path != "out.2.xml" {
		t.Errorf("part paths = %q, %q", parts[0].Path, parts[1].Path)
	}
	for _, p := range parts {
		if p.Bytes > 70 {
			t.Errorf("part %d is %d bytes, over budget", p.Index, p.Bytes)
		}
		if p.Tokens != 0 {
			t.Errorf("part %d Tokens = %d, expected 0 in byte mode", p.Index, p.Tokens)
		}
	}
	if len(parts[0].Groups) != 1 || parts[0].Groups[0] != "src" {
		t.Errorf("part 1 groups = %v", parts[0].Groups)
	}
}

func TestSplitByBytes_AccumulatesWhileFitting(t *testing.T) {
	files := []File{
		{Path: "a/x", Content: strings.Repeat("x", 20)},
		{Path: "b/y", Content: strings.Repeat("y", 20)},
		{Path: "c/z", Content: strings.Repeat("z", 20)},
	}
	parts, err := Split(context.Background(), Request{
		Output:   "out.xml",
		Files:    files,
		AllPaths: []string{"a/x", "b/y", "c/z"},
		MaxBytes: 45,
		Render:   concatRenderer(nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	// a+b fits (40), a+b+c does not (60): close, c alone starts part 2.
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if got := parts[0].Groups; len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("part 1 groups = %v", got)
	}
	if got := parts[1].Groups; len(got) != 1 || got[0] != "c" {
		t.Errorf("part 2 groups = %v", got)
	}
}

func TestSplitByBytes_GroupTooLarge(t *testing.T) {
	tests := []struct {
		name  string
		files []File
		entry string
	}{
		{
			name:  "first group oversized",
			files: []File{{Path: "src/big.ts", Content: strings.Repeat("x", 100)}},
			entry: "src",
		},
		{
			name: "later group oversized",
			files: []File{
				{Path: "a/small", Content: strings.Repeat("x", 10)},
				{Path: "b/big", Content: strings.Repeat("y", 100)},
			},
			entry: "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var allPaths []string
			for _, f := range tt.files {
				allPaths = append(allPaths, f.Path)
			}
			parts, err := Split(context.Background(), Request{
				Output:   "out.xml",
				Files:    tt.files,
				AllPaths: allPaths,
				MaxBytes: 70,
				Render:   concatRenderer(nil),
			})
			if !errors.Is(err, ErrExceedsMaxSize) {
				t.Fatalf("expected ErrExceedsMaxSize, got %v", err)
			}
			var sizeErr *SizeError
			if !errors.As(err, &sizeErr) {
				t.Fatalf("expected *SizeError, got %T", err)
			}
			if sizeErr.Entry != tt.entry {
				t.Errorf("Entry = %q, expected %q", sizeErr.Entry, tt.entry)
			}
			if sizeErr.Size != 100 || sizeErr.Limit != 70 {
				t.Errorf("Size/Limit = %d/%d, expected 100/70", sizeErr.Size, sizeErr.Limit)
			}
			if parts != nil {
				t.Errorf("expected no parts on failure, got %d", len(parts))
			}
		})
	}
}

func TestSplitByBytes_FirstPartOnlyCarriesGitContext(t *testing.T) {
	var calls []RenderRequest
	files := []File{
		{Path: "a/x", Content: strings.Repeat("x", 50)},
		{Path: "b/y", Content: strings.Repeat("y", 50)},
	}
	_, err := Split(context.Background(), Request{
		Output:   "out.xml",
		Files:    files,
		AllPaths: []string{"a/x", "b/y"},
		MaxBytes: 60,
		Diff:     &gitmeta.Diff{WorkTree: "d"},
		Log:      &gitmeta.Log{Commits: []gitmeta.Commit{{Message: "m"}}},
		Render:   concatRenderer(&calls),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(calls) == 0 {
		t.Fatal("renderer was never called")
	}
	for _, call := range calls {
		if call.Position == nil {
			t.Fatal("Position is nil")
		}
		if call.Position.PartNumber == 1 {
			if call.Diff == nil || call.Log == nil {
				t.Errorf("part 1 render missing diff/log")
			}
		} else {
			if call.Diff != nil || call.Log != nil {
				t.Errorf("part %d render carries diff/log", call.Position.PartNumber)
			}
		}
	}
}

func TestSplitByBytes_ProvisionalTotalIsGroupCount(t *testing.T) {
	var calls []RenderRequest
	files := []File{
		{Path: "a/x", Content: "1"},
		{Path: "b/y", Content: "2"},
		{Path: "c/z", Content: "3"},
	}
	_, err := Split(context.Background(), Request{
		Output:   "out.xml",
		Files:    files,
		AllPaths: []string{"a/x", "b/y", "c/z"},
		MaxBytes: 100,
		Render:   concatRenderer(&calls),
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, call := range calls {
		if call.Position.TotalParts != 3 {
			t.Errorf("TotalParts = %d, expected provisional group count 3", call.Position.TotalParts)
		}
		if call.Position.TotalFiles != 3 {
			t.Errorf("TotalFiles = %d, expected 3", call.Position.TotalFiles)
		}
	}
}

func TestSplitByBytes_PreservesFileOrder(t *testing.T) {
	var files []File
	var allPaths []string
	contents := []string{"aa/1|", "aa/2|", "bb/1|", "cc/1|", "cc/2|"}
	for _, p := range contents {
		path := strings.TrimSuffix(p, "|")
		files = append(files, File{Path: path, Content: p})
		allPaths = append(allPaths, path)
	}

	parts, err := Split(context.Background(), Request{
		Output:   "out.xml",
		Files:    files,
		AllPaths: allPaths,
		MaxBytes: 12,
		Render:   concatRenderer(nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	var combined strings.Builder
	for _, p := range parts {
		combined.WriteString(p.Content)
	}
	if combined.String() != strings.Join(contents, "") {
		t.Errorf("concatenated parts = %q, expected full input in order", combined.String())
	}
}

func TestSplitByBytes_RendererErrorPropagates(t *testing.T) {
	boom := errors.New("malformed input")
	parts, err := Split(context.Background(), Request{
		Output:   "out.xml",
		Files:    []File{{Path: "a/x", Content: "x"}},
		AllPaths: []string{"a/x"},
		MaxBytes: 100,
		Render: func(context.Context, RenderRequest) (string, error) {
			return "", boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected renderer error, got %v", err)
	}
	if parts != nil {
		t.Errorf("expected no parts, got %d", len(parts))
	}
}
