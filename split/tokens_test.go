package split

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/packkit/gitmeta"
)

// lenCounter counts one token per byte, making exact counts predictable.
type lenCounter struct{}

func (lenCounter) Count(_ context.Context, text string) (int, error) {
	return len(text), nil
}

// failingCounter fails for one specific content string.
type failingCounter struct {
	failOn string
	err    error
}

func (c failingCounter) Count(_ context.Context, text string) (int, error) {
	if text == c.failOn {
		return 0, c.err
	}
	return len(text), nil
}

func TestSplitByTokens_OneFilePerPart(t *testing.T) {
	// Scenario: three files estimated at 60 tokens each, +20 overhead = 80,
	// budget 100. Any two together (160) exceed the budget.
	files := []File{
		{Path: "a/1.ts", Content: strings.Repeat("a", 60)},
		{Path: "b/2.ts", Content: strings.Repeat("b", 60)},
		{Path: "c/3.ts", Content: strings.Repeat("c", 60)},
	}
	parts, err := Split(context.Background(), Request{
		Output:    "out.xml",
		Files:     files,
		AllPaths:  []string{"a/1.ts", "b/2.ts", "c/3.ts"},
		MaxTokens: 100,
		Counter:   lenCounter{},
		Render:    concatRenderer(nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	for i, p := range parts {
		if p.Index != i+1 {
			t.Errorf("part %d Index = %d", i, p.Index)
		}
		if p.Tokens != 60 {
			t.Errorf("part %d Tokens = %d, expected 60", i+1, p.Tokens)
		}
		if p.Tokens > 100 {
			t.Errorf("part %d over budget", i+1)
		}
	}
	if parts[0].Content != files[0].Content || parts[2].Content != files[2].Content {
		t.Errorf("parts out of order")
	}
}

func TestSplitByTokens_BatchesSmallFiles(t *testing.T) {
	// Two 30-token files (+20 overhead each = 100 total) fit one part.
	files := []File{
		{Path: "a/1", Content: strings.Repeat("a", 30)},
		{Path: "a/2", Content: strings.Repeat("b", 30)},
		{Path: "a/3", Content: strings.Repeat("c", 30)},
	}
	parts, err := Split(context.Background(), Request{
		Output:    "out.xml",
		Files:     files,
		AllPaths:  []string{"a/1", "a/2", "a/3"},
		MaxTokens: 100,
		Counter:   lenCounter{},
		Render:    concatRenderer(nil),
	})
	if err != nil {
		t.Fatal(err)
	}

	// 50 + 50 = 100 fits; adding the third (150) does not.
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Content != strings.Repeat("a", 30)+strings.Repeat("b", 30) {
		t.Errorf("part 1 content = %q", parts[0].Content)
	}
	if parts[1].Content != strings.Repeat("c", 30) {
		t.Errorf("part 2 content = %q", parts[1].Content)
	}
}

func TestSplitByTokens_SingleFileOverBudget(t *testing.T) {
	// Scenario: one file whose exact rendered count is 200, budget 100.
	parts, err := Split(context.Background(), Request{
		Output:    "out.xml",
		Files:     []File{{Path: "src/huge.ts", Content: strings.Repeat("x", 200)}},
		AllPaths:  []string{"src/huge.ts"},
		MaxTokens: 100,
		Counter:   lenCounter{},
		Render:    concatRenderer(nil),
	})
	if !errors.Is(err, ErrExceedsMaxTokens) {
		t.Fatalf("expected ErrExceedsMaxTokens, got %v", err)
	}
	var tokenErr *TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected *TokenError, got %T", err)
	}
	if tokenErr.Path != "src/huge.ts" {
		t.Errorf("Path = %q", tokenErr.Path)
	}
	if tokenErr.Tokens != 200 || tokenErr.Limit != 100 {
		t.Errorf("Tokens/Limit = %d/%d, expected 200/100", tokenErr.Tokens, tokenErr.Limit)
	}
	if parts != nil {
		t.Errorf("expected no parts on failure, got %d", len(parts))
	}
}

func TestSplitByTokens_OversizedEstimateMayStillFit(t *testing.T) {
	// The estimate plus overhead overshoots the budget, but the exact
	// rendered count does not: the part is committed, not failed.
	files := []File{{Path: "a/edge", Content: strings.Repeat("x", 90)}} // est 90+20=110
	parts, err := Split(context.Background(), Request{
		Output:    "out.xml",
		Files:     files,
		AllPaths:  []string{"a/edge"},
		MaxTokens: 100,
		Counter:   lenCounter{},
		Render:    concatRenderer(nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 || parts[0].Tokens != 90 {
		t.Fatalf("parts = %+v", parts)
	}
}

func TestSplitByTokens_MultiFileBatchNotReverified(t *testing.T) {
	// A renderer can add overhead the estimate did not see. Multi-file
	// batches are bounded by the estimate only, so the part is still
	// committed even though its exact count ends up over budget.
	pad := strings.Repeat("!", 80)
	render := func(_ context.Context, req RenderRequest) (string, error) {
		var sb strings.Builder
		for _, f := range req.Files {
			sb.WriteString(f.Content)
		}
		sb.WriteString(pad)
		return sb.String(), nil
	}
	files := []File{
		{Path: "a/1", Content: strings.Repeat("a", 30)},
		{Path: "a/2", Content: strings.Repeat("b", 30)},
	}
	parts, err := Split(context.Background(), Request{
		Output:    "out.xml",
		Files:     files,
		AllPaths:  []string{"a/1", "a/2"},
		MaxTokens: 100,
		Counter:   lenCounter{},
		Render:    render,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].Tokens != 140 {
		t.Errorf("Tokens = %d, expected 140 (60 content + 80 markup)", parts[0].Tokens)
	}
}

func TestSplitByTokens_EstimateFailureAborts(t *testing.T) {
	boom := errors.New("tokenizer backend down")
	parts, err := Split(context.Background(), Request{
		Output: "out.xml",
		Files: []File{
			{Path: "a/ok", Content: "fine"},
			{Path: "a/bad", Content: "poison"},
		},
		AllPaths:  []string{"a/ok", "a/bad"},
		MaxTokens: 100,
		Counter:   failingCounter{failOn: "poison", err: boom},
		Render:    concatRenderer(nil),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected counter error, got %v", err)
	}
	if !strings.Contains(err.Error(), "a/bad") {
		t.Errorf("error %q does not name the failing path", err)
	}
	if parts != nil {
		t.Errorf("expected no parts, got %d", len(parts))
	}
}

func TestSplitByTokens_FirstPartOnlyCarriesGitContext(t *testing.T) {
	var calls []RenderRequest
	files := []File{
		{Path: "a/1", Content: strings.Repeat("a", 70)},
		{Path: "b/2", Content: strings.Repeat("b", 70)},
	}
	_, err := Split(context.Background(), Request{
		Output:    "out.xml",
		Files:     files,
		AllPaths:  []string{"a/1", "b/2"},
		MaxTokens: 100,
		Counter:   lenCounter{},
		Diff:      &gitmeta.Diff{WorkTree: "d"},
		Render:    concatRenderer(&calls),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 2 {
		t.Fatalf("expected 2 render calls, got %d", len(calls))
	}
	if calls[0].Diff == nil {
		t.Errorf("part 1 render missing diff")
	}
	if calls[1].Diff != nil {
		t.Errorf("part 2 render carries diff")
	}
	// Token mode knows the exact batch count up front.
	for _, call := range calls {
		if call.Position.TotalParts != 2 {
			t.Errorf("TotalParts = %d, expected 2", call.Position.TotalParts)
		}
	}
}
