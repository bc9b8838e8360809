// Package packkit merges a codebase into AI-friendly documents that respect
// an input-size budget.
//
// packkit is organized as independently usable subpackages:
//
//   - scan: file discovery with gitignore semantics and binary detection
//   - render: XML, Markdown, and plain-text document rendering
//   - tokenizer: estimated and exact (tiktoken) token counting
//   - split: the budget-aware output-splitting engine
//   - gitmeta: git diff and commit log retrieval
//   - config: configuration model, file loading, JSON schema
//
// # Quick Start
//
// Pack a repository into token-budgeted parts:
//
//	result, _ := scan.New().Scan(ctx, ".")
//	renderer, _ := render.New(render.WithStyle(render.Markdown))
//	counter, _ := tokenizer.NewTiktoken(tokenizer.DefaultEncoding)
//	parts, err := split.Split(ctx, split.Request{
//	    RootDirs:  []string{"."},
//	    Output:    "pack.md",
//	    Files:     result.Files,
//	    AllPaths:  result.AllPaths,
//	    MaxTokens: 100000,
//	    Counter:   counter,
//	    Render:    renderer.Render,
//	})
//
// The packkit command under cmd/packkit wires these together behind flags
// and a configuration file.
//
// # Design Philosophy
//
//   - Deterministic output: identical inputs produce identical documents
//     and identical part boundaries
//   - Greedy, order-preserving splitting: parts map to contiguous runs of
//     the source tree, never reordered to minimize part count
//   - Interfaces for collaborators, concrete types for data
package packkit
