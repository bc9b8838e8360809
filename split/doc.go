// Package split decides where a packed repository document is cut into parts.
//
// A pack that exceeds a consumer's input budget must be emitted as several
// parts, each within the budget. The budget is expressed either in rendered
// bytes or in tokens of a specific encoding; the two modes use different
// strategies because measuring them costs different amounts:
//
//   - Byte mode renders trial documents and backtracks, because structural
//     overhead (headers, wrapping markup, the directory tree) is unknown
//     until rendered. The atomic unit is a root-entry group: all files under
//     one top-level path segment stay together.
//   - Token mode pre-estimates every file concurrently, batches greedily by
//     estimate, then renders each committed batch once and verifies its
//     exact token count. The atomic unit is a single file.
//
// Both strategies are greedy and order-preserving: parts correspond to
// contiguous runs of the input, and identical inputs always produce
// identical boundaries. Neither attempts minimum-part-count bin packing.
//
// The renderer and token counter are collaborators supplied by the caller;
// see the render and tokenizer packages for the stock implementations.
//
//	parts, err := split.Split(ctx, split.Request{
//	    RootDirs:  []string{"."},
//	    Output:    "pack.xml",
//	    Files:     files,
//	    AllPaths:  allPaths,
//	    MaxTokens: 100000,
//	    Counter:   counter,
//	    Render:    renderer.Render,
//	})
package split
