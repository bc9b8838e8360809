// Package scan discovers and loads the files to pack.
//
// A Scanner walks one or more root directories, applies ignore rules
// (a built-in default set, the root's .gitignore, and caller-supplied
// patterns, all in gitignore syntax), and loads file contents concurrently.
// Binary and oversized files stay visible in the result's path listing but
// are not loaded for embedding.
//
//	scanner := scan.New(scan.WithIgnore("testdata/"))
//	result, err := scanner.Scan(ctx, ".")
//
// Results are deterministic: paths and files are ordered lexicographically
// regardless of filesystem iteration order.
package scan
