package split

import (
	"errors"
	"fmt"
)

// Sentinel errors for split operations.
var (
	// ErrInvalidBudget indicates a negative byte or token budget.
	ErrInvalidBudget = errors.New("budget must be a positive integer")

	// ErrExceedsMaxSize indicates a root-entry group that cannot fit the
	// byte budget even when rendered alone.
	ErrExceedsMaxSize = errors.New("exceeds max size")

	// ErrExceedsMaxTokens indicates a single file whose rendered output
	// alone exceeds the token budget.
	ErrExceedsMaxTokens = errors.New("exceeds max tokens")

	// ErrDuplicatePath indicates the same relative path appears twice in
	// the input file set.
	ErrDuplicatePath = errors.New("duplicate file path")

	// ErrPoolClosed indicates use of an estimate pool after release.
	ErrPoolClosed = errors.New("estimate pool is closed")
)

// SizeError reports a root-entry group too large for the byte budget.
type SizeError struct {
	Entry string // offending root entry
	Size  int    // rendered size in bytes
	Limit int    // configured byte budget
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("entry %q exceeds max size: %d > %d bytes; it cannot be split further", e.Entry, e.Size, e.Limit)
}

// Unwrap returns ErrExceedsMaxSize for errors.Is support.
func (e *SizeError) Unwrap() error {
	return ErrExceedsMaxSize
}

// TokenError reports a single file too large for the token budget.
type TokenError struct {
	Path   string // offending file path
	Tokens int    // exact rendered token count
	Limit  int    // configured token budget
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	return fmt.Sprintf("file %q exceeds max tokens: %d > %d tokens; it cannot be split further", e.Path, e.Tokens, e.Limit)
}

// Unwrap returns ErrExceedsMaxTokens for errors.Is support.
func (e *TokenError) Unwrap() error {
	return ErrExceedsMaxTokens
}
