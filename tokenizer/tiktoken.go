package tokenizer

import (
	"context"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding used when none is configured.
const DefaultEncoding = "o200k_base"

// Tiktoken counts tokens exactly using a tiktoken BPE encoding.
// Construction resolves the encoding once; counting itself cannot fail.
type Tiktoken struct {
	enc      *tiktoken.Tiktoken
	encoding string
}

// NewTiktoken creates an exact counter for the named encoding.
// An empty name selects DefaultEncoding.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding %q: %w", encoding, err)
	}
	return &Tiktoken{enc: enc, encoding: encoding}, nil
}

// Encoding returns the encoding name this counter uses.
func (t *Tiktoken) Encoding() string {
	return t.encoding
}

// Count implements the split.TokenCounter contract. It honors context
// cancellation between calls but does not interrupt an in-flight encode.
func (t *Tiktoken) Count(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(t.enc.Encode(text, nil, nil)), nil
}

// ModelEncodings maps common model names to their tiktoken encoding.
var ModelEncodings = map[string]string{
	// OpenAI o200k models
	"gpt-4o":      "o200k_base",
	"gpt-4o-mini": "o200k_base",
	"o1":          "o200k_base",
	"o3":          "o200k_base",

	// OpenAI cl100k models
	"gpt-4":         "cl100k_base",
	"gpt-4-turbo":   "cl100k_base",
	"gpt-3.5-turbo": "cl100k_base",

	// Claude has no public tokenizer; cl100k_base is a close approximation.
	"claude-opus-4":     "cl100k_base",
	"claude-sonnet-4":   "cl100k_base",
	"claude-3.5-sonnet": "cl100k_base",
	"claude-3.5-haiku":  "cl100k_base",
}

// EncodingForModel returns the encoding for a model, or DefaultEncoding if
// the model is unknown.
func EncodingForModel(model string) string {
	if enc, ok := ModelEncodings[model]; ok {
		return enc
	}
	return DefaultEncoding
}
