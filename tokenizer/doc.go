// Package tokenizer provides token counting for pack budgeting.
//
// Two counters are available with different cost/accuracy tradeoffs:
//
//   - EstimatingCounter uses a character-to-token ratio (~4 chars per token
//     for English text). Fast, dependency-free, suitable for the concurrent
//     per-file pre-estimates that guide part boundaries.
//   - Tiktoken wraps the tiktoken BPE encodings (o200k_base, cl100k_base)
//     for exact counts, used to verify committed parts against the budget.
//
// Both satisfy the split.TokenCounter contract:
//
//	counter, err := tokenizer.NewTiktoken(tokenizer.DefaultEncoding)
//	n, err := counter.Count(ctx, text)
//
// EncodingForModel maps common model names to their encoding.
package tokenizer
