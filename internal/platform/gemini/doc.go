// Package gemini implements the generation.Extractor interface using
// Google's Gemini API. It prompts the model to mine advanced vocabulary
// from article text and maps the structured JSON reply onto domain
// candidate words.
//
// The extractor retries transient API failures with exponential backoff
// and jitter; malformed responses and safety blocks are permanent and
// reported immediately.
package gemini
