package generation

import (
	"context"

	"github.com/phrazzld/glossa-api/internal/domain"
)

// Extractor defines the interface for mining candidate vocabulary from
// article text. This interface serves as a boundary between the
// application core and external AI/LLM services; the core never talks
// to a model directly.
type Extractor interface {
	// ExtractWords analyzes the provided article text and returns an
	// extract holding the article metadata and the candidate words found
	// in it. The candidates carry content only; scheduling state is
	// attached later when a user accepts them.
	//
	// Returns an error from errors.go if extraction fails; transient
	// failures are retried internally before being reported.
	ExtractWords(ctx context.Context, articleText string) (*domain.ArticleExtract, error)
}
