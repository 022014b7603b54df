package gemini

import "errors"

// ErrEmptyArticleText is returned when extraction is requested for an
// article with no text.
var ErrEmptyArticleText = errors.New("article text cannot be empty")
