package domain

import (
	"errors"
	"strings"
)

// Candidate-specific validation errors
var (
	// ErrCandidateWordEmpty is returned when a candidate's word is empty.
	ErrCandidateWordEmpty = errors.New("candidate word cannot be empty")

	// ErrExtractEmpty is returned when an article extract contains no
	// candidate words.
	ErrExtractEmpty = errors.New("article extract contains no candidate words")
)

// CandidateWord is a single vocabulary entry proposed by the extraction
// pipeline. It carries only content; scheduling state is attached when
// the candidate is accepted into a user's card set.
type CandidateWord struct {
	Word          string         `json:"word"`
	Pronunciation string         `json:"pronunciation"`
	Meaning       string         `json:"meaning"`
	Context       string         `json:"context"`
	Tier          DifficultyTier `json:"tier"`
}

// Validate checks if the CandidateWord has valid data.
func (w *CandidateWord) Validate() error {
	if strings.TrimSpace(w.Word) == "" {
		return ErrCandidateWordEmpty
	}
	return nil
}

// ArticleExtract is the batch output shape of the extraction pipeline:
// article-level metadata plus the candidate words mined from its text.
// The scheduling core only consumes the word-level fields; the article
// metadata feeds the cards' source label.
type ArticleExtract struct {
	Title   string          `json:"title"`
	Summary string          `json:"summary"`
	Author  string          `json:"author"`
	Words   []CandidateWord `json:"words"`
}

// Validate checks if the ArticleExtract has valid data.
func (e *ArticleExtract) Validate() error {
	if len(e.Words) == 0 {
		return ErrExtractEmpty
	}
	for i := range e.Words {
		if err := e.Words[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SourceLabel returns the label recorded on cards accepted from this
// extract. Falls back to "manual" when the article has no title.
func (e *ArticleExtract) SourceLabel() string {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return "manual"
	}
	return title
}
