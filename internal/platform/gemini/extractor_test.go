package gemini

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/phrazzld/glossa-api/internal/config"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestExtractor builds an extractor without an API client; the tests
// below only exercise the prompt and response plumbing.
func newTestExtractor(maxWords int) *GeminiExtractor {
	return &GeminiExtractor{
		logger: slog.Default(),
		config: config.ExtractionConfig{
			GeminiAPIKey:       "test-key",
			ModelName:          "gemini-2.0-flash",
			MaxWordsPerArticle: maxWords,
		},
		model: "gemini-2.0-flash",
	}
}

func TestNewGeminiExtractorValidatesConfig(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name string
		cfg  config.ExtractionConfig
	}{
		{
			name: "missing api key",
			cfg: config.ExtractionConfig{
				ModelName:          "gemini-2.0-flash",
				MaxWordsPerArticle: 20,
			},
		},
		{
			name: "missing model name",
			cfg: config.ExtractionConfig{
				GeminiAPIKey:       "test-key",
				MaxWordsPerArticle: 20,
			},
		},
		{
			name: "non-positive max words",
			cfg: config.ExtractionConfig{
				GeminiAPIKey: "test-key",
				ModelName:    "gemini-2.0-flash",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGeminiExtractor(ctx, slog.Default(), tt.cfg)
			assert.ErrorIs(t, err, generation.ErrInvalidConfig)
		})
	}
}

func TestNewGeminiExtractorRequiresLogger(t *testing.T) {
	t.Parallel()

	_, err := NewGeminiExtractor(context.Background(), nil, config.ExtractionConfig{
		GeminiAPIKey:       "test-key",
		ModelName:          "gemini-2.0-flash",
		MaxWordsPerArticle: 20,
	})
	assert.Error(t, err)
}

func TestCreatePromptEmbedsArticle(t *testing.T) {
	t.Parallel()

	extractor := newTestExtractor(7)

	prompt, err := extractor.createPrompt(context.Background(), "The saturnine clerk shuffled papers.")
	require.NoError(t, err)
	assert.Contains(t, prompt, "The saturnine clerk shuffled papers.")
	assert.Contains(t, prompt, "up to 7 words")
}

func TestCreatePromptRejectsEmptyArticle(t *testing.T) {
	t.Parallel()

	extractor := newTestExtractor(20)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := extractor.createPrompt(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyArticleText)
	}
}

func TestParseResponseMapsWords(t *testing.T) {
	t.Parallel()

	extractor := newTestExtractor(20)

	extract, err := extractor.parseResponse(context.Background(), &responseSchema{
		Title:   " The Long Read ",
		Summary: "An essay.",
		Author:  "A. Writer",
		Words: []wordSchema{
			{Word: " Saturnine ", Pronunciation: "/ˈsætərnaɪn/", Meaning: "gloomy", Context: "The saturnine clerk.", Tier: "c2"},
			{Word: "perfidious", Meaning: "treacherous", Tier: "C1"},
			{Word: "obdurate", Meaning: "stubborn", Tier: "B2"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "The Long Read", extract.Title)
	require.Len(t, extract.Words, 3)
	assert.Equal(t, "saturnine", extract.Words[0].Word, "words are normalized to lowercase")
	assert.Equal(t, domain.TierC2, extract.Words[0].Tier)
	assert.Equal(t, domain.TierC1, extract.Words[1].Tier)
	assert.Equal(t, domain.TierC1, extract.Words[2].Tier, "unknown tiers default to C1")
}

func TestParseResponseTruncatesToMaxWords(t *testing.T) {
	t.Parallel()

	extractor := newTestExtractor(2)

	words := make([]wordSchema, 5)
	for i := range words {
		words[i] = wordSchema{Word: strings.Repeat("a", i+1), Meaning: "m"}
	}

	extract, err := extractor.parseResponse(context.Background(), &responseSchema{
		Title: "T",
		Words: words,
	})
	require.NoError(t, err)
	assert.Len(t, extract.Words, 2)
}

func TestParseResponseDropsBlankWords(t *testing.T) {
	t.Parallel()

	extractor := newTestExtractor(20)

	extract, err := extractor.parseResponse(context.Background(), &responseSchema{
		Title: "T",
		Words: []wordSchema{
			{Word: "   ", Meaning: "blank"},
			{Word: "saturnine", Meaning: "gloomy"},
		},
	})
	require.NoError(t, err)
	require.Len(t, extract.Words, 1)
	assert.Equal(t, "saturnine", extract.Words[0].Word)
}

func TestParseResponseRejectsEmpty(t *testing.T) {
	t.Parallel()

	extractor := newTestExtractor(20)
	ctx := context.Background()

	_, err := extractor.parseResponse(ctx, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	_, err = extractor.parseResponse(ctx, &responseSchema{Title: "T"})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)

	// Only blank words is as empty as no words.
	_, err = extractor.parseResponse(ctx, &responseSchema{
		Title: "T",
		Words: []wordSchema{{Word: "  "}},
	})
	assert.ErrorIs(t, err, generation.ErrInvalidResponse)
}
