package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/phrazzld/glossa-api/internal/config"
	"github.com/phrazzld/glossa-api/internal/domain"
	"github.com/phrazzld/glossa-api/internal/generation"
	"google.golang.org/genai"
)

// Retry policy for transient API failures.
const (
	maxRetries       = 3
	baseDelaySeconds = 2
)

// GeminiExtractor implements the generation.Extractor interface using
// Google's Gemini API to mine candidate vocabulary from article text.
type GeminiExtractor struct {
	logger *slog.Logger
	config config.ExtractionConfig
	client *genai.Client
	model  string
}

// Ensure GeminiExtractor implements the Extractor interface
var _ generation.Extractor = (*GeminiExtractor)(nil)

// NewGeminiExtractor creates a new GeminiExtractor with the provided
// dependencies, validating the configuration and initializing the API
// client.
func NewGeminiExtractor(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.ExtractionConfig,
) (*GeminiExtractor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxWordsPerArticle <= 0 {
		return nil, fmt.Errorf("%w: max words per article must be positive", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &GeminiExtractor{
		logger: logger.With(slog.String("component", "gemini_extractor")),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// ExtractWords implements generation.Extractor.
func (g *GeminiExtractor) ExtractWords(
	ctx context.Context,
	articleText string,
) (*domain.ArticleExtract, error) {
	prompt, err := g.createPrompt(ctx, articleText)
	if err != nil {
		return nil, err
	}

	response, err := g.callGeminiWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return g.parseResponse(ctx, response)
}

// createPrompt renders the extraction prompt for the given article text.
func (g *GeminiExtractor) createPrompt(ctx context.Context, articleText string) (string, error) {
	if strings.TrimSpace(articleText) == "" {
		return "", ErrEmptyArticleText
	}

	var buf bytes.Buffer
	err := extractionPrompt.Execute(&buf, promptData{
		ArticleText: articleText,
		MaxWords:    g.config.MaxWordsPerArticle,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}

	g.logger.DebugContext(ctx, "extraction prompt generated",
		"article_length", len(articleText),
		"prompt_length", buf.Len())
	return buf.String(), nil
}

// callGeminiWithRetry calls the Gemini API with exponential backoff and
// jitter for transient errors. Safety blocks and malformed responses are
// permanent and returned immediately.
func (g *GeminiExtractor) callGeminiWithRetry(
	ctx context.Context,
	prompt string,
) (*responseSchema, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1,
			"model", g.model)

		response, transient, err := g.callGemini(ctx, prompt)
		if err == nil {
			return response, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if !transient {
			return nil, err
		}

		if attempt >= maxRetries {
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = baseDelay * 2^attempt * jitter, jitter in [0.5, 1.0)
		backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delaySeconds := backoffSeconds * (0.5 + rng.Float64()*0.5)
		delay := time.Duration(delaySeconds * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt+1,
			"delay_seconds", delaySeconds)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callGemini makes a single API call and classifies any failure as
// transient (retryable) or permanent.
func (g *GeminiExtractor) callGemini(
	ctx context.Context,
	prompt string,
) (*responseSchema, bool, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
	if err != nil {
		// Network and server errors are assumed transient.
		return nil, true, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, false, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, false, fmt.Errorf("%w: article rejected by safety filters", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return nil, false, fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, false, fmt.Errorf("%w: failed to parse JSON response: %v",
			generation.ErrInvalidResponse, err)
	}

	return &parsed, false, nil
}

// parseResponse converts the model's reply into a domain.ArticleExtract,
// normalizing words and dropping entries the domain would reject. The
// word count is capped at the configured maximum.
func (g *GeminiExtractor) parseResponse(
	ctx context.Context,
	response *responseSchema,
) (*domain.ArticleExtract, error) {
	if response == nil {
		return nil, fmt.Errorf("%w: response is nil", generation.ErrInvalidResponse)
	}

	if len(response.Words) == 0 {
		return nil, fmt.Errorf("%w: no words in response", generation.ErrInvalidResponse)
	}

	words := make([]domain.CandidateWord, 0, len(response.Words))
	for _, w := range response.Words {
		if len(words) == g.config.MaxWordsPerArticle {
			g.logger.WarnContext(ctx, "truncating extract to configured maximum",
				"returned", len(response.Words),
				"max", g.config.MaxWordsPerArticle)
			break
		}

		word := strings.ToLower(strings.TrimSpace(w.Word))
		if word == "" {
			continue
		}

		words = append(words, domain.CandidateWord{
			Word:          word,
			Pronunciation: strings.TrimSpace(w.Pronunciation),
			Meaning:       strings.TrimSpace(w.Meaning),
			Context:       strings.TrimSpace(w.Context),
			Tier:          parseTier(w.Tier),
		})
	}

	extract := &domain.ArticleExtract{
		Title:   strings.TrimSpace(response.Title),
		Summary: strings.TrimSpace(response.Summary),
		Author:  strings.TrimSpace(response.Author),
		Words:   words,
	}

	if err := extract.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
	}

	g.logger.InfoContext(ctx, "parsed extraction response",
		"title", extract.Title,
		"word_count", len(extract.Words))
	return extract, nil
}

// parseTier maps the model's tier string onto a DifficultyTier,
// defaulting to C1 for anything unrecognized.
func parseTier(tier string) domain.DifficultyTier {
	if strings.EqualFold(strings.TrimSpace(tier), string(domain.TierC2)) {
		return domain.TierC2
	}
	return domain.TierC1
}
