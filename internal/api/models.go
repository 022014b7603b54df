package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/glossa-api/internal/domain"
)

// Common request/response structures. Timestamps travel as epoch
// milliseconds so every device agrees on ordering regardless of locale
// or timezone handling.

// CardPayload is the wire representation of a flashcard. It mirrors the
// domain record field for field, with time values flattened to epoch
// milliseconds and enums as integers.
type CardPayload struct {
	ID               uuid.UUID `json:"id"               validate:"required"`
	UserID           uuid.UUID `json:"userId"           validate:"required"`
	Word             string    `json:"word"             validate:"required"`
	Pronunciation    string    `json:"pronunciation"`
	Meaning          string    `json:"meaning"`
	Context          string    `json:"context"`
	Tier             string    `json:"tier"`
	Source           string    `json:"source"`
	State            int       `json:"state"            validate:"min=0,max=3"`
	Due              int64     `json:"due"`
	Reps             int       `json:"reps"             validate:"min=0"`
	ElapsedDays      int       `json:"elapsedDays"`
	ScheduledDays    int       `json:"scheduledDays"`
	Stability        float64   `json:"stability"`
	DifficultyRating float64   `json:"difficultyRating"`
	CreatedAt        int64     `json:"createdAt"`
	UpdatedAt        int64     `json:"updatedAt"`
}

// CardToPayload converts a domain card to its wire representation.
func CardToPayload(card *domain.Flashcard) CardPayload {
	return CardPayload{
		ID:               card.ID,
		UserID:           card.UserID,
		Word:             card.Word,
		Pronunciation:    card.Pronunciation,
		Meaning:          card.Meaning,
		Context:          card.Context,
		Tier:             string(card.Tier),
		Source:           card.Source,
		State:            int(card.State),
		Due:              card.Due.UnixMilli(),
		Reps:             card.Reps,
		ElapsedDays:      card.ElapsedDays,
		ScheduledDays:    card.ScheduledDays,
		Stability:        card.Stability,
		DifficultyRating: card.DifficultyRating,
		CreatedAt:        card.CreatedAt.UnixMilli(),
		UpdatedAt:        card.UpdatedAt.UnixMilli(),
	}
}

// PayloadToCard converts a wire payload back into a domain card.
func PayloadToCard(payload CardPayload) *domain.Flashcard {
	return &domain.Flashcard{
		ID:               payload.ID,
		UserID:           payload.UserID,
		Word:             payload.Word,
		Pronunciation:    payload.Pronunciation,
		Meaning:          payload.Meaning,
		Context:          payload.Context,
		Tier:             domain.DifficultyTier(payload.Tier),
		Source:           payload.Source,
		State:            domain.CardState(payload.State),
		Due:              time.UnixMilli(payload.Due).UTC(),
		Reps:             payload.Reps,
		ElapsedDays:      payload.ElapsedDays,
		ScheduledDays:    payload.ScheduledDays,
		Stability:        payload.Stability,
		DifficultyRating: payload.DifficultyRating,
		CreatedAt:        time.UnixMilli(payload.CreatedAt).UTC(),
		UpdatedAt:        time.UnixMilli(payload.UpdatedAt).UTC(),
	}
}

// CardsToPayloads converts a slice of domain cards for the wire.
func CardsToPayloads(cards []*domain.Flashcard) []CardPayload {
	payloads := make([]CardPayload, len(cards))
	for i, card := range cards {
		payloads[i] = CardToPayload(card)
	}
	return payloads
}

// PayloadsToCards converts a slice of wire payloads to domain cards.
func PayloadsToCards(payloads []CardPayload) []*domain.Flashcard {
	cards := make([]*domain.Flashcard, len(payloads))
	for i, payload := range payloads {
		cards[i] = PayloadToCard(payload)
	}
	return cards
}

// CardSetResponse is the response for bulk card reads and sync pushes.
type CardSetResponse struct {
	Cards []CardPayload `json:"cards"`
}

// SyncPushRequest defines the payload for the card sync endpoint.
type SyncPushRequest struct {
	Cards []CardPayload `json:"cards" validate:"required,min=1,dive"`
}

// ReviewRequest defines the payload for the card review endpoint.
type ReviewRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=4"`
}

// ExtractRequest defines the payload for the article extraction endpoints.
type ExtractRequest struct {
	ArticleText string `json:"articleText" validate:"required,min=1"`
}

// CandidatePayload is the wire representation of a rejected candidate.
type CandidatePayload struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	Context       string `json:"context"`
	Tier          string `json:"tier"`
}

// ExtractResponse reports the outcome of a synchronous extraction:
// article metadata plus which candidates were folded into the card set
// and which were dropped as duplicates.
type ExtractResponse struct {
	Title    string             `json:"title"`
	Summary  string             `json:"summary"`
	Author   string             `json:"author,omitempty"`
	Accepted []CardPayload      `json:"accepted"`
	Rejected []CandidatePayload `json:"rejected"`
}

// ExtractAsyncResponse acknowledges an enqueued extraction job.
type ExtractAsyncResponse struct {
	TaskID uuid.UUID `json:"taskId"`
	Status string    `json:"status"`
}

// CandidatesToPayloads converts rejected domain candidates for the wire.
func CandidatesToPayloads(candidates []domain.CandidateWord) []CandidatePayload {
	payloads := make([]CandidatePayload, len(candidates))
	for i, c := range candidates {
		payloads[i] = CandidatePayload{
			Word:          c.Word,
			Pronunciation: c.Pronunciation,
			Meaning:       c.Meaning,
			Context:       c.Context,
			Tier:          string(c.Tier),
		}
	}
	return payloads
}
