package service

import (
	"encoding/json"
	"strings"

	"github.com/Emil0510/learn-ai/internal/domain"
)

// Generation bounds. The minimums are advisory targets given to the model;
// the maximums are enforced here after validation.
const (
	MinFlashcards = 15
	MinMCQs       = 8
	MaxFlashcards = 50
	MaxMCQs       = 30
)

// coveragePayload is the expected shape of the coverage agent's response.
// Entries are kept raw so one malformed element doesn't sink the batch.
type coveragePayload struct {
	Flashcards []json.RawMessage `json:"flashcards"`
	MCQs       []json.RawMessage `json:"mcqs"`
}

// outlinePayload is the expected shape of the outline agent's response.
type outlinePayload struct {
	Conspect string `json:"conspect"`
}

// rawMCQ uses pointer fields so missing keys are distinguishable from zero
// values: an absent "correct" must not pass as index 0.
type rawMCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     *int     `json:"correct"`
	Explanation *string  `json:"explanation"`
	ImageURL    *string  `json:"image_url"`
}

// boundFlashcards keeps entries with non-empty question and answer strings,
// truncated to MaxFlashcards. Malformed entries are dropped, never fatal.
func boundFlashcards(raw []json.RawMessage) []domain.Flashcard {
	out := make([]domain.Flashcard, 0, len(raw))
	for _, entry := range raw {
		if len(out) == MaxFlashcards {
			break
		}
		var card domain.Flashcard
		if err := json.Unmarshal(entry, &card); err != nil {
			continue
		}
		if strings.TrimSpace(card.Question) == "" || strings.TrimSpace(card.Answer) == "" {
			continue
		}
		out = append(out, card)
	}
	return out
}

// boundMCQs keeps entries with a question, at least two options, an
// explanation field, and a correct index that actually points into options.
// Survivors are truncated to MaxMCQs.
func boundMCQs(raw []json.RawMessage) []domain.MCQ {
	out := make([]domain.MCQ, 0, len(raw))
	for _, entry := range raw {
		if len(out) == MaxMCQs {
			break
		}
		var m rawMCQ
		if err := json.Unmarshal(entry, &m); err != nil {
			continue
		}
		if strings.TrimSpace(m.Question) == "" || len(m.Options) < 2 {
			continue
		}
		if m.Correct == nil || *m.Correct < 0 || *m.Correct >= len(m.Options) {
			continue
		}
		if m.Explanation == nil {
			continue
		}
		out = append(out, domain.MCQ{
			Question:    m.Question,
			Options:     m.Options,
			Correct:     *m.Correct,
			Explanation: *m.Explanation,
			ImageURL:    m.ImageURL,
		})
	}
	return out
}

// boundOutline trims the outline; an unusable outline becomes the empty string.
func boundOutline(conspect string) string {
	return strings.TrimSpace(conspect)
}
