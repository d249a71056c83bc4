package domain

import "time"

// Flashcard is a single question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// MCQ is a multiple-choice question. Correct is the index into Options.
// ImageURL is optional, for questions about graphs, diagrams, or charts.
type MCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// StudySet is the persisted aggregate produced by one successful generation.
// It is created once and never mutated by the generation pipeline.
// UserID is nil for anonymous generations.
type StudySet struct {
	ID            string      `json:"id"`
	UserID        *string     `json:"user_id"`
	Title         string      `json:"title"`
	PDFURL        *string     `json:"pdf_url"`
	Flashcards    []Flashcard `json:"flashcards"`
	MCQs          []MCQ       `json:"mcqs"`
	RevisionSheet string      `json:"revision_sheet"`
	CreatedAt     time.Time   `json:"created_at"`
}

// GenerateResponse is the payload returned by the generate endpoint.
// StudySetID is nil when the durable save failed; the generated content is
// still returned.
type GenerateResponse struct {
	Flashcards []Flashcard `json:"flashcards"`
	MCQs       []MCQ       `json:"mcqs"`
	Conspect   string      `json:"conspect"`
	StudySetID *string     `json:"studySetId"`
	Title      string      `json:"title"`
	PDFURL     *string     `json:"pdfUrl"`
}

// StudySetRepository defines persistence operations for study sets.
type StudySetRepository interface {
	// Create inserts the study set and fills in set.ID on success.
	Create(set *StudySet, token string) error
	GetByID(id string, token string) (*StudySet, error)
	GetByUserID(userID string, token string) ([]*StudySet, error)
}

// StudySetService defines the read operations for study sets.
type StudySetService interface {
	GetStudySet(id string, token string) (*StudySet, error)
	GetStudySetsByUserID(userID string, token string) ([]*StudySet, error)
}
