package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateResponse_JSONFieldNames(t *testing.T) {
	setID := "set-1"
	url := "https://storage.example/pdfs/x.pdf"
	resp := GenerateResponse{
		Flashcards: []Flashcard{{Question: "q", Answer: "a"}},
		MCQs:       []MCQ{{Question: "q", Options: []string{"a", "b"}, Correct: 1, Explanation: "e"}},
		Conspect:   "## Notes",
		StudySetID: &setID,
		Title:      "lecture",
		PDFURL:     &url,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)

	for _, key := range []string{`"flashcards"`, `"mcqs"`, `"conspect"`, `"studySetId"`, `"title"`, `"pdfUrl"`} {
		if !strings.Contains(body, key) {
			t.Fatalf("expected key %s in payload: %s", key, body)
		}
	}
}

func TestGenerateResponse_FailedSaveEncodesNull(t *testing.T) {
	data, err := json.Marshal(GenerateResponse{Title: "t"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"studySetId":null`) {
		t.Fatalf("expected null studySetId when save failed: %s", data)
	}
}

func TestMCQ_ImageURLOmittedWhenAbsent(t *testing.T) {
	data, err := json.Marshal(MCQ{Question: "q", Options: []string{"a", "b"}, Correct: 0, Explanation: "e"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "image_url") {
		t.Fatalf("expected image_url omitted when nil: %s", data)
	}
}

func TestPageImage_DataURL(t *testing.T) {
	page := PageImage{Index: 0, PNG: []byte{0x89, 'P', 'N', 'G'}}

	url := page.DataURL()

	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %s", url)
	}
	if url == "data:image/png;base64," {
		t.Fatal("expected payload after prefix")
	}
}
