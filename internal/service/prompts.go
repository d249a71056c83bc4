package service

import "fmt"

// Agent generation parameters. The coverage agent produces far more text than
// the outline agent, so it gets a larger output budget and slightly higher
// temperature.
const (
	coverageTemperature     = 0.4
	coverageMaxOutputTokens = 8000
	outlineTemperature      = 0.3
	outlineMaxOutputTokens  = 4000
)

const coverageSystemPrompt = "You are an expert study assistant. Your job is to create comprehensive study materials that cover ALL essential parts of the document. For every major section, key definition, main concept, important figure or diagram, and takeaway, create at least one flashcard and at least one MCQ when the content supports it. Prioritize full coverage of the material: do not skip important topics. Return only valid JSON."

const outlineSystemPrompt = "You are an expert study assistant. Given PDF pages, produce a conspect (structured outline/summary) in markdown. Use headings (##, ###), bullet points, and key facts. This will be used for revision. Return a JSON object with a single key 'conspect' whose value is the markdown string."

func coveragePrompt(pageCount int) string {
	return fmt.Sprintf(`You are viewing %d page(s) of educational content. Produce study materials that COVER ALL ESSENTIAL PARTS of the PDF.

Return a JSON object with exactly these keys:
{
  "flashcards": [ { "question": "...", "answer": "..." } ],
  "mcqs": [
    {
      "question": "...",
      "options": ["A. ...", "B. ...", "C. ...", "D. ..."],
      "correct": 0,
      "explanation": "..."
    }
  ]
}

Coverage rules (important):
- Cover every major section and subsection. For each distinct topic or concept, create at least 1-2 flashcards and at least 1 MCQ.
- Include all key definitions, formulas, and terms.
- Include main ideas, conclusions, and takeaways from the text.
- For any graphs, charts, diagrams, or tables: create at least one flashcard and one MCQ that test understanding of that visual.
- Aim for at least %d flashcards and at least %d MCQs. Use up to %d flashcards and %d MCQs when the material is dense so nothing essential is missed.
- correct is the index (0-3) of the correct option in options.
- Analyze all pages thoroughly. Return only raw JSON, no markdown.`,
		pageCount, MinFlashcards, MinMCQs, MaxFlashcards, MaxMCQs)
}

func outlinePrompt(pageCount int) string {
	return fmt.Sprintf(`Based on the following %d page(s) of educational content, produce a **conspect** (structured outline/summary) in markdown. Use ## and ### headings, bullet points, and key facts. Suitable for revision and future export. Return only a JSON object: { "conspect": "..." } with the markdown inside the string.`, pageCount)
}
