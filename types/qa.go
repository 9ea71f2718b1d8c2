package types

const (
	AnswerErrorPlaceholder = "Error processing this question."
	AnswerNotFound         = "No answer found."
	AskAnswerNotFound      = "Sorry, I couldn't find an answer."
	SummaryNotFound        = "No summary returned."
)

// AnswerRecord pairs one extracted question with the model's answer or a
// placeholder when the model call failed.
type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Failed   bool   `json:"-"`
}

// Segmentation reports how the question extractor split the input. Fallback
// is true when no question marker was found and the whole text became a
// single question.
type Segmentation struct {
	Markers  int  `json:"markers"`
	Fallback bool `json:"fallback"`
}

type QuestionSet struct {
	Questions    []string
	Segmentation Segmentation
}
