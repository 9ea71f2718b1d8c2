package types

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type UploadResponse struct {
	Summary    string     `json:"summary"`
	DocumentID string     `json:"documentId,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}

type BulkQAResponse struct {
	Answers      []AnswerRecord `json:"answers"`
	Segmentation Segmentation   `json:"segmentation"`
}

// FailedCount is the number of answers that carry the error placeholder
// because the model call failed.
func (r *BulkQAResponse) FailedCount() int {
	failed := 0
	for _, a := range r.Answers {
		if a.Failed {
			failed++
		}
	}
	return failed
}

// BulkQAProgress is emitted once per answered question while a batch runs.
type BulkQAProgress struct {
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
