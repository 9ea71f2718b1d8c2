package types

type AskRequest struct {
	Context    string `json:"context,omitempty"`
	DocumentID string `json:"documentId,omitempty"`
	Question   string `json:"question"`
}
