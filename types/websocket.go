package types

import "encoding/json"

const (
	TypeWebsocketPing   = "ping"
	TypeWebsocketPong   = "pong"
	TypeWebsocketAsk    = "ask"
	TypeWebsocketAnswer = "answer"
	TypeWebsocketError  = "error"
)

type WebsocketRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type WebSocketAskPayload struct {
	Context    string `json:"context,omitempty"`
	DocumentID string `json:"documentId,omitempty"`
	Question   string `json:"question"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketAnswerResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type WebSocketErrorResponse struct {
	Message string `json:"message"`
}
