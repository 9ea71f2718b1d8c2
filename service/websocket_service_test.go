package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/tieubaoca/docqa-be/types"
)

type wsReply struct {
	Type    string            `json:"type"`
	Payload map[string]string `json:"payload"`
}

func TestWebSocketService_HandleAsk(t *testing.T) {
	qa := NewQAService(&fakeAI{}, textExtractor{}, newTestDocuments(), NewContextSelector(0), 0)
	server := httptest.NewServer(http.HandlerFunc(NewWebSocketService(qa).HandleAsk))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	testCases := []struct {
		name    string
		message string
		typ     string
		field   string
		want    string
	}{
		{"ping", `{"type":"ping"}`, types.TypeWebsocketPong, "", ""},
		{"ask", `{"type":"ask","payload":{"context":"some text","question":"why?"}}`, types.TypeWebsocketAnswer, "answer", "answer to why?"},
		{"missing question", `{"type":"ask","payload":{"context":"some text"}}`, types.TypeWebsocketError, "message", ErrMissingQuestion.Error()},
		{"unknown handle", `{"type":"ask","payload":{"documentId":"nope","question":"why?"}}`, types.TypeWebsocketError, "message", ErrDocumentNotFound.Error()},
		{"unknown type", `{"type":"chat"}`, types.TypeWebsocketError, "message", "unknown message type"},
		{"garbage", `not json`, types.TypeWebsocketError, "message", "invalid message"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tc.message)); err != nil {
				t.Fatalf("failed to write: %v", err)
			}
			var reply wsReply
			if err := conn.ReadJSON(&reply); err != nil {
				t.Fatalf("failed to read: %v", err)
			}
			if reply.Type != tc.typ {
				t.Fatalf("expected type %q, got %q", tc.typ, reply.Type)
			}
			if tc.field != "" && reply.Payload[tc.field] != tc.want {
				t.Fatalf("expected %s %q, got %q", tc.field, tc.want, reply.Payload[tc.field])
			}
		})
	}
}
