package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/tieubaoca/docqa-be/types"
)

const (
	wsReadLimit   = 512 * 1024
	wsReadTimeout = 60 * time.Second
)

// WebSocketService serves iterative question answering over one connection:
// each "ask" message is answered in turn.
type WebSocketService struct {
	qa       *QAService
	upgrader websocket.Upgrader
}

func NewWebSocketService(qa *QAService) *WebSocketService {
	return &WebSocketService{
		qa: qa,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Upgrade error")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		res := s.handleMessage(ctx, p)
		if err := conn.WriteJSON(res); err != nil {
			log.Warn().Err(err).Msg("WebSocket write error")
			return
		}
	}
}

func (s *WebSocketService) handleMessage(ctx context.Context, p []byte) types.WebSocketResponse {
	var req types.WebsocketRequest
	if err := json.Unmarshal(p, &req); err != nil {
		return wsError("invalid message")
	}

	switch req.Type {
	case types.TypeWebsocketPing:
		return types.WebSocketResponse{Type: types.TypeWebsocketPong}
	case types.TypeWebsocketAsk:
		var payload types.WebSocketAskPayload
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return wsError("invalid ask payload")
		}
		answer, err := s.qa.Ask(ctx, types.AskRequest{
			Context:    payload.Context,
			DocumentID: payload.DocumentID,
			Question:   payload.Question,
		})
		if err != nil {
			log.Error().Err(err).Msg("WebSocket ask failed")
			return wsError(publicMessage(err))
		}
		return types.WebSocketResponse{
			Type:    types.TypeWebsocketAnswer,
			Payload: types.WebSocketAnswerResponse{Question: payload.Question, Answer: answer},
		}
	default:
		return wsError("unknown message type")
	}
}

func wsError(message string) types.WebSocketResponse {
	return types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketErrorResponse{Message: message},
	}
}

// publicMessage keeps validation messages and hides upstream details.
func publicMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingQuestion), errors.Is(err, ErrMissingContext),
		errors.Is(err, ErrAmbiguousSource), errors.Is(err, ErrDocumentNotFound):
		return err.Error()
	default:
		return "something went wrong"
	}
}
