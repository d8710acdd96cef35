package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tieubaoca/smartmail-be/types"
)

type WebSocketService struct {
	answer   *AnswerService
	upgrader websocket.Upgrader
}

func NewWebSocketService(answer *AnswerService) *WebSocketService {
	return &WebSocketService{
		answer: answer,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

// HandleAsk upgrades the connection and answers questions until the client
// disconnects. Each ask message gets back either an answer response or an
// error response; the connection stays open across failures.
func (s *WebSocketService) HandleAsk(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ctx := r.Context()

	for {
		_, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebsocketRequest
		if err := json.Unmarshal(p, &req); err != nil {
			log.Println("Unmarshal error:", err)
			s.writeError(conn, "invalid request")
			continue
		}
		payloadBytes, err := json.Marshal(req.Payload)
		if err != nil {
			log.Println("Marshal error:", err)
			s.writeError(conn, "invalid request payload")
			continue
		}

		switch req.Type {
		case types.TypeWebsocketAsk:
			var payload types.WebSocketAskPayload
			if err := json.Unmarshal(payloadBytes, &payload); err != nil {
				log.Println("Unmarshal error:", err)
				s.writeError(conn, "invalid ask payload")
				continue
			}
			topK := payload.TopK
			if topK == 0 {
				topK = DefaultTopK
			}

			processing := types.WebSocketResponse{
				Type:    types.TypeWebsocketProcessing,
				Payload: types.WebSocketProcessingResponse{Message: "searching documents"},
			}
			if err := conn.WriteJSON(processing); err != nil {
				log.Println("Write error:", err)
				continue
			}

			result := s.answer.Answer(ctx, payload.Question, topK)
			res := types.WebSocketResponse{
				Type:    types.TypeWebsocketAnswer,
				Payload: result,
			}
			if result.Status == types.StatusError {
				res.Type = types.TypeWebsocketError
			}
			if err := conn.WriteJSON(res); err != nil {
				log.Println("Write error:", err)
				continue
			}
		case types.TypeWebsocketPing:
			pongRes := types.WebSocketResponse{
				Type:    types.TypeWebsocketPong,
				Payload: nil,
			}
			if err := conn.WriteJSON(pongRes); err != nil {
				log.Println("Write error:", err)
			}
		default:
			log.Println("Invalid message type")
		}
	}
}

func (s *WebSocketService) writeError(conn *websocket.Conn, message string) {
	res := types.WebSocketResponse{
		Type:    types.TypeWebsocketError,
		Payload: types.WebSocketProcessingResponse{Message: message},
	}
	if err := conn.WriteJSON(res); err != nil {
		log.Println("Write error:", err)
	}
}
