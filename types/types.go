package types

const (
	TypeWebsocketPing       = "ping"
	TypeWebsocketPong       = "pong"
	TypeWebsocketAsk        = "ask"
	TypeWebsocketAnswer     = "answer"
	TypeWebsocketProcessing = "processing"
	TypeWebsocketError      = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketAskPayload struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}

type WebSocketProcessingResponse struct {
	Message string `json:"message"`
}

// Message represents a single message in a generation exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
