package ws

import "encoding/json"

// Типы интентов, которые клиент шлёт по WS
const (
	IntentJoin        = "join"
	IntentSendMessage = "sendMessage"
	IntentTyping      = "typing"
)

// Intent — входящий конверт. Payload разбирается по Type.
type Intent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type JoinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}
