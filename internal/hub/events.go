package hub

import "github.com/cwrk-planet/chat-service/internal/domain"

// Типы событий, которые хаб рассылает в комнаты
const (
	EventUserJoined = "userJoined" // пользователь присоединился (со снапшотом комнаты)
	EventMessage    = "message"    // чат-сообщение
	EventUserTyping = "userTyping" // индикатор набора текста
	EventUserLeft   = "userLeft"   // пользователь отключился
)

type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type UserJoinedPayload struct {
	User     domain.Connection   `json:"user"`
	Users    []domain.Connection `json:"users"`
	Messages []domain.Message    `json:"messages"`
}

type UserTypingPayload struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

type UserLeftPayload struct {
	UserID string              `json:"userId"`
	Users  []domain.Connection `json:"users"`
}
