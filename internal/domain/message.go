package domain

import "time"

// Sender — снапшот отправителя на момент создания сообщения,
// не живая ссылка (пользователь может отключиться или сменить имя).
type Sender struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Message is immutable once created and belongs to exactly one room's log.
type Message struct {
	ID        string    `json:"id"`
	User      Sender    `json:"user"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
