package postgres

import (
	"context"
	"fmt"

	"github.com/cwrk-planet/chat-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageArchive — write-only приёмник сообщений. Хаб историю отсюда
// не читает: она живёт в памяти, архив — побочный сток.
type MessageArchive struct {
	db *pgxpool.Pool
}

func NewMessageArchive(db *pgxpool.Pool) *MessageArchive {
	return &MessageArchive{db: db}
}

func (a *MessageArchive) Archive(ctx context.Context, roomName string, m domain.Message) error {
	_, err := a.db.Exec(ctx, `
		INSERT INTO room_messages (id, room, sender_id, sender_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, m.ID, roomName, m.User.ID, m.User.Username, m.Text, m.Timestamp)
	if err != nil {
		return fmt.Errorf("insert room_messages: %w", err)
	}
	return nil
}
