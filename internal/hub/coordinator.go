package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cwrk-planet/chat-service/internal/domain"

	"github.com/google/uuid"
)

// Archiver — необязательный приёмник сообщений (write-only, best-effort).
// Ошибки архивации не влияют на доставку: история живёт в памяти.
type Archiver interface {
	Archive(ctx context.Context, roomName string, m domain.Message) error
}

// Coordinator is the state machine of the hub: it receives client intents
// (join, send, typing, disconnect), mutates registry and room state, and
// fans the resulting events out through the broadcaster.
//
// Один мьютекс на все интенты: каждый обрабатывается целиком, как в
// однопоточном event loop. Мутации комнаты и чтения для payload-а событий
// атомарны относительно других интентов.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	rooms    *RoomStore
	bcast    *Broadcaster
	archiver Archiver // может быть nil

	archiveTimeout time.Duration
}

func NewCoordinator(registry *Registry, rooms *RoomStore, bcast *Broadcaster) *Coordinator {
	return &Coordinator{
		registry:       registry,
		rooms:          rooms,
		bcast:          bcast,
		archiveTimeout: 5 * time.Second,
	}
}

// SetArchiver wires an optional message archive sink.
func (c *Coordinator) SetArchiver(a Archiver) { c.archiver = a }

// Connect attaches the transport sender for a new connection.
// Сессии ещё нет: она появится с первым join.
func (c *Coordinator) Connect(s Sender) {
	c.bcast.Attach(s)
	slog.Debug("connection attached", "conn", s.ID())
}

// Join registers the session, places the connection into the room and
// broadcasts userJoined (with the member list and full history) to the
// whole room, joiner included.
//
// Повторный join в другую комнату перезаписывает сессию, но НЕ убирает
// участника из прежней комнаты — унаследованное поведение, менять нельзя
// без пересмотра контракта (закреплено тестом).
func (c *Coordinator) Join(id, username, roomName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.Register(id, username, roomName)
	conn, _ := c.registry.Lookup(id)

	c.rooms.Ensure(roomName)
	c.rooms.AddMember(roomName, id, conn)

	c.bcast.EmitToRoom(roomName, Event{
		Type: EventUserJoined,
		Payload: UserJoinedPayload{
			User:     conn,
			Users:    c.rooms.Members(roomName),
			Messages: c.rooms.Messages(roomName),
		},
	})

	slog.Info("user joined", "user", username, "room", roomName, "conn", id)
}

// SendMessage appends a message to the sender's room log and broadcasts it
// to the whole room, sender included. Интент от незарегистрированного или
// не вошедшего в комнату подключения молча отбрасывается: гонки
// транспорта (сообщение сразу после disconnect) ожидаемы.
func (c *Coordinator) SendMessage(id, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.registry.Lookup(id)
	if !ok || !conn.InRoom() {
		slog.Debug("message from unknown or roomless connection dropped", "conn", id)
		return
	}

	m := domain.Message{
		ID:        uuid.New().String(),
		User:      domain.Sender{ID: conn.ID, Username: conn.Username},
		Text:      text, // без обрезки и валидации
		Timestamp: time.Now().UTC(),
	}

	c.rooms.Append(conn.Room, m)
	c.bcast.EmitToRoom(conn.Room, Event{Type: EventMessage, Payload: m})

	if c.archiver != nil {
		go c.archive(conn.Room, m)
	}
}

func (c *Coordinator) archive(roomName string, m domain.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), c.archiveTimeout)
	defer cancel()

	if err := c.archiver.Archive(ctx, roomName, m); err != nil {
		slog.Warn("message archive failed", "room", roomName, "msg", m.ID, "err", err)
	}
}

// SetTyping updates the typing flag and notifies the rest of the room.
// Отправитель своё же userTyping не получает.
func (c *Coordinator) SetTyping(id string, isTyping bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.registry.Lookup(id)
	if !ok || !conn.InRoom() {
		return
	}

	c.registry.SetTyping(id, isTyping)
	c.bcast.EmitToRoomExceptSelf(conn.Room, id, Event{
		Type:    EventUserTyping,
		Payload: UserTypingPayload{UserID: id, IsTyping: isTyping},
	})
}

// Disconnect removes the session, drops room membership and notifies the
// remaining members with userLeft. No-op для неизвестного id.
func (c *Coordinator) Disconnect(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, ok := c.registry.Remove(id)
	if ok && conn.InRoom() {
		c.rooms.RemoveMember(conn.Room, id)
		c.bcast.EmitToRoom(conn.Room, Event{
			Type: EventUserLeft,
			Payload: UserLeftPayload{
				UserID: id,
				Users:  c.rooms.Members(conn.Room),
			},
		})
		slog.Info("user left", "user", conn.Username, "room", conn.Room, "conn", id)
	}

	c.bcast.Detach(id)
}
