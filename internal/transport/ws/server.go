package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cwrk-planet/chat-service/internal/hub"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Coordinator — интенты, которые транспорт передаёт в ядро хаба.
type Coordinator interface {
	Connect(s hub.Sender)
	Join(id, username, room string)
	SendMessage(id, text string)
	SetTyping(id string, isTyping bool)
	Disconnect(id string)
}

type Server struct {
	upgrader websocket.Upgrader
	coord    Coordinator

	pingEvery  time.Duration
	sendBuffer int
}

func NewServer(coord Coordinator, sendBuffer int) *Server {
	return &Server{
		coord: coord,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery:  15 * time.Second,
		sendBuffer: sendBuffer,
	}
}

// WS endpoint: GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	// id подключения — аналог socket.id: живёт одну транспортную сессию
	id := uuid.New().String()
	c := newWsConn(conn, id, s.sendBuffer)

	s.coord.Connect(c)
	slog.Debug("user connected", "conn", id, "remote", r.RemoteAddr)

	go c.writePump(s.pingEvery)
	s.readLoop(c)

	s.coord.Disconnect(id)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", id, "err", err)
	}
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var in Intent
		if err := json.Unmarshal(data, &in); err != nil {
			continue // битый конверт игнорируем
		}

		switch in.Type {
		case IntentJoin:
			var p JoinPayload
			if json.Unmarshal(in.Payload, &p) == nil {
				s.coord.Join(c.id, p.Username, p.Room)
			}
		case IntentSendMessage:
			var text string
			if json.Unmarshal(in.Payload, &text) == nil {
				s.coord.SendMessage(c.id, text)
			}
		case IntentTyping:
			var isTyping bool
			if json.Unmarshal(in.Payload, &isTyping) == nil {
				s.coord.SetTyping(c.id, isTyping)
			}
		default:
			// ignore
		}
	}
}
