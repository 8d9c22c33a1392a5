package ws

import (
	"time"

	"github.com/cwrk-planet/chat-service/internal/hub"

	"github.com/gorilla/websocket"
)

// wsConn — одно подключение. Все записи в сокет идут через writePump,
// поэтому события в пределах подключения доставляются строго в порядке
// постановки в очередь (FIFO).
type wsConn struct {
	id     string
	conn   *websocket.Conn
	send   chan hub.Event
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, id string, sendBuffer int) *wsConn {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &wsConn{
		id:     id,
		conn:   c,
		send:   make(chan hub.Event, sendBuffer),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) ID() string { return c.id }

// Send ставит событие в исходящую очередь. Никогда не блокируется:
// при переполненном буфере событие отбрасывается (медленный клиент).
func (c *wsConn) Send(ev hub.Event) error {
	select {
	case <-c.closed:
		return websocket.ErrCloseSent
	case c.send <- ev:
		return nil
	default:
		return nil // буфер полон — drop
	}
}

func (c *wsConn) writePump(pingEvery time.Duration) {
	ticker := time.NewTicker(pingEvery)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case ev := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
