package ws_test

import (
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cwrk-planet/chat-service/internal/hub"
	httpx "github.com/cwrk-planet/chat-service/internal/transport/http"
	"github.com/cwrk-planet/chat-service/internal/transport/ws"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireEvent — событие так, как его видит клиент.
type wireEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wireUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type wireUserJoined struct {
	User     wireUser          `json:"user"`
	Users    []wireUser        `json:"users"`
	Messages []json.RawMessage `json:"messages"`
}

type wireMessage struct {
	ID   string   `json:"id"`
	User wireUser `json:"user"`
	Text string   `json:"text"`
}

type wireUserLeft struct {
	UserID string     `json:"userId"`
	Users  []wireUser `json:"users"`
}

type wireTyping struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry := hub.NewRegistry()
	rooms := hub.NewRoomStore(0)
	bcast := hub.NewBroadcaster(rooms)
	coord := hub.NewCoordinator(registry, rooms, bcast)
	wsServer := ws.NewServer(coord, 64)
	router := httpx.NewRouter(httpx.NewHandler(rooms), wsServer, httpx.RouterConfig{})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, intentType string, payload any) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(ws.Intent{Type: intentType, Payload: raw}))
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev wireEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func expectNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	var ev wireEvent
	err := conn.ReadJSON(&ev)
	require.Error(t, err, "unexpected event: %+v", ev)
	var nerr net.Error
	require.ErrorAs(t, err, &nerr)
	assert.True(t, nerr.Timeout())
}

func TestJoinReceivesRoomSnapshot(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv)

	send(t, conn, ws.IntentJoin, ws.JoinPayload{Username: "alice", Room: "general"})

	ev := readEvent(t, conn)
	require.Equal(t, "userJoined", ev.Type)

	var p wireUserJoined
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Equal(t, "alice", p.User.Username)
	require.Len(t, p.Users, 1)
	assert.Empty(t, p.Messages)
}

func TestMessageBroadcastToWholeRoom(t *testing.T) {
	srv := startServer(t)

	a := dial(t, srv)
	send(t, a, ws.IntentJoin, ws.JoinPayload{Username: "alice", Room: "general"})
	readEvent(t, a) // собственный userJoined

	b := dial(t, srv)
	send(t, b, ws.IntentJoin, ws.JoinPayload{Username: "bob", Room: "general"})
	readEvent(t, b)
	readEvent(t, a) // userJoined боба

	send(t, a, ws.IntentSendMessage, "hi")

	for _, conn := range []*websocket.Conn{a, b} {
		ev := readEvent(t, conn)
		require.Equal(t, "message", ev.Type)
		var m wireMessage
		require.NoError(t, json.Unmarshal(ev.Payload, &m))
		assert.Equal(t, "hi", m.Text)
		assert.Equal(t, "alice", m.User.Username)
		assert.NotEmpty(t, m.ID)
	}
}

func TestDisconnectNotifiesRemainingMembers(t *testing.T) {
	srv := startServer(t)

	a := dial(t, srv)
	send(t, a, ws.IntentJoin, ws.JoinPayload{Username: "alice", Room: "general"})
	readEvent(t, a)

	b := dial(t, srv)
	send(t, b, ws.IntentJoin, ws.JoinPayload{Username: "bob", Room: "general"})
	readEvent(t, b)

	evJoined := readEvent(t, a)
	var pj wireUserJoined
	require.NoError(t, json.Unmarshal(evJoined.Payload, &pj))
	bobID := pj.User.ID

	require.NoError(t, b.Close())

	ev := readEvent(t, a)
	require.Equal(t, "userLeft", ev.Type)
	var pl wireUserLeft
	require.NoError(t, json.Unmarshal(ev.Payload, &pl))
	assert.Equal(t, bobID, pl.UserID)
	require.Len(t, pl.Users, 1)
	assert.Equal(t, "alice", pl.Users[0].Username)
}

func TestTypingNotEchoedToSender(t *testing.T) {
	srv := startServer(t)

	a := dial(t, srv)
	send(t, a, ws.IntentJoin, ws.JoinPayload{Username: "alice", Room: "general"})
	readEvent(t, a)

	b := dial(t, srv)
	send(t, b, ws.IntentJoin, ws.JoinPayload{Username: "bob", Room: "general"})
	readEvent(t, b)
	readEvent(t, a)

	send(t, a, ws.IntentTyping, true)

	ev := readEvent(t, b)
	require.Equal(t, "userTyping", ev.Type)
	var p wireTyping
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.True(t, p.IsTyping)

	expectNoEvent(t, a)
}

func TestMalformedFramesIgnored(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv)

	// битый JSON и неизвестный тип не роняют соединение
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"bogus","payload":{}}`)))

	send(t, conn, ws.IntentJoin, ws.JoinPayload{Username: "alice", Room: "general"})

	ev := readEvent(t, conn)
	assert.Equal(t, "userJoined", ev.Type)
}

func TestMessageBeforeJoinDropped(t *testing.T) {
	srv := startServer(t)
	conn := dial(t, srv)

	send(t, conn, ws.IntentSendMessage, "premature")

	send(t, conn, ws.IntentJoin, ws.JoinPayload{Username: "alice", Room: "general"})
	ev := readEvent(t, conn)
	require.Equal(t, "userJoined", ev.Type)

	var p wireUserJoined
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Empty(t, p.Messages)
}
