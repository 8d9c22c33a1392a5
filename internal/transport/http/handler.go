package http

import (
	"encoding/json"
	"net/http"

	"github.com/cwrk-planet/chat-service/internal/hub"

	"github.com/go-chi/chi/v5"
)

// Handler — read-only REST-срез состояния хаба. Все мутации идут
// только через WS-интенты.
type Handler struct {
	rooms *hub.RoomStore
}

func NewHandler(rooms *hub.RoomStore) *Handler {
	return &Handler{rooms: rooms}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	infos := h.rooms.List()
	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(infos))}
	for _, ri := range infos {
		resp.Items = append(resp.Items, RoomItem{
			Name:     ri.Name,
			Members:  ri.Members,
			Messages: ri.Messages,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /rooms/{name}/members
func (h *Handler) GetMembers(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.rooms.Exists(name) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	members := h.rooms.Members(name)
	resp := MembersResponse{Items: make([]MemberItem, 0, len(members))}
	for _, m := range members {
		resp.Items = append(resp.Items, MemberItem{
			ID:       m.ID,
			Username: m.Username,
			IsTyping: m.IsTyping,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /rooms/{name}/messages
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !h.rooms.Exists(name) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	msgs := h.rooms.Messages(name)
	resp := MessagesResponse{Items: make([]MessageItem, 0, len(msgs))}
	for _, m := range msgs {
		resp.Items = append(resp.Items, MessageItem{
			ID:        m.ID,
			UserID:    m.User.ID,
			Username:  m.User.Username,
			Text:      m.Text,
			Timestamp: m.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
