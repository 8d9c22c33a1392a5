package hub

import (
	"sync"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

type room struct {
	members  map[string]domain.Connection // connID -> снапшот на момент join
	messages []domain.Message
}

// RoomStore хранит комнаты: участников и журнал сообщений.
// Комнаты создаются лениво и никогда не удаляются (пустая комната остаётся).
type RoomStore struct {
	mu           sync.RWMutex
	rooms        map[string]*room
	historyLimit int // 0 — журнал не ограничен
}

// NewRoomStore creates an empty store. historyLimit caps each room's log;
// oldest messages are evicted first. 0 keeps the full history.
func NewRoomStore(historyLimit int) *RoomStore {
	if historyLimit < 0 {
		historyLimit = 0
	}
	return &RoomStore{
		rooms:        make(map[string]*room),
		historyLimit: historyLimit,
	}
}

func (s *RoomStore) ensureLocked(name string) *room {
	rm, ok := s.rooms[name]
	if !ok {
		rm = &room{members: make(map[string]domain.Connection)}
		s.rooms[name] = rm
	}
	return rm
}

// Ensure creates the room if it does not exist yet. Idempotent.
func (s *RoomStore) Ensure(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked(name)
}

// AddMember inserts the connection snapshot into the room's member map,
// overwriting a stale entry with the same id.
func (s *RoomStore) AddMember(roomName, id string, c domain.Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked(roomName).members[id] = c
}

// RemoveMember is a no-op when the id or the room is absent.
func (s *RoomStore) RemoveMember(roomName, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rm, ok := s.rooms[roomName]; ok {
		delete(rm.members, id)
	}
}

// Append adds the message to the room's log, evicting the oldest
// entries when the history limit is exceeded.
func (s *RoomStore) Append(roomName string, m domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm := s.ensureLocked(roomName)
	rm.messages = append(rm.messages, m)
	if s.historyLimit > 0 && len(rm.messages) > s.historyLimit {
		excess := len(rm.messages) - s.historyLimit
		rm.messages = rm.messages[excess:]
	}
}

// Members returns a point-in-time copy of the room's member list.
// Копия, а не алиас внутреннего состояния: сериализация payload-а
// не должна гоняться с конкурентными мутациями.
func (s *RoomStore) Members(roomName string) []domain.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm, ok := s.rooms[roomName]
	if !ok {
		return []domain.Connection{}
	}
	out := make([]domain.Connection, 0, len(rm.members))
	for _, c := range rm.members {
		out = append(out, c)
	}
	return out
}

// MemberIDs returns the ids of the room's current members.
func (s *RoomStore) MemberIDs(roomName string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm, ok := s.rooms[roomName]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(rm.members))
	for id := range rm.members {
		out = append(out, id)
	}
	return out
}

// Messages returns a copy of the room's full message log in append order.
func (s *RoomStore) Messages(roomName string) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rm, ok := s.rooms[roomName]
	if !ok {
		return []domain.Message{}
	}
	out := make([]domain.Message, len(rm.messages))
	copy(out, rm.messages)
	return out
}

// RoomInfo — сводка по комнате для REST-выдачи.
type RoomInfo struct {
	Name     string `json:"name"`
	Members  int    `json:"members"`
	Messages int    `json:"messages"`
}

// List returns a summary of every known room.
func (s *RoomStore) List() []RoomInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]RoomInfo, 0, len(s.rooms))
	for name, rm := range s.rooms {
		out = append(out, RoomInfo{
			Name:     name,
			Members:  len(rm.members),
			Messages: len(rm.messages),
		})
	}
	return out
}

// Exists reports whether the room has been created.
func (s *RoomStore) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.rooms[name]
	return ok
}
