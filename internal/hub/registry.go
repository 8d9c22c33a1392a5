package hub

import (
	"sync"

	"github.com/cwrk-planet/chat-service/internal/domain"
)

// Registry хранит сессии активных подключений: id -> Connection.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]domain.Connection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]domain.Connection)}
}

// Register inserts or overwrites the session record for id.
// Имя не валидируется: пустые и повторяющиеся имена допустимы.
func (r *Registry) Register(id, username, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.conns[id] = domain.Connection{
		ID:       id,
		Username: username,
		Room:     room,
	}
}

func (r *Registry) Lookup(id string) (domain.Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.conns[id]
	return c, ok
}

// SetTyping mutates the typing flag. Returns false if id was never registered.
func (r *Registry) SetTyping(id string, isTyping bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[id]
	if !ok {
		return false
	}
	c.IsTyping = isTyping
	r.conns[id] = c
	return true
}

// Remove deletes and returns the prior record.
func (r *Registry) Remove(id string) (domain.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conns[id]
	if ok {
		delete(r.conns, id)
	}
	return c, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}
