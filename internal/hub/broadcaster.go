package hub

import "sync"

// Sender — исходящий канал одного подключения. Реализуется транспортом.
// Send не должен блокироваться: медленный получатель — проблема транспорта.
type Sender interface {
	ID() string
	Send(ev Event) error
}

// Broadcaster delivers events to the connections currently registered
// as members of a room. Delivery is fire-and-forget per connection:
// a failed send never aborts delivery to the remaining members.
type Broadcaster struct {
	mu      sync.RWMutex
	senders map[string]Sender

	rooms *RoomStore
}

func NewBroadcaster(rooms *RoomStore) *Broadcaster {
	return &Broadcaster{
		senders: make(map[string]Sender),
		rooms:   rooms,
	}
}

// Attach registers the transport sender for its connection id.
func (b *Broadcaster) Attach(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.senders[s.ID()] = s
}

// Detach forgets the sender. Further emits skip this connection.
func (b *Broadcaster) Detach(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.senders, id)
}

// EmitToRoom delivers the event to every member of the room,
// including the triggering connection if present.
func (b *Broadcaster) EmitToRoom(roomName string, ev Event) {
	b.emit(roomName, "", ev)
}

// EmitToRoomExceptSelf delivers to every member except selfID.
func (b *Broadcaster) EmitToRoomExceptSelf(roomName, selfID string, ev Event) {
	b.emit(roomName, selfID, ev)
}

func (b *Broadcaster) emit(roomName, skipID string, ev Event) {
	ids := b.rooms.MemberIDs(roomName)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, id := range ids {
		if id == skipID {
			continue
		}
		if s, ok := b.senders[id]; ok {
			_ = s.Send(ev) // best-effort
		}
	}
}
