package domain

// Connection — сессия одного подключения. Живёт от upgrade до disconnect;
// Username/Room пустые, пока клиент не прислал join.
type Connection struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Room     string `json:"room"`
	IsTyping bool   `json:"isTyping"`
}

// InRoom reports whether the connection has joined a room.
func (c Connection) InRoom() bool { return c.Room != "" }
