package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type RoomsListResponse struct {
	Items []RoomItem `json:"items"`
}

type RoomItem struct {
	Name     string `json:"name"`
	Members  int    `json:"members"`
	Messages int    `json:"messages"`
}

type MemberItem struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsTyping bool   `json:"isTyping"`
}

type MembersResponse struct {
	Items []MemberItem `json:"items"`
}

type MessageItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type MessagesResponse struct {
	Items []MessageItem `json:"items"`
}
