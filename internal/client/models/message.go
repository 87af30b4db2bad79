package models

import "time"

// Message is a renter/owner message attached to a flat listing.
type Message struct {
	ID         string    `json:"_id"`
	FlatID     string    `json:"flatID"`
	SenderID   string    `json:"senderID"`
	SenderName string    `json:"senderName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created"`
}

// ChatTurn is one exchange in the assistant conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)
