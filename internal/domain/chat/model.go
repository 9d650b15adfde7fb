package chat

import (
	"time"
)

// Message is one persisted group-chat message.
type Message struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"senderId"`
	SenderName string    `db:"sender_name" json:"senderName"`
	Text       string    `db:"text" json:"text"`
	SentAt     time.Time `db:"sent_at" json:"sentAt"`
}
