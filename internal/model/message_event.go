package model

import "time"

// Event kinds recorded for a message's lifecycle.
const (
	EventMessageSent = "sent"
	EventMessageRead = "read"
)

// MessageEvent is an append-only activity record. Events are published to the
// broker on send/read and persisted asynchronously by the event worker; the
// API never reads them back.
type MessageEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	MessageID  uint      `gorm:"not null;index" json:"message_id"`
	Kind       string    `gorm:"size:16;not null" json:"kind"`
	Actor      string    `gorm:"size:64;not null" json:"actor"`
	OccurredAt time.Time `json:"occurred_at"`
}
