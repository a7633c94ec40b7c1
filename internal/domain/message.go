package domain

import "time"

// Message is a single chat utterance inside a room. CreatedAt is assigned by
// the store at insert time and is the authoritative display order, independent
// of the order clients observe live broadcasts. IsRead is monotonic: once true
// it never reverts, and a message is never marked read by its own sender.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"index;not null" json:"room_id"`
	SenderID  uint      `gorm:"index;not null" json:"sender_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
