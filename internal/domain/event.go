package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventKind is the closed set of inbound event variants a connection accepts.
// Anything else parses to EventUnknown and is dropped by the session.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventMessage
	EventRead
	EventTyping
)

// Outbound event kind discriminators on the wire.
const (
	KindChatMessage       = "chat-message"
	KindReadReceipt       = "read-receipt"
	KindTyping            = "typing"
	KindParticipantJoined = "participant-joined"
)

// InboundEvent is one decoded client frame.
type InboundEvent struct {
	Kind       EventKind
	Content    string // message
	MessageIDs []uint // read
	IsTyping   bool   // typing
}

type inboundFrame struct {
	Kind       string `json:"kind"`
	Content    string `json:"content"`
	MessageIDs []uint `json:"message_ids"`
	IsTyping   bool   `json:"is_typing"`
}

// ParseInboundEvent decodes a raw client frame. Malformed JSON is an error;
// an unrecognized kind is not — it yields EventUnknown so the caller can
// discard it without tearing down the connection.
func ParseInboundEvent(data []byte) (InboundEvent, error) {
	var frame inboundFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		return InboundEvent{}, fmt.Errorf("decode inbound event: %w", err)
	}
	ev := InboundEvent{
		Content:    frame.Content,
		MessageIDs: frame.MessageIDs,
		IsTyping:   frame.IsTyping,
	}
	switch frame.Kind {
	case "message":
		ev.Kind = EventMessage
	case "read":
		ev.Kind = EventRead
	case "typing":
		ev.Kind = EventTyping
	default:
		ev.Kind = EventUnknown
	}
	return ev, nil
}

// MessagePayload is the message body carried by a chat-message event.
type MessagePayload struct {
	ID         uint      `json:"id"`
	Content    string    `json:"content"`
	SenderID   uint      `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

type chatMessageEvent struct {
	Kind    string         `json:"kind"`
	Message MessagePayload `json:"message"`
}

type readReceiptEvent struct {
	Kind       string `json:"kind"`
	MessageIDs []uint `json:"message_ids"`
	UserID     uint   `json:"user_id"`
}

type typingEvent struct {
	Kind     string `json:"kind"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	IsTyping bool   `json:"is_typing"`
}

type participantJoinedEvent struct {
	Kind     string `json:"kind"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
}

// NewChatMessageEvent encodes the confirmation broadcast for a persisted message.
func NewChatMessageEvent(msg *Message, senderName string) ([]byte, error) {
	return json.Marshal(chatMessageEvent{
		Kind: KindChatMessage,
		Message: MessagePayload{
			ID:         msg.ID,
			Content:    msg.Content,
			SenderID:   msg.SenderID,
			SenderName: senderName,
			CreatedAt:  msg.CreatedAt,
			IsRead:     msg.IsRead,
		},
	})
}

// NewReadReceiptEvent encodes a read receipt carrying the ids the store
// actually flipped, not the ids the client asked for.
func NewReadReceiptEvent(messageIDs []uint, userID uint) ([]byte, error) {
	return json.Marshal(readReceiptEvent{
		Kind:       KindReadReceipt,
		MessageIDs: messageIDs,
		UserID:     userID,
	})
}

// NewTypingEvent encodes an ephemeral typing indicator.
func NewTypingEvent(userID uint, userName string, isTyping bool) ([]byte, error) {
	return json.Marshal(typingEvent{
		Kind:     KindTyping,
		UserID:   userID,
		UserName: userName,
		IsTyping: isTyping,
	})
}

// NewParticipantJoinedEvent encodes the join notification sent to the rest of
// the room when a participant connects.
func NewParticipantJoinedEvent(userID uint, userName string) ([]byte, error) {
	return json.Marshal(participantJoinedEvent{
		Kind:     KindParticipantJoined,
		UserID:   userID,
		UserName: userName,
	})
}
