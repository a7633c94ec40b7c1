package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

func TestParseInboundEvent_Message(t *testing.T) {
	ev, err := domain.ParseInboundEvent([]byte(`{"kind":"message","content":"hi there"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventMessage, ev.Kind)
	assert.Equal(t, "hi there", ev.Content)
}

func TestParseInboundEvent_Read(t *testing.T) {
	ev, err := domain.ParseInboundEvent([]byte(`{"kind":"read","message_ids":[3,5,8]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventRead, ev.Kind)
	assert.Equal(t, []uint{3, 5, 8}, ev.MessageIDs)
}

func TestParseInboundEvent_Typing(t *testing.T) {
	ev, err := domain.ParseInboundEvent([]byte(`{"kind":"typing","is_typing":true}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventTyping, ev.Kind)
	assert.True(t, ev.IsTyping)
}

func TestParseInboundEvent_UnknownKindIsNotAnError(t *testing.T) {
	ev, err := domain.ParseInboundEvent([]byte(`{"kind":"shrug","content":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventUnknown, ev.Kind)
}

func TestParseInboundEvent_MalformedJSON(t *testing.T) {
	_, err := domain.ParseInboundEvent([]byte(`{"kind":`))
	assert.Error(t, err)
}

func TestNewChatMessageEvent(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := &domain.Message{
		ID:        10,
		RoomID:    42,
		SenderID:  1,
		Content:   "hi",
		IsRead:    false,
		CreatedAt: created,
	}

	payload, err := domain.NewChatMessageEvent(msg, "alice")
	require.NoError(t, err)

	var decoded struct {
		Kind    string `json:"kind"`
		Message struct {
			ID         uint      `json:"id"`
			Content    string    `json:"content"`
			SenderID   uint      `json:"sender_id"`
			SenderName string    `json:"sender_name"`
			CreatedAt  time.Time `json:"created_at"`
			IsRead     bool      `json:"is_read"`
		} `json:"message"`
	}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, domain.KindChatMessage, decoded.Kind)
	assert.Equal(t, uint(10), decoded.Message.ID)
	assert.Equal(t, "hi", decoded.Message.Content)
	assert.Equal(t, uint(1), decoded.Message.SenderID)
	assert.Equal(t, "alice", decoded.Message.SenderName)
	assert.True(t, created.Equal(decoded.Message.CreatedAt))
	assert.False(t, decoded.Message.IsRead)
}

func TestNewReadReceiptEvent(t *testing.T) {
	payload, err := domain.NewReadReceiptEvent([]uint{3, 5}, 2)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, domain.KindReadReceipt, decoded["kind"])
	assert.Equal(t, float64(2), decoded["user_id"])
	assert.Equal(t, []interface{}{float64(3), float64(5)}, decoded["message_ids"])
}

func TestNewTypingEvent(t *testing.T) {
	payload, err := domain.NewTypingEvent(1, "alice", true)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, domain.KindTyping, decoded["kind"])
	assert.Equal(t, "alice", decoded["user_name"])
	assert.Equal(t, true, decoded["is_typing"])
}

func TestNewParticipantJoinedEvent(t *testing.T) {
	payload, err := domain.NewParticipantJoinedEvent(2, "bob")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, domain.KindParticipantJoined, decoded["kind"])
	assert.Equal(t, float64(2), decoded["user_id"])
	assert.Equal(t, "bob", decoded["user_name"])
}

func TestRoomParticipants(t *testing.T) {
	room := &domain.Room{ID: 42, ItemID: 7, BuyerID: 1, SellerID: 2}

	assert.True(t, room.IsParticipant(1))
	assert.True(t, room.IsParticipant(2))
	assert.False(t, room.IsParticipant(99))
	assert.Equal(t, uint(2), room.OtherParticipant(1))
	assert.Equal(t, uint(1), room.OtherParticipant(2))
}
