// Package tasks defines the background task types and their payloads.
package tasks

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// TypeOfflineMessage is enqueued when a message arrives for a participant
// with no live connection in the room.
const TypeOfflineMessage = "notification:offline_message"

// OfflineMessagePayload identifies the message awaiting out-of-band delivery.
type OfflineMessagePayload struct {
	RoomID      uint `json:"room_id"`
	MessageID   uint `json:"message_id"`
	RecipientID uint `json:"recipient_id"`
}

// NewOfflineMessageTask builds the asynq task for an offline notification.
func NewOfflineMessageTask(roomID, messageID, recipientID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(OfflineMessagePayload{
		RoomID:      roomID,
		MessageID:   messageID,
		RecipientID: recipientID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOfflineMessage, payload, asynq.Queue("default")), nil
}

// Enqueuer submits tasks through an asynq client. It implements the hub's
// Notifier, so sessions stay decoupled from the queue.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer creates an Enqueuer.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	if client == nil {
		panic("asynq client cannot be nil for Enqueuer")
	}
	return &Enqueuer{client: client}
}

// NotifyOffline enqueues an offline-message notification. Enqueue failures
// are logged and swallowed: notification is best-effort and must never
// surface into the originating connection's event handling.
func (e *Enqueuer) NotifyOffline(ctx context.Context, roomID, messageID, recipientID uint) {
	task, err := NewOfflineMessageTask(roomID, messageID, recipientID)
	if err != nil {
		logrus.WithError(err).Error("Failed to build offline message task")
		return
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"room_id":      roomID,
			"message_id":   messageID,
			"recipient_id": recipientID,
		}).Error("Failed to enqueue offline message task")
	}
}
