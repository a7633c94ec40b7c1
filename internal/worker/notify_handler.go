package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/repository"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/tasks"
)

// OfflineMessageHandler notifies recipients who were not connected when a
// message arrived. It resolves the recipient and their current unread total;
// handing the result to a push or email provider plugs in here.
type OfflineMessageHandler struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

// NewOfflineMessageHandler creates an OfflineMessageHandler.
func NewOfflineMessageHandler(messageRepo repository.MessageRepository, userRepo repository.UserRepository) *OfflineMessageHandler {
	if messageRepo == nil || userRepo == nil {
		panic("OfflineMessageHandler dependencies cannot be nil")
	}
	return &OfflineMessageHandler{messageRepo: messageRepo, userRepo: userRepo}
}

// ProcessTask handles one offline-message notification.
func (h *OfflineMessageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload tasks.OfflineMessagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A payload that cannot decode will never succeed; skip retries.
		return fmt.Errorf("unmarshal offline message payload: %v: %w", err, asynq.SkipRetry)
	}

	recipient, err := h.userRepo.FindByID(ctx, payload.RecipientID)
	if err != nil {
		return fmt.Errorf("resolve recipient %d: %w", payload.RecipientID, err)
	}

	unread, err := h.messageRepo.CountUnreadTotal(ctx, payload.RecipientID)
	if err != nil {
		return fmt.Errorf("count unread for recipient %d: %w", payload.RecipientID, err)
	}

	logrus.WithFields(logrus.Fields{
		"recipient_id": recipient.ID,
		"room_id":      payload.RoomID,
		"message_id":   payload.MessageID,
		"unread_total": unread,
	}).Info("Offline message notification processed")
	return nil
}
