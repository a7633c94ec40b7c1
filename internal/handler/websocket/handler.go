// Package websocket upgrades authorized participants onto their room's
// real-time connection.
package websocket

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/hub"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/service"
)

// Handler authorizes WebSocket handshakes and hands accepted connections to
// the hub.
type Handler struct {
	upgrader websocket.Upgrader
	hub      *hub.Hub
	chat     *service.ChatService
	notifier hub.Notifier
}

// NewHandler creates a Handler.
func NewHandler(h *hub.Hub, chat *service.ChatService, notifier hub.Notifier) *Handler {
	if h == nil {
		panic("Hub cannot be nil for websocket Handler")
	}
	if chat == nil {
		panic("ChatService cannot be nil for websocket Handler")
	}
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// TODO: restrict to the configured CORS origin.
			return true
		},
	}
	return &Handler{upgrader: upgrader, hub: h, chat: chat, notifier: notifier}
}

// HandleConnection serves GET /ws/rooms/:roomId. Authorization happens before
// the upgrade: a caller who is not a participant is refused with the same 404
// as a missing room, so probing cannot distinguish the two, and no join ever
// happens for a refused handshake.
func (h *Handler) HandleConnection(c *gin.Context) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	logCtx := logrus.WithField("user_id", userID)

	roomIDStr := c.Param("roomId")
	roomID64, err := strconv.ParseUint(roomIDStr, 10, 32)
	if err != nil {
		logCtx.Warnf("WS Handler: invalid room id: %s", roomIDStr)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID format"})
		return
	}
	roomID := uint(roomID64)
	logCtx = logCtx.WithField("room_id", roomID)

	room, err := h.chat.AuthorizeConnection(c.Request.Context(), roomID, userID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) || errors.Is(err, service.ErrNotParticipant) {
			logCtx.Warn("WS Handler: handshake refused")
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		} else {
			logCtx.WithError(err).Error("WS Handler: authorization failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate room"})
		}
		return
	}

	userName, err := h.chat.DisplayName(c.Request.Context(), userID)
	if err != nil {
		logCtx.WithError(err).Error("WS Handler: display name lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		logCtx.WithError(err).Error("WS Handler: failed to upgrade connection")
		return
	}
	logCtx.Info("WS Handler: connection upgraded")

	client := hub.NewClient(h.hub, h.chat, h.notifier, conn, room, userID, userName)
	client.Run()
}
