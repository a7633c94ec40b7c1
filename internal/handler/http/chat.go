package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/service"
)

// ChatHandler serves the non-realtime chat surface: room create-or-get, room
// list/detail, message history, and the unread badge.
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	if chatService == nil {
		panic("ChatService cannot be nil for ChatHandler")
	}
	return &ChatHandler{chatService: chatService}
}

// currentUserID pulls the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get("user_id")
	if !exists {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok {
		logrus.Error("Handler: user_id in context is not uint")
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return 0, false
	}
	return userID, true
}

func roomIDParam(c *gin.Context) (uint, bool) {
	roomID64, err := strconv.ParseUint(c.Param("roomId"), 10, 32)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid room ID format")
		return 0, false
	}
	return uint(roomID64), true
}

// CreateRoomRequest is the body of POST /api/chat/rooms.
type CreateRoomRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
}

// CreateOrGetRoom resolves the caller's room for an item, creating it on
// first contact. Responds 201 when a room was created, 200 when an existing
// one was returned.
func (h *ChatHandler) CreateOrGetRoom(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: item_id is required")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": req.ItemID})

	room, created, err := h.chatService.GetOrCreateRoom(c.Request.Context(), req.ItemID, userID)
	if err != nil {
		logCtx.WithError(err).Warn("Handler.CreateOrGetRoom: failed")
		HandleServiceError(c, err)
		return
	}

	detail, err := h.chatService.DetailForRoom(c.Request.Context(), room)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	SuccessResponse(c, status, detail)
}

// ListRooms serves GET /api/chat/rooms: the caller's rooms ordered by latest
// activity.
func (h *ChatHandler) ListRooms(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	rooms, err := h.chatService.ListRooms(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, rooms)
}

// RoomDetail serves GET /api/chat/rooms/:roomId.
func (h *ChatHandler) RoomDetail(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	detail, err := h.chatService.RoomDetail(c.Request.Context(), roomID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, detail)
}

// RoomMessages serves GET /api/chat/rooms/:roomId/messages: the full history
// in created-at order. Fetching it marks the counterpart's messages read.
func (h *ChatHandler) RoomMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	roomID, ok := roomIDParam(c)
	if !ok {
		return
	}

	messages, err := h.chatService.RoomMessages(c.Request.Context(), roomID, userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, messages)
}

// UnreadCount serves GET /api/chat/unread-count: the caller's total unread
// badge across all rooms.
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.chatService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"unread_count": count})
}
