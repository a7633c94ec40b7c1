// Package service implements the business logic between handlers and storage.
package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/dto"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/repository"
)

// ChatService owns the room directory, the message operations used by live
// connections, and the non-realtime read surface (room list, history, unread
// badge). It is deliberately cache-free: every unread count is read straight
// from the store so it reflects the latest mark-read immediately.
type ChatService struct {
	roomRepo    repository.RoomRepository
	messageRepo repository.MessageRepository
	catalog     repository.ItemCatalog
	userRepo    repository.UserRepository
}

// NewChatService creates a ChatService.
func NewChatService(
	roomRepo repository.RoomRepository,
	messageRepo repository.MessageRepository,
	catalog repository.ItemCatalog,
	userRepo repository.UserRepository,
) *ChatService {
	if roomRepo == nil || messageRepo == nil || catalog == nil || userRepo == nil {
		panic("ChatService dependencies cannot be nil")
	}
	return &ChatService{
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		catalog:     catalog,
		userRepo:    userRepo,
	}
}

// GetOrCreateRoom resolves the single room for (itemID, buyerID), creating it
// with seller = the item's current owner if it does not exist yet. A buyer
// cannot open a room on their own item.
func (s *ChatService) GetOrCreateRoom(ctx context.Context, itemID, buyerID uint) (*domain.Room, bool, error) {
	logCtx := logrus.WithFields(logrus.Fields{"item_id": itemID, "buyer_id": buyerID})

	ownerID, err := s.catalog.GetOwner(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			logCtx.Warn("GetOrCreateRoom: item not found")
			return nil, false, ErrItemNotFound
		}
		logCtx.WithError(err).Error("GetOrCreateRoom: catalog lookup failed")
		return nil, false, ErrInternalServer
	}
	if ownerID == buyerID {
		logCtx.Warn("GetOrCreateRoom: buyer owns the item")
		return nil, false, ErrSelfNegotiation
	}

	room := &domain.Room{ItemID: itemID, BuyerID: buyerID, SellerID: ownerID}
	created, err := s.roomRepo.GetOrCreate(ctx, room)
	if err != nil {
		logCtx.WithError(err).Error("GetOrCreateRoom: repository failed")
		return nil, false, ErrInternalServer
	}
	if created {
		logCtx.WithField("room_id", room.ID).Info("Room created")
	}
	return room, created, nil
}

// AuthorizeConnection validates a handshake: the room must exist and the
// caller must be its buyer or seller. Handlers translate both failures into
// the same refusal so unauthorized callers cannot probe room existence.
func (s *ChatService) AuthorizeConnection(ctx context.Context, roomID, userID uint) (*domain.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithField("room_id", roomID).Error("AuthorizeConnection: repository failed")
		return nil, ErrInternalServer
	}
	if !room.IsParticipant(userID) {
		return nil, ErrNotParticipant
	}
	return room, nil
}

// SendMessage persists a chat message. The store stamps CreatedAt and bumps
// the room's updated_at; callers broadcast only after this returns, so a
// broadcast never describes state absent from durable storage.
func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID uint, content string) (*domain.Message, error) {
	msg := &domain.Message{RoomID: roomID, SenderID: senderID, Content: content}
	if err := s.messageRepo.Save(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		logrus.WithError(err).WithFields(logrus.Fields{"room_id": roomID, "sender_id": senderID}).
			Error("SendMessage: persist failed")
		return nil, ErrInternalServer
	}
	return msg, nil
}

// MarkMessagesRead flips the requested messages to read, excluding the
// caller's own, and returns the ids that actually changed.
func (s *ChatService) MarkMessagesRead(ctx context.Context, roomID, userID uint, messageIDs []uint) ([]uint, error) {
	affected, err := s.messageRepo.MarkRead(ctx, roomID, messageIDs, userID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"room_id": roomID, "user_id": userID}).
			Error("MarkMessagesRead: repository failed")
		return nil, ErrInternalServer
	}
	return affected, nil
}

// DisplayName resolves the username attached to outbound events.
func (s *ChatService) DisplayName(ctx context.Context, userID uint) (string, error) {
	name, err := s.userRepo.DisplayName(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternalServer
	}
	return name, nil
}

// RoomMessages returns a room's full history for a participant. Opening the
// room counts as reading it: the counterpart's unread messages are marked
// read first, so the returned payload already reflects the side effect.
func (s *ChatService) RoomMessages(ctx context.Context, roomID, userID uint) ([]domain.Message, error) {
	if _, err := s.AuthorizeConnection(ctx, roomID, userID); err != nil {
		return nil, err
	}
	if _, err := s.messageRepo.MarkAllRead(ctx, roomID, userID); err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Error("RoomMessages: mark all read failed")
		return nil, ErrInternalServer
	}
	messages, err := s.messageRepo.ListByRoom(ctx, roomID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", roomID).Error("RoomMessages: list failed")
		return nil, ErrInternalServer
	}
	return messages, nil
}

// ListRooms returns the user's rooms ordered by latest activity, each wrapped
// with the counterpart's profile, the item, the last message, and the per-room
// unread count.
func (s *ChatService) ListRooms(ctx context.Context, userID uint) ([]dto.RoomSummary, error) {
	rooms, err := s.roomRepo.ListForUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("ListRooms: repository failed")
		return nil, ErrInternalServer
	}

	summaries := make([]dto.RoomSummary, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]
		summary, err := s.roomSummary(ctx, room, userID)
		if err != nil {
			// A room with a dangling item or user row is logged and skipped
			// rather than failing the whole list.
			logrus.WithError(err).WithField("room_id", room.ID).Warn("ListRooms: skipping room")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *ChatService) roomSummary(ctx context.Context, room *domain.Room, userID uint) (dto.RoomSummary, error) {
	item, err := s.catalog.FindByID(ctx, room.ItemID)
	if err != nil {
		return dto.RoomSummary{}, err
	}
	other, err := s.userRepo.FindByID(ctx, room.OtherParticipant(userID))
	if err != nil {
		return dto.RoomSummary{}, err
	}
	last, err := s.messageRepo.LastInRoom(ctx, room.ID)
	if err != nil {
		return dto.RoomSummary{}, err
	}
	unread, err := s.messageRepo.CountUnreadInRoom(ctx, room.ID, userID)
	if err != nil {
		return dto.RoomSummary{}, err
	}

	summary := dto.RoomSummary{
		ID:          room.ID,
		Item:        dto.NewItemInfo(item),
		OtherUser:   dto.NewUserInfo(other),
		UnreadCount: unread,
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
	if last != nil {
		summary.LastMessage = &dto.LastMessage{
			Content:   last.Content,
			SenderID:  last.SenderID,
			CreatedAt: last.CreatedAt,
			IsRead:    last.IsRead,
		}
	}
	return summary, nil
}

// RoomDetail returns one room with both participants and the item, for a
// participant.
func (s *ChatService) RoomDetail(ctx context.Context, roomID, userID uint) (*dto.RoomDetail, error) {
	room, err := s.AuthorizeConnection(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	return s.buildRoomDetail(ctx, room)
}

func (s *ChatService) buildRoomDetail(ctx context.Context, room *domain.Room) (*dto.RoomDetail, error) {
	item, err := s.catalog.FindByID(ctx, room.ItemID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", room.ID).Error("RoomDetail: item lookup failed")
		return nil, ErrInternalServer
	}
	buyer, err := s.userRepo.FindByID(ctx, room.BuyerID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", room.ID).Error("RoomDetail: buyer lookup failed")
		return nil, ErrInternalServer
	}
	seller, err := s.userRepo.FindByID(ctx, room.SellerID)
	if err != nil {
		logrus.WithError(err).WithField("room_id", room.ID).Error("RoomDetail: seller lookup failed")
		return nil, ErrInternalServer
	}
	return &dto.RoomDetail{
		ID:        room.ID,
		Item:      dto.NewItemInfo(item),
		Buyer:     dto.NewUserInfo(buyer),
		Seller:    dto.NewUserInfo(seller),
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}, nil
}

// DetailForRoom builds the detail payload for a room the caller already holds,
// used by the create-or-get endpoint to avoid a second authorization pass.
func (s *ChatService) DetailForRoom(ctx context.Context, room *domain.Room) (*dto.RoomDetail, error) {
	return s.buildRoomDetail(ctx, room)
}

// UnreadCount returns the user's total unread badge across all rooms,
// straight from the store.
func (s *ChatService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	count, err := s.messageRepo.CountUnreadTotal(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("UnreadCount: repository failed")
		return 0, ErrInternalServer
	}
	return count, nil
}
