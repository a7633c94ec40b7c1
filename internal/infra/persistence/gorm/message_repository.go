package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/repository"
)

// GormMessageRepository is the GORM implementation of MessageRepository.
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a GormMessageRepository.
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMessageRepository")
	}
	return &GormMessageRepository{db: db}
}

// Save inserts the message and bumps the room's updated_at in one transaction,
// so room-list ordering always reflects the latest message. The store assigns
// ID and CreatedAt; CreatedAt is the authoritative message order.
func (r *GormMessageRepository) Save(ctx context.Context, msg *domain.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room domain.Room
		if err := tx.First(&room, msg.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrRoomNotFound
			}
			return fmt.Errorf("gorm: find room %d for message: %w", msg.RoomID, err)
		}
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("gorm: create message in room %d: %w", msg.RoomID, err)
		}
		err := tx.Model(&domain.Room{}).
			Where("id = ?", msg.RoomID).
			Update("updated_at", time.Now()).Error
		if err != nil {
			return fmt.Errorf("gorm: touch room %d: %w", msg.RoomID, err)
		}
		return nil
	})
}

// MarkRead flips is_read for the requested messages a different sender wrote.
// The eligible ids are selected and updated inside one transaction so the
// returned slice names exactly the rows that changed; already-read or foreign
// ids simply drop out, which makes repeated calls no-ops.
func (r *GormMessageRepository) MarkRead(ctx context.Context, roomID uint, messageIDs []uint, excludeSenderID uint) ([]uint, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	var affected []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Message{}).
			Where("room_id = ? AND id IN ?", roomID, messageIDs).
			Where("sender_id <> ? AND is_read = ?", excludeSenderID, false).
			Pluck("id", &affected).Error
		if err != nil {
			return fmt.Errorf("gorm: select unread messages in room %d: %w", roomID, err)
		}
		if len(affected) == 0 {
			return nil
		}
		err = tx.Model(&domain.Message{}).
			Where("id IN ?", affected).
			Update("is_read", true).Error
		if err != nil {
			return fmt.Errorf("gorm: mark messages read in room %d: %w", roomID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

// MarkAllRead marks every unread message in the room the excluded sender did
// not write. Used when a participant opens the room.
func (r *GormMessageRepository) MarkAllRead(ctx context.Context, roomID uint, excludeSenderID uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = ?", roomID, excludeSenderID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, fmt.Errorf("gorm: mark all read in room %d: %w", roomID, result.Error)
	}
	return result.RowsAffected, nil
}

// CountUnreadTotal counts unread messages addressed to the user across every
// room they participate in. The sender exclusion keeps a user's own unread
// messages out of their badge.
func (r *GormMessageRepository) CountUnreadTotal(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Joins("JOIN rooms ON rooms.id = messages.room_id").
		Where("rooms.buyer_id = ? OR rooms.seller_id = ?", userID, userID).
		Where("messages.is_read = ? AND messages.sender_id <> ?", false, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count unread for user %d: %w", userID, err)
	}
	return count, nil
}

// CountUnreadInRoom counts unread messages addressed to the user in one room.
func (r *GormMessageRepository) CountUnreadInRoom(ctx context.Context, roomID uint, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("room_id = ? AND is_read = ? AND sender_id <> ?", roomID, false, userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count unread in room %d for user %d: %w", roomID, userID, err)
	}
	return count, nil
}

// ListByRoom returns the room's history in display order.
func (r *GormMessageRepository) ListByRoom(ctx context.Context, roomID uint) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list messages in room %d: %w", roomID, err)
	}
	return messages, nil
}

// LastInRoom returns the newest message, or nil for an empty room.
func (r *GormMessageRepository) LastInRoom(ctx context.Context, roomID uint) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("gorm: last message in room %d: %w", roomID, err)
	}
	return &msg, nil
}
