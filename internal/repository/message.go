package repository

import (
	"context"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// MessageRepository stores chat messages and their read state.
type MessageRepository interface {
	// Save persists msg, letting the store assign ID and CreatedAt, and bumps
	// the owning room's updated_at in the same transaction. Returns
	// ErrRoomNotFound if the room does not exist.
	Save(ctx context.Context, msg *domain.Message) error

	// MarkRead sets is_read on the given messages of a room, skipping any the
	// excluded sender wrote and any already read. It returns the ids it
	// actually flipped; re-invoking with already-read ids is a no-op.
	MarkRead(ctx context.Context, roomID uint, messageIDs []uint, excludeSenderID uint) ([]uint, error)

	// MarkAllRead applies MarkRead semantics to every unread message in the
	// room the excluded sender did not write.
	MarkAllRead(ctx context.Context, roomID uint, excludeSenderID uint) (int64, error)

	// CountUnreadTotal counts unread messages across all rooms where the user
	// is buyer or seller, never counting the user's own messages.
	CountUnreadTotal(ctx context.Context, userID uint) (int64, error)

	// CountUnreadInRoom is CountUnreadTotal scoped to one room.
	CountUnreadInRoom(ctx context.Context, roomID uint, userID uint) (int64, error)

	// ListByRoom returns the room's full history ordered by created_at ascending.
	ListByRoom(ctx context.Context, roomID uint) ([]domain.Message, error)

	// LastInRoom returns the newest message of a room, or nil if it has none.
	LastInRoom(ctx context.Context, roomID uint) (*domain.Message, error)
}
