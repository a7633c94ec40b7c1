// Package repository declares the storage contracts consumed by the chat core.
package repository

import (
	"context"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// RoomRepository stores negotiation rooms.
type RoomRepository interface {
	// GetOrCreate inserts room if no row exists for its (item, buyer) pair,
	// otherwise loads the existing row into room. It reports whether a new
	// row was created. Concurrent calls for the same pair must converge on
	// one row; the unique constraint, not a prior existence check, decides.
	GetOrCreate(ctx context.Context, room *domain.Room) (created bool, err error)

	// FindByID returns the room or ErrRoomNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Room, error)

	// ListForUser returns every room where the user is buyer or seller,
	// ordered by updated_at descending.
	ListForUser(ctx context.Context, userID uint) ([]domain.Room, error)
}
