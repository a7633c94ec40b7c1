package repository

import (
	"context"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// ItemCatalog is the narrow view of the listing catalog the chat core needs:
// existence, ownership, and the few fields shown next to a room.
type ItemCatalog interface {
	// GetOwner returns the seller id of the item, or ErrItemNotFound.
	GetOwner(ctx context.Context, itemID uint) (uint, error)

	// FindByID returns the item or ErrItemNotFound.
	FindByID(ctx context.Context, itemID uint) (*domain.Item, error)
}
