// Package gormpersistence implements the repository contracts on GORM/MySQL.
package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/repository"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations.
const mysqlDuplicateEntry = 1062

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}

// GormRoomRepository is the GORM implementation of RoomRepository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRoomRepository")
	}
	return &GormRoomRepository{db: db}
}

// GetOrCreate converges on the single room for room's (item, buyer) pair.
// The fast path reuses an existing row; otherwise an insert is attempted and
// a duplicate-key failure means a concurrent caller won the race, so the row
// it created is loaded instead. Both callers end up with the same room.
func (r *GormRoomRepository) GetOrCreate(ctx context.Context, room *domain.Room) (bool, error) {
	var existing domain.Room
	err := r.db.WithContext(ctx).
		Where("item_id = ? AND buyer_id = ?", room.ItemID, room.BuyerID).
		First(&existing).Error
	if err == nil {
		*room = existing
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("gorm: find room for item %d buyer %d: %w", room.ItemID, room.BuyerID, err)
	}

	err = r.db.WithContext(ctx).Create(room).Error
	if err == nil {
		return true, nil
	}
	if !isDuplicateEntry(err) {
		return false, fmt.Errorf("gorm: create room for item %d buyer %d: %w", room.ItemID, room.BuyerID, err)
	}

	// Lost the race; the winner's row must exist now.
	err = r.db.WithContext(ctx).
		Where("item_id = ? AND buyer_id = ?", room.ItemID, room.BuyerID).
		First(&existing).Error
	if err != nil {
		return false, fmt.Errorf("gorm: refetch room for item %d buyer %d: %w", room.ItemID, room.BuyerID, err)
	}
	*room = existing
	return false, nil
}

// FindByID loads a room by primary key.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uint) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoomNotFound
		}
		return nil, fmt.Errorf("gorm: find room by id %d: %w", id, err)
	}
	return &room, nil
}

// ListForUser returns the user's rooms, most recently active first.
func (r *GormRoomRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list rooms for user %d: %w", userID, err)
	}
	return rooms, nil
}
