package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/repository"
)

// GormItemCatalog is the GORM implementation of ItemCatalog.
type GormItemCatalog struct {
	db *gorm.DB
}

// NewGormItemCatalog creates a GormItemCatalog.
func NewGormItemCatalog(db *gorm.DB) *GormItemCatalog {
	if db == nil {
		panic("database connection cannot be nil for GormItemCatalog")
	}
	return &GormItemCatalog{db: db}
}

// GetOwner returns the current seller of the item.
func (r *GormItemCatalog) GetOwner(ctx context.Context, itemID uint) (uint, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).Select("id", "seller_id").First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, repository.ErrItemNotFound
		}
		return 0, fmt.Errorf("gorm: find item %d: %w", itemID, err)
	}
	return item.SellerID, nil
}

// FindByID loads an item by primary key.
func (r *GormItemCatalog) FindByID(ctx context.Context, itemID uint) (*domain.Item, error) {
	var item domain.Item
	err := r.db.WithContext(ctx).First(&item, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}
		return nil, fmt.Errorf("gorm: find item %d: %w", itemID, err)
	}
	return &item, nil
}
