package setup

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// MigrateDB applies the schema for all persistent models. The unique index on
// rooms(item_id, buyer_id) is what enforces one room per (item, buyer) pair.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Item{},
		&domain.Room{},
		&domain.Message{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate tables: %w", err)
	}
	return nil
}
