package domain

import "time"

// Sale condition values for a listed item.
const (
	SaleConditionForSale  = "For Sale"
	SaleConditionReserved = "Reserved"
	SaleConditionSoldOut  = "Sold Out"
)

// Item is a listed second-hand item. The chat core only consults it for
// existence and ownership; listing CRUD and search live elsewhere.
type Item struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SellerID      uint      `gorm:"index;not null" json:"seller_id"`
	Title         string    `gorm:"type:varchar(255);not null" json:"title"`
	SaleCondition string    `gorm:"type:varchar(20);not null;default:'For Sale'" json:"sale_condition"`
	SellingPrice  int       `gorm:"not null" json:"selling_price"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
