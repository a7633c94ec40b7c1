package domain

import "time"

// Room is a negotiation thread between one buyer and the seller of one item.
// The composite unique index guarantees at most one room per (item, buyer)
// pair; concurrent creation attempts converge through the constraint rather
// than an application-side existence check.
//
// SellerID is copied from the item's owner when the room is created and is
// never re-derived afterwards, even if the item changes hands later.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    uint      `gorm:"uniqueIndex:idx_item_buyer;not null" json:"item_id"`
	BuyerID   uint      `gorm:"uniqueIndex:idx_item_buyer;not null" json:"buyer_id"`
	SellerID  uint      `gorm:"index;not null" json:"seller_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index" json:"updated_at"`
}

// IsParticipant reports whether userID is the room's buyer or seller.
func (r *Room) IsParticipant(userID uint) bool {
	return userID == r.BuyerID || userID == r.SellerID
}

// OtherParticipant returns the counterpart of userID in this room.
// Callers must pass a participant.
func (r *Room) OtherParticipant(userID uint) uint {
	if userID == r.BuyerID {
		return r.SellerID
	}
	return r.BuyerID
}
