// Package dto holds the response shapes of the non-realtime chat surface.
package dto

import (
	"time"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// UserInfo is the participant view embedded in room payloads.
type UserInfo struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// NewUserInfo projects a directory user into its room payload form.
func NewUserInfo(u *domain.User) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

// ItemInfo is the listed-item view embedded in room payloads.
type ItemInfo struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	SellingPrice  int    `json:"selling_price"`
	SaleCondition string `json:"sale_condition"`
}

// NewItemInfo projects a catalog item into its room payload form.
func NewItemInfo(i *domain.Item) ItemInfo {
	return ItemInfo{
		ID:            i.ID,
		Title:         i.Title,
		SellingPrice:  i.SellingPrice,
		SaleCondition: i.SaleCondition,
	}
}

// LastMessage is the preview of a room's most recent message.
type LastMessage struct {
	Content   string    `json:"content"`
	SenderID  uint      `json:"sender_id"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}

// RoomSummary is one entry of the room list, ordered by UpdatedAt descending.
type RoomSummary struct {
	ID          uint         `json:"id"`
	Item        ItemInfo     `json:"item"`
	OtherUser   UserInfo     `json:"other_user"`
	LastMessage *LastMessage `json:"last_message"`
	UnreadCount int64        `json:"unread_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RoomDetail is the full view of one room.
type RoomDetail struct {
	ID        uint      `json:"id"`
	Item      ItemInfo  `json:"item"`
	Buyer     UserInfo  `json:"buyer"`
	Seller    UserInfo  `json:"seller"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
