// Package domain defines the persistent data model of the marketplace chat.
package domain

import "time"

// User is a marketplace account. Email is the login identifier and must be
// unique; the username is display-only and may repeat across accounts.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex:idx_email;not null" json:"email"`
	Username     string    `gorm:"type:varchar(100);not null" json:"username"`
	Password     string    `gorm:"type:text;not null" json:"-"`
	ProfileImage string    `gorm:"type:varchar(200)" json:"profile_image"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
