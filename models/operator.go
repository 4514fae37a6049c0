package models

import "time"

// Operator is a dashboard login. The chat-side allow-list is configured via
// ADMIN_IDS; ChatID links a dashboard account to its chat identity.
type Operator struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	ChatID    int64     `gorm:"index" json:"chat_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
