package models

import (
	"time"
)

type OrderItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"size:8;not null;index" json:"order_ref"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order     Order     `gorm:"foreignKey:OrderRef;references:Ref" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
