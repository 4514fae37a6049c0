package models

import (
	"time"
)

// Order status lifecycle. Status only ever moves pending -> served.
const (
	StatusPending = "pending"
	StatusServed  = "served"
)

type Order struct {
	Ref          string      `gorm:"primaryKey;size:8" json:"ref"`
	CustomerID   int64       `gorm:"not null;index" json:"customer_id"`
	CustomerName string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	Status       string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Total        float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Items        []OrderItem `gorm:"foreignKey:OrderRef;references:Ref;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
}

// IsPending reports whether the order is still waiting in the queue.
func (o *Order) IsPending() bool {
	return o.Status == StatusPending
}
