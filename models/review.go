package models

import "time"

// Review is written once per completed order and never edited.
// MerchantID is denormalized from the order for rating queries.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"uniqueIndex;not null"`
	CustomerID uint      `json:"customer_id" gorm:"not null;index"`
	Customer   User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	MerchantID uint      `json:"merchant_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
