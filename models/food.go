package models

import "time"

// Food is a menu item owned by a merchant. Prices are integer minor
// currency units, matching historical order totals.
type Food struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	MerchantID  uint      `json:"merchant_id" gorm:"not null;index"`
	Merchant    User      `json:"merchant,omitempty" gorm:"foreignKey:MerchantID"`
	Name        string    `json:"name" gorm:"not null"`
	Price       int64     `json:"price" gorm:"not null"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
