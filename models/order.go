package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAccepted  OrderStatus = "accepted"
	StatusCompleted OrderStatus = "completed"
	StatusRejected  OrderStatus = "rejected"
	StatusCancelled OrderStatus = "cancelled"
)

// SnapshotPair is one line of an order's cart snapshot, stored as a
// two-element JSON array [foodID, quantity]. Historical orders were
// persisted in exactly this shape, so it must not change.
type SnapshotPair [2]int64

func NewSnapshotPair(foodID uint, quantity int) SnapshotPair {
	return SnapshotPair{int64(foodID), int64(quantity)}
}

func (p SnapshotPair) FoodID() uint  { return uint(p[0]) }
func (p SnapshotPair) Quantity() int { return int(p[1]) }

// CartSnapshot is the ordered sequence of [foodID, quantity] pairs
// captured at checkout. Later catalog edits never touch it.
type CartSnapshot = datatypes.JSONSlice[SnapshotPair]

type Order struct {
	ID         uint         `json:"id" gorm:"primaryKey"`
	MerchantID uint         `json:"merchant_id" gorm:"not null;index"`
	Merchant   User         `json:"merchant,omitempty" gorm:"foreignKey:MerchantID"`
	CustomerID uint         `json:"customer_id" gorm:"not null;index"`
	Customer   User         `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	CheckoutID string       `json:"checkout_id" gorm:"index"` // shared by orders created in one checkout
	Cart       CartSnapshot `json:"cart"`
	TotalPrice int64        `json:"total_price" gorm:"not null"`
	Status     OrderStatus  `json:"status" gorm:"not null;default:'pending'"`
	Events     []OrderEvent `json:"events,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// OrderEvent records every lifecycle transition for audit
type OrderEvent struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ActorID    uint        `json:"actor_id"` // user who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
