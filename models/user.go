package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleMerchant UserRole = "merchant"
)

type User struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null"`
	Email         string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash  string     `json:"-" gorm:"not null"`
	Role          UserRole   `json:"role" gorm:"not null;default:'customer'"`
	Position      string     `json:"position"` // delivery address for customers, shop address for merchants
	Contact       string     `json:"contact"`
	IsVIP         bool       `json:"is_vip" gorm:"default:false"`
	VIPExpireTime *time.Time `json:"vip_expire_time"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// VIPActive reports whether the membership is currently in effect.
// The flag alone is not enough: an expired membership loses its perks.
func (u *User) VIPActive(now time.Time) bool {
	return u.IsVIP && u.VIPExpireTime != nil && u.VIPExpireTime.After(now)
}
