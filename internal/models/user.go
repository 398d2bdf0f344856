package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCashier UserRole = "kasiyer"
)

type User struct {
	ID uint `gorm:"primaryKey"`
	// Hesap sahibi. Admin için kendi ID'si, kasiyer için bağlı olduğu
	// adminin ID'si. Tüm veriler bu kimlikle scope'lanır.
	OwnerID      uint     `gorm:"index"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
