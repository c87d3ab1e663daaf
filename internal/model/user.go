package model

import "time"

// User 用户主体
type User struct {
	ID        string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string  `json:"name" gorm:"type:varchar(255);not null"`
	Balance   float64 `json:"balance" gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }
