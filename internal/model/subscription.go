package model

import "time"

// Subscription 订阅关系（subscriber 订阅 author）
type Subscription struct {
	ID           string `gorm:"primaryKey;type:varchar(36)"`
	SubscriberID string `gorm:"type:varchar(36);index:idx_sub_subscriber;index:idx_sub_pair,unique;not null"`
	AuthorID     string `gorm:"type:varchar(36);index:idx_sub_author;index:idx_sub_pair,unique;not null"`
	// 复合唯一键，避免重复订阅
	// idx_sub_pair = (subscriber_id, author_id)
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Subscription) TableName() string { return "subscriptions" }
