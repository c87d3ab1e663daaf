package model

import "time"

// Post 内容主体（author_id 指向 User）
type Post struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title     string `json:"title" gorm:"type:varchar(255);not null"`
	Content   string `json:"content" gorm:"type:text;not null"`
	AuthorID  string `json:"authorId" gorm:"type:varchar(36);index:idx_post_author;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Post) TableName() string { return "posts" }
