package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID         uint      `gorm:"primaryKey"`
	Title      string    `gorm:"size:100;not null"`
	Content    string    `gorm:"type:text;not null"`
	DatePosted time.Time `gorm:"not null;index"`
	UserID     uint      `gorm:"not null;index"`
	Author     User      `gorm:"foreignKey:UserID"`
}

func (Post) TableName() string {
	return "post"
}

// Дата публикации по умолчанию — момент создания
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.DatePosted.IsZero() {
		p.DatePosted = time.Now().UTC()
	}
	return nil
}

// IsAuthor сообщает, написан ли пост пользователем userID
func (p *Post) IsAuthor(userID uint) bool {
	return p.UserID == userID
}
