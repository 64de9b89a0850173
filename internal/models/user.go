package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultImageFile = "default.jpg"

// User — зарегистрированный автор блога
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:20;uniqueIndex;not null"`
	Email     string    `gorm:"size:120;uniqueIndex;not null"`
	Password  string    `gorm:"size:60;not null"`
	ImageFile string    `gorm:"size:40;not null;default:default.jpg"`
	Posts     []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (User) TableName() string {
	return "user"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ImageFile == "" {
		u.ImageFile = DefaultImageFile
	}
	return nil
}
