package models

import "time"

type Session struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (Session) TableName() string {
	return "session"
}

func (s *Session) Expired(now time.Time) bool {
	return now.UTC().After(s.ExpiresAt.UTC())
}
