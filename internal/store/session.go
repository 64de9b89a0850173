package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionExpired = errors.New("сессия истекла")

type SessionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db, now: time.Now}
}

// Create открывает новую сессию; прежние сессии пользователя удаляются
func (ss *SessionService) Create(ctx context.Context, userID uint, ttl time.Duration) (*models.Session, error) {
	session := models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: ss.now().UTC().Add(ttl),
	}
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания сессии: %w", err)
	}
	return &session, nil
}

// User возвращает владельца действующей сессии
func (ss *SessionService) User(ctx context.Context, sessionID string) (*models.User, error) {
	var session models.Session
	if err := ss.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error; err != nil {
		return nil, notFound(err)
	}
	if session.Expired(ss.now()) {
		return nil, ErrSessionExpired
	}

	var user models.User
	if err := ss.db.WithContext(ctx).First(&user, session.UserID).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (ss *SessionService) Delete(ctx context.Context, sessionID string) error {
	return ss.db.WithContext(ctx).Delete(&models.Session{}, "id = ?", sessionID).Error
}

// CleanupExpired удаляет просроченные сессии и возвращает их количество
func (ss *SessionService) CleanupExpired(ctx context.Context) (int64, error) {
	res := ss.db.WithContext(ctx).Where("expires_at < ?", ss.now().UTC()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("ошибка очистки сессий: %w", res.Error)
	}
	return res.RowsAffected, nil
}
