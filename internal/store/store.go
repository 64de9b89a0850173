package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("запись не найдена")
	ErrConflict = errors.New("имя пользователя или email уже заняты")
)

// Store объединяет сервисы доступа к данным поверх одного соединения gorm
type Store struct {
	Users    *UserService
	Posts    *PostService
	Sessions *SessionService
}

func New(db *gorm.DB) *Store {
	return &Store{
		Users:    NewUserService(db),
		Posts:    NewPostService(db),
		Sessions: NewSessionService(db),
	}
}

// notFound оборачивает gorm.ErrRecordNotFound в ErrNotFound, сохраняя исходную ошибку
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
