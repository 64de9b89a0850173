package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Priteshsurale/blogging-website/internal/models"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create сохраняет нового пользователя; пароль должен быть уже захеширован
func (us *UserService) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user := models.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
	}
	if err := us.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return &user, nil
}

func (us *UserService) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := us.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (us *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	return us.findBy(ctx, "email", email)
}

func (us *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return us.findBy(ctx, "username", username)
}

// UsernameTaken проверяет, занято ли имя кем-то, кроме exceptID
func (us *UserService) UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error) {
	return us.taken(ctx, "username", username, exceptID)
}

func (us *UserService) EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error) {
	return us.taken(ctx, "email", email, exceptID)
}

// UpdateAccount сохраняет имя, email и аватар пользователя
func (us *UserService) UpdateAccount(ctx context.Context, user *models.User) error {
	err := us.db.WithContext(ctx).Model(user).Select("Username", "Email", "ImageFile").Updates(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return fmt.Errorf("ошибка обновления аккаунта: %w", err)
	}
	return nil
}

func (us *UserService) SetPassword(ctx context.Context, id uint, passwordHash string) error {
	res := us.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("ошибка смены пароля: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (us *UserService) findBy(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User
	if err := us.db.WithContext(ctx).Where(column+" = ?", value).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (us *UserService) taken(ctx context.Context, column, value string, exceptID uint) (bool, error) {
	var count int64
	q := us.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("ошибка проверки %s: %w", column, err)
	}
	return count > 0, nil
}

