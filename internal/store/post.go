package store

import (
	"context"
	"fmt"

	"github.com/Priteshsurale/blogging-website/internal/models"
	"gorm.io/gorm"
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (ps *PostService) Create(ctx context.Context, userID uint, title, content string) (*models.Post, error) {
	post := models.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	if err := ps.db.WithContext(ctx).Omit("Author").Create(&post).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания поста: %w", err)
	}
	return &post, nil
}

// Get возвращает пост вместе с автором
func (ps *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := ps.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (ps *PostService) Update(ctx context.Context, post *models.Post) error {
	err := ps.db.WithContext(ctx).Model(post).Select("Title", "Content").Updates(post).Error
	if err != nil {
		return fmt.Errorf("ошибка обновления поста: %w", err)
	}
	return nil
}

func (ps *PostService) Delete(ctx context.Context, id uint) error {
	res := ps.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("ошибка удаления поста: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound)
	}
	return nil
}

// List — все посты, новые сверху
func (ps *PostService) List(ctx context.Context, page, perPage int) (*Page, error) {
	return ps.paginate(ps.db.WithContext(ctx).Model(&models.Post{}), page, perPage)
}

// ListByAuthor — посты одного автора, новые сверху
func (ps *PostService) ListByAuthor(ctx context.Context, userID uint, page, perPage int) (*Page, error) {
	q := ps.db.WithContext(ctx).Model(&models.Post{}).Where("user_id = ?", userID)
	return ps.paginate(q, page, perPage)
}

func (ps *PostService) paginate(q *gorm.DB, page, perPage int) (*Page, error) {
	page, perPage = normalize(page, perPage)
	p := &Page{Number: page, PerPage: perPage}

	if err := q.Session(&gorm.Session{}).Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("ошибка подсчёта постов: %w", err)
	}
	err := q.Session(&gorm.Session{}).
		Preload("Author").
		Order("date_posted DESC").
		Order("id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&p.Items).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки постов: %w", err)
	}
	return p, nil
}
