package repository

import (
	"context"
	"fmt"

	"madrasa/domain"

	"gorm.io/gorm"
)

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) domain.NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, item *domain.News) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *newsRepository) GetAll(ctx context.Context) (*[]domain.News, error) {
	var items []domain.News
	err := r.db.WithContext(ctx).
		Order("published_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	return &items, nil
}

func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.News{}, id).Error
}
