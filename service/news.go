package service

import (
	"context"
	"time"

	"madrasa/domain"
)

type newsService struct {
	repo domain.NewsRepository
}

func NewNewsService(repo domain.NewsRepository) domain.NewsUseCase {
	return &newsService{repo: repo}
}

func (s *newsService) Publish(ctx context.Context, item *domain.News) error {
	if item.PublishedAt.IsZero() {
		item.PublishedAt = time.Now()
	}
	return s.repo.Create(ctx, item)
}

func (s *newsService) GetAll(ctx context.Context) (*[]domain.News, error) {
	return s.repo.GetAll(ctx)
}

func (s *newsService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
