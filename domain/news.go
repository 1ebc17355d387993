package domain

import (
	"context"
	"time"
)

type News struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	TitleAr     string    `json:"title_ar"`
	Body        string    `gorm:"not null" json:"body"`
	BodyAr      string    `json:"body_ar"`
	PublishedAt time.Time `gorm:"index" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type NewsUseCase interface {
	Publish(ctx context.Context, item *News) error
	GetAll(ctx context.Context) (*[]News, error)
	Delete(ctx context.Context, id uint) error
}

type NewsRepository interface {
	Create(ctx context.Context, item *News) error
	GetAll(ctx context.Context) (*[]News, error)
	Delete(ctx context.Context, id uint) error
}
