package domain

import (
	"context"
	"time"
)

type Course struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	TitleAr       string    `json:"title_ar"`
	Description   string    `json:"description"`
	DescriptionAr string    `json:"description_ar"`
	TeacherName   string    `gorm:"not null" json:"teacher_name"`
	DayOfWeek     string    `gorm:"not null" json:"day_of_week"` // lowercase english weekday
	StartTime     string    `gorm:"not null" json:"start_time"`  // HH:MM
	DurationHours float64   `gorm:"not null;default:1" json:"duration_hours"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CourseUseCase interface {
	Create(ctx context.Context, course *Course) error
	GetAll(ctx context.Context) (*[]Course, error)
	GetByID(ctx context.Context, id uint) (*Course, error)
	Update(ctx context.Context, id uint, course *Course) error
	Delete(ctx context.Context, id uint) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetAll(ctx context.Context) (*[]Course, error)
	GetByID(ctx context.Context, id uint) (*Course, error)
	Update(ctx context.Context, course *Course) error
	Delete(ctx context.Context, id uint) error
}
