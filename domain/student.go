package domain

import (
	"context"
	"time"
)

type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	CourseID  *uint     `json:"course_id"`
	Course    *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StudentUseCase interface {
	Create(ctx context.Context, student *Student) error
	GetAll(ctx context.Context) (*[]Student, error)
	GetByID(ctx context.Context, id uint) (*Student, error)
	Update(ctx context.Context, id uint, student *Student) error
	Delete(ctx context.Context, id uint) error
}

type StudentRepository interface {
	Create(ctx context.Context, student *Student) error
	GetAll(ctx context.Context) (*[]Student, error)
	GetByID(ctx context.Context, id uint) (*Student, error)
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id uint) error
}
