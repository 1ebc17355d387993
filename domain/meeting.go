package domain

import (
	"context"
	"time"
)

const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCancelled = "cancelled"
)

type Meeting struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CourseID      uint      `gorm:"not null;index" json:"course_id"`
	Course        *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Title         string    `gorm:"not null" json:"title"`
	MeetingDate   time.Time `gorm:"not null;index" json:"meeting_date"`
	StartTime     string    `gorm:"not null" json:"start_time"` // HH:MM
	DurationHours float64   `gorm:"not null;default:1" json:"duration_hours"`
	Status        string    `gorm:"not null;default:scheduled" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type MeetingUseCase interface {
	Schedule(ctx context.Context, meeting *Meeting) error
	GetAll(ctx context.Context) (*[]Meeting, error)
	GetByID(ctx context.Context, id uint) (*Meeting, error)
	Cancel(ctx context.Context, id uint) error
}

type MeetingRepository interface {
	Create(ctx context.Context, meeting *Meeting) error
	GetAll(ctx context.Context) (*[]Meeting, error)
	GetByID(ctx context.Context, id uint) (*Meeting, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}
