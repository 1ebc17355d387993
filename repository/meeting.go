package repository

import (
	"context"
	"fmt"

	"madrasa/domain"

	"gorm.io/gorm"
)

type meetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) domain.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *domain.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) GetAll(ctx context.Context) (*[]domain.Meeting, error) {
	var meetings []domain.Meeting
	err := r.db.WithContext(ctx).
		Preload("Course").
		Order("meeting_date, start_time").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meetings: %w", err)
	}
	return &meetings, nil
}

func (r *meetingRepository) GetByID(ctx context.Context, id uint) (*domain.Meeting, error) {
	var meeting domain.Meeting
	err := r.db.WithContext(ctx).
		Preload("Course").
		First(&meeting, id).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Meeting{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}
