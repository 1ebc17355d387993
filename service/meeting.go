package service

import (
	"context"
	"errors"

	"madrasa/domain"
)

type meetingService struct {
	repo       domain.MeetingRepository
	courseRepo domain.CourseRepository
}

func NewMeetingService(repo domain.MeetingRepository, courseRepo domain.CourseRepository) domain.MeetingUseCase {
	return &meetingService{repo: repo, courseRepo: courseRepo}
}

func (s *meetingService) Schedule(ctx context.Context, meeting *domain.Meeting) error {
	if _, err := s.courseRepo.GetByID(ctx, meeting.CourseID); err != nil {
		return errors.New("course not found")
	}
	meeting.Status = domain.MeetingStatusScheduled
	return s.repo.Create(ctx, meeting)
}

func (s *meetingService) GetAll(ctx context.Context) (*[]domain.Meeting, error) {
	return s.repo.GetAll(ctx)
}

func (s *meetingService) GetByID(ctx context.Context, id uint) (*domain.Meeting, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *meetingService) Cancel(ctx context.Context, id uint) error {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if meeting.Status == domain.MeetingStatusCancelled {
		return errors.New("meeting already cancelled")
	}
	return s.repo.UpdateStatus(ctx, id, domain.MeetingStatusCancelled)
}
