package service

import (
	"context"
	"strings"

	"madrasa/domain"
)

type courseService struct {
	repo domain.CourseRepository
}

func NewCourseService(repo domain.CourseRepository) domain.CourseUseCase {
	return &courseService{repo: repo}
}

func (s *courseService) Create(ctx context.Context, course *domain.Course) error {
	course.DayOfWeek = strings.ToLower(course.DayOfWeek)
	return s.repo.Create(ctx, course)
}

func (s *courseService) GetAll(ctx context.Context) (*[]domain.Course, error) {
	return s.repo.GetAll(ctx)
}

func (s *courseService) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *courseService) Update(ctx context.Context, id uint, course *domain.Course) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Title = course.Title
	existing.TitleAr = course.TitleAr
	existing.Description = course.Description
	existing.DescriptionAr = course.DescriptionAr
	existing.TeacherName = course.TeacherName
	existing.DayOfWeek = strings.ToLower(course.DayOfWeek)
	existing.StartTime = course.StartTime
	existing.DurationHours = course.DurationHours

	return s.repo.Update(ctx, existing)
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
