package service

import (
	"context"

	"madrasa/domain"
	"madrasa/utils"
)

type studentService struct {
	repo domain.StudentRepository
}

func NewStudentService(repo domain.StudentRepository) domain.StudentUseCase {
	return &studentService{repo: repo}
}

func (s *studentService) Create(ctx context.Context, student *domain.Student) error {
	student.Email = utils.NormalizeEmail(student.Email)
	return s.repo.Create(ctx, student)
}

func (s *studentService) GetAll(ctx context.Context) (*[]domain.Student, error) {
	return s.repo.GetAll(ctx)
}

func (s *studentService) GetByID(ctx context.Context, id uint) (*domain.Student, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *studentService) Update(ctx context.Context, id uint, student *domain.Student) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	existing.Name = student.Name
	existing.Email = utils.NormalizeEmail(student.Email)
	existing.Phone = student.Phone
	existing.CourseID = student.CourseID
	existing.Course = nil

	return s.repo.Update(ctx, existing)
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
