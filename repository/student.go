package repository

import (
	"context"
	"fmt"

	"madrasa/domain"

	"gorm.io/gorm"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) domain.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *domain.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetAll(ctx context.Context) (*[]domain.Student, error) {
	var students []domain.Student
	err := r.db.WithContext(ctx).
		Preload("Course").
		Order("name").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch students: %w", err)
	}
	return &students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*domain.Student, error) {
	var student domain.Student
	err := r.db.WithContext(ctx).
		Preload("Course").
		First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) Update(ctx context.Context, student *domain.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Student{}, id).Error
}
