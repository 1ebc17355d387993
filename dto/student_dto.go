package dto

import "madrasa/domain"

type StudentRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,numeric,min=9,max=14"`
	CourseID *uint  `json:"course_id" binding:"omitempty,min=1"`
}

func MapStudentRequest(req *StudentRequest) domain.Student {
	return domain.Student{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		CourseID: req.CourseID,
	}
}
