package dto

import (
	"madrasa/domain"
	"madrasa/utils"
)

type CourseRequest struct {
	Title         string  `json:"title" binding:"required,min=3,max=100"`
	TitleAr       string  `json:"title_ar" binding:"omitempty,max=100"`
	Description   string  `json:"description" binding:"omitempty,max=2000"`
	DescriptionAr string  `json:"description_ar" binding:"omitempty,max=2000"`
	TeacherName   string  `json:"teacher_name" binding:"required,min=3,max=50"`
	DayOfWeek     string  `json:"day_of_week" binding:"required,weekday"`
	StartTime     string  `json:"start_time" binding:"required,timeformat"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0,lte=8"`
}

func MapCourseRequest(req *CourseRequest) domain.Course {
	return domain.Course{
		Title:         req.Title,
		TitleAr:       req.TitleAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		TeacherName:   req.TeacherName,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
	}
}

type CourseResponse struct {
	domain.Course
	DayDisplay string `json:"day_display"`
	EndTime    string `json:"end_time"`
}

func MapCourseResponse(course domain.Course) CourseResponse {
	return CourseResponse{
		Course:     course,
		DayDisplay: utils.WeekdayTitle(course.DayOfWeek),
		EndTime:    utils.CalculateEndTime(course.StartTime, course.DurationHours),
	}
}
