package dto

import (
	"time"

	"madrasa/domain"
	"madrasa/utils"
)

type MeetingRequest struct {
	CourseID      uint    `json:"course_id" binding:"required,min=1"`
	Title         string  `json:"title" binding:"required,min=3,max=100"`
	MeetingDate   string  `json:"meeting_date" binding:"required,datetime=2006-01-02"`
	StartTime     string  `json:"start_time" binding:"required,timeformat"`
	DurationHours float64 `json:"duration_hours" binding:"required,gt=0,lte=8"`
}

func MapMeetingRequest(req *MeetingRequest) (domain.Meeting, error) {
	date, err := time.Parse("2006-01-02", req.MeetingDate)
	if err != nil {
		return domain.Meeting{}, err
	}
	return domain.Meeting{
		CourseID:      req.CourseID,
		Title:         req.Title,
		MeetingDate:   date,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
	}, nil
}

type MeetingResponse struct {
	domain.Meeting
	EndTime string `json:"end_time"`
}

func MapMeetingResponse(meeting domain.Meeting) MeetingResponse {
	return MeetingResponse{
		Meeting: meeting,
		EndTime: utils.CalculateEndTime(meeting.StartTime, meeting.DurationHours),
	}
}
