package dto

import "madrasa/domain"

type NewsRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=150"`
	TitleAr string `json:"title_ar" binding:"omitempty,max=150"`
	Body    string `json:"body" binding:"required,min=3"`
	BodyAr  string `json:"body_ar" binding:"omitempty"`
}

func MapNewsRequest(req *NewsRequest) domain.News {
	return domain.News{
		Title:   req.Title,
		TitleAr: req.TitleAr,
		Body:    req.Body,
		BodyAr:  req.BodyAr,
	}
}
