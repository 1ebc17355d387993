package delivery

import (
	"net/http"

	"madrasa/domain"
	"madrasa/dto"
	"madrasa/middleware"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
)

type MeetingHandler struct {
	meetingUC domain.MeetingUseCase
}

func NewMeetingHandler(r *gin.Engine, meetingUC domain.MeetingUseCase, tokens *utils.SessionTokenManager, authUC domain.AuthUseCase) {
	handler := &MeetingHandler{meetingUC: meetingUC}

	protected := r.Group("/api/admin/meetings")
	protected.Use(middleware.AdminAuth(tokens, authUC), middleware.AdminOnly())
	{
		protected.POST("", handler.Schedule)
		protected.GET("", handler.GetAll)
		protected.GET("/:id", handler.GetByID)
		protected.POST("/:id/cancel", handler.Cancel)
	}
}

func (h *MeetingHandler) Schedule(c *gin.Context) {
	var req dto.MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "ScheduleMeeting", err)
		return
	}

	meeting, err := dto.MapMeetingRequest(&req)
	if err != nil {
		respondValidationError(c, "ScheduleMeeting", err)
		return
	}

	if err := h.meetingUC.Schedule(c.Request.Context(), &meeting); err != nil {
		respondDBError(c, adminEmail(c), "ScheduleMeeting", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusCreated, "ScheduleMeeting", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dto.MapMeetingResponse(meeting),
	})
}

func (h *MeetingHandler) GetAll(c *gin.Context) {
	meetings, err := h.meetingUC.GetAll(c.Request.Context())
	if err != nil {
		respondDBError(c, adminEmail(c), "GetAllMeetings", http.StatusInternalServerError, err)
		return
	}

	out := make([]dto.MeetingResponse, 0, len(*meetings))
	for _, meeting := range *meetings {
		out = append(out, dto.MapMeetingResponse(meeting))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

func (h *MeetingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	meeting, err := h.meetingUC.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDBError(c, adminEmail(c), "GetMeeting", http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.MapMeetingResponse(*meeting)})
}

func (h *MeetingHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.meetingUC.Cancel(c.Request.Context(), id); err != nil {
		respondDBError(c, adminEmail(c), "CancelMeeting", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusOK, "CancelMeeting", nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Meeting cancelled"})
}
