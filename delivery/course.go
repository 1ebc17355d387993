package delivery

import (
	"net/http"
	"strconv"

	"madrasa/domain"
	"madrasa/dto"
	"madrasa/middleware"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseUC domain.CourseUseCase
}

func NewCourseHandler(r *gin.Engine, courseUC domain.CourseUseCase, tokens *utils.SessionTokenManager, authUC domain.AuthUseCase) {
	handler := &CourseHandler{courseUC: courseUC}

	protected := r.Group("/api/admin/courses")
	protected.Use(middleware.AdminAuth(tokens, authUC), middleware.AdminOnly())
	{
		protected.POST("", handler.Create)
		protected.GET("", handler.GetAll)
		protected.GET("/:id", handler.GetByID)
		protected.PUT("/:id", handler.Update)
		protected.DELETE("/:id", handler.Delete)
	}
}

func adminEmail(c *gin.Context) *string {
	if v, ok := c.Get("adminEmail"); ok {
		if email, ok := v.(string); ok {
			return &email
		}
	}
	return nil
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":  false,
			"error":    "invalid id",
			"error_ar": "المعرف غير صالح",
		})
		return 0, false
	}
	return uint(id), true
}

func respondDBError(c *gin.Context, email *string, functionName string, status int, err error) {
	en, ar := utils.TranslateDBError(err)
	utils.PrintLogInfo(email, status, functionName, &err)
	c.JSON(status, gin.H{
		"success":  false,
		"error":    en,
		"error_ar": ar,
	})
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "CreateCourse", err)
		return
	}

	course := dto.MapCourseRequest(&req)
	if err := h.courseUC.Create(c.Request.Context(), &course); err != nil {
		respondDBError(c, adminEmail(c), "CreateCourse", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusCreated, "CreateCourse", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    dto.MapCourseResponse(course),
	})
}

func (h *CourseHandler) GetAll(c *gin.Context) {
	courses, err := h.courseUC.GetAll(c.Request.Context())
	if err != nil {
		respondDBError(c, adminEmail(c), "GetAllCourses", http.StatusInternalServerError, err)
		return
	}

	out := make([]dto.CourseResponse, 0, len(*courses))
	for _, course := range *courses {
		out = append(out, dto.MapCourseResponse(course))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": out})
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	course, err := h.courseUC.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDBError(c, adminEmail(c), "GetCourse", http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": dto.MapCourseResponse(*course)})
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "UpdateCourse", err)
		return
	}

	course := dto.MapCourseRequest(&req)
	if err := h.courseUC.Update(c.Request.Context(), id, &course); err != nil {
		respondDBError(c, adminEmail(c), "UpdateCourse", http.StatusNotFound, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusOK, "UpdateCourse", nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course updated"})
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.courseUC.Delete(c.Request.Context(), id); err != nil {
		respondDBError(c, adminEmail(c), "DeleteCourse", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusOK, "DeleteCourse", nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Course deleted"})
}
