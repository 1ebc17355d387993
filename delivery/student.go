package delivery

import (
	"net/http"

	"madrasa/domain"
	"madrasa/dto"
	"madrasa/middleware"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentUC domain.StudentUseCase
}

func NewStudentHandler(r *gin.Engine, studentUC domain.StudentUseCase, tokens *utils.SessionTokenManager, authUC domain.AuthUseCase) {
	handler := &StudentHandler{studentUC: studentUC}

	protected := r.Group("/api/admin/students")
	protected.Use(middleware.AdminAuth(tokens, authUC), middleware.AdminOnly())
	{
		protected.POST("", handler.Create)
		protected.GET("", handler.GetAll)
		protected.GET("/:id", handler.GetByID)
		protected.PUT("/:id", handler.Update)
		protected.DELETE("/:id", handler.Delete)
	}
}

func (h *StudentHandler) Create(c *gin.Context) {
	var req dto.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "CreateStudent", err)
		return
	}

	student := dto.MapStudentRequest(&req)
	if err := h.studentUC.Create(c.Request.Context(), &student); err != nil {
		respondDBError(c, adminEmail(c), "CreateStudent", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusCreated, "CreateStudent", nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": student})
}

func (h *StudentHandler) GetAll(c *gin.Context) {
	students, err := h.studentUC.GetAll(c.Request.Context())
	if err != nil {
		respondDBError(c, adminEmail(c), "GetAllStudents", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": students})
}

func (h *StudentHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	student, err := h.studentUC.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDBError(c, adminEmail(c), "GetStudent", http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": student})
}

func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "UpdateStudent", err)
		return
	}

	student := dto.MapStudentRequest(&req)
	if err := h.studentUC.Update(c.Request.Context(), id, &student); err != nil {
		respondDBError(c, adminEmail(c), "UpdateStudent", http.StatusNotFound, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusOK, "UpdateStudent", nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student updated"})
}

func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.studentUC.Delete(c.Request.Context(), id); err != nil {
		respondDBError(c, adminEmail(c), "DeleteStudent", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusOK, "DeleteStudent", nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Student deleted"})
}
