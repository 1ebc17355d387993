package delivery

import (
	"net/http"

	"madrasa/domain"
	"madrasa/dto"
	"madrasa/middleware"
	"madrasa/utils"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsUC domain.NewsUseCase
}

func NewNewsHandler(r *gin.Engine, newsUC domain.NewsUseCase, tokens *utils.SessionTokenManager, authUC domain.AuthUseCase) {
	handler := &NewsHandler{newsUC: newsUC}

	// The published feed is readable without a session.
	r.GET("/api/news", handler.GetAll)

	protected := r.Group("/api/admin/news")
	protected.Use(middleware.AdminAuth(tokens, authUC), middleware.AdminOnly())
	{
		protected.POST("", handler.Publish)
		protected.DELETE("/:id", handler.Delete)
	}
}

func (h *NewsHandler) Publish(c *gin.Context) {
	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "PublishNews", err)
		return
	}

	item := dto.MapNewsRequest(&req)
	if err := h.newsUC.Publish(c.Request.Context(), &item); err != nil {
		respondDBError(c, adminEmail(c), "PublishNews", http.StatusInternalServerError, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusCreated, "PublishNews", nil)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

func (h *NewsHandler) GetAll(c *gin.Context) {
	items, err := h.newsUC.GetAll(c.Request.Context())
	if err != nil {
		respondDBError(c, nil, "GetAllNews", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.newsUC.Delete(c.Request.Context(), id); err != nil {
		respondDBError(c, adminEmail(c), "DeleteNews", http.StatusConflict, err)
		return
	}

	utils.PrintLogInfo(adminEmail(c), http.StatusOK, "DeleteNews", nil)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "News deleted"})
}
