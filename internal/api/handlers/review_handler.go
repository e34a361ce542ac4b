package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type ReviewHandler struct {
	Sections *services.Registry
}

func (h *ReviewHandler) section(c *gin.Context) *services.ReviewSection {
	return h.Sections.Workspace(middleware.CompanyID(c)).Reviews
}

func (h *ReviewHandler) List(c *gin.Context) {
	s := h.section(c)
	search, filter := c.Query("search"), c.Query("rate")
	if search == "" && filter == "" {
		rows, err := s.Load(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
		return
	}
	rows, err := s.Rows(c.Request.Context(), search, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type ReplyRequest struct {
	Reply string `json:"reply" binding:"required"`
}

func (h *ReviewHandler) Reply(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.section(c).Reply(c.Request.Context(), c.Param("id"), req.Reply); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply saved"})
}
