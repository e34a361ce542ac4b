package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type NotificationHandler struct {
	Sections *services.Registry
}

func (h *NotificationHandler) section(c *gin.Context) *services.NotificationSection {
	return h.Sections.Workspace(middleware.CompanyID(c)).Notifications
}

func (h *NotificationHandler) List(c *gin.Context) {
	s := h.section(c)
	search, filter := c.Query("search"), c.Query("filter")
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

func (h *NotificationHandler) Send(c *gin.Context) {
	var req services.NotificationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.section(c).Send(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.section(c).MarkRead(c.Request.Context(), c.Param("id"), true); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func (h *NotificationHandler) MarkUnread(c *gin.Context) {
	if err := h.section(c).MarkRead(c.Request.Context(), c.Param("id"), false); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked unread"})
}
