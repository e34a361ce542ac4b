package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type ScheduleHandler struct {
	Sections *services.Registry
}

func (h *ScheduleHandler) section(c *gin.Context) *services.ScheduleSection {
	return h.Sections.Workspace(middleware.CompanyID(c)).Schedule
}

func (h *ScheduleHandler) GetHours(c *gin.Context) {
	hours, err := h.section(c).Hours(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

type SaveHoursRequest struct {
	Days []services.WorkingDayInput `json:"days"`
}

// SaveHours replaces the whole working-hours set for the company.
func (h *ScheduleHandler) SaveHours(c *gin.Context) {
	var req SaveHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.section(c).SaveHours(c.Request.Context(), req.Days); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Working hours saved"})
}

func (h *ScheduleHandler) ListTimeOff(c *gin.Context) {
	offs, err := h.section(c).TimeOff(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, offs)
}

func (h *ScheduleHandler) CreateTimeOff(c *gin.Context) {
	var req services.TimeOffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.section(c).AddTimeOff(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *ScheduleHandler) UpdateTimeOff(c *gin.Context) {
	var req services.TimeOffInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.section(c).UpdateTimeOff(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time off updated"})
}

func (h *ScheduleHandler) DeleteTimeOff(c *gin.Context) {
	if err := h.section(c).DeleteTimeOff(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time off deleted"})
}
