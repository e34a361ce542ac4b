package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type AppointmentHandler struct {
	Sections *services.Registry
}

func (h *AppointmentHandler) section(c *gin.Context) *services.AppointmentSection {
	return h.Sections.Workspace(middleware.CompanyID(c)).Appointments
}

func (h *AppointmentHandler) List(c *gin.Context) {
	s := h.section(c)
	search, filter := c.Query("search"), c.Query("status")
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

func (h *AppointmentHandler) Approve(c *gin.Context) {
	if err := h.section(c).Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment approved"})
}

func (h *AppointmentHandler) Reject(c *gin.Context) {
	if err := h.section(c).Reject(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment rejected"})
}
