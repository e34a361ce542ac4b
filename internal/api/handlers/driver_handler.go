package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type DriverHandler struct {
	Sections *services.Registry
}

func (h *DriverHandler) section(c *gin.Context) *services.DriverSection {
	return h.Sections.Workspace(middleware.CompanyID(c)).Drivers
}

// List reloads when called plain; with search/filter params it serves the
// cached rows instead of re-querying the backend.
func (h *DriverHandler) List(c *gin.Context) {
	s := h.section(c)
	search, filter := c.Query("search"), c.Query("gender")
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

func (h *DriverHandler) Create(c *gin.Context) {
	var req services.DriverInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.section(c).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *DriverHandler) Update(c *gin.Context) {
	var req services.DriverInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.section(c).Update(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver updated successfully"})
}

func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.section(c).Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted successfully"})
}
