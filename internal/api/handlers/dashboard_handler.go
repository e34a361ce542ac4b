package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type DashboardHandler struct {
	Company *services.CompanyService
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.Company.Dashboard(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Activities(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	logs, err := h.Company.Activities(c.Request.Context(), middleware.CompanyID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
