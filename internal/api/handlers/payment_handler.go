package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
)

type PaymentHandler struct {
	Sections *services.Registry
}

func (h *PaymentHandler) List(c *gin.Context) {
	s := h.Sections.Workspace(middleware.CompanyID(c)).Payments
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
