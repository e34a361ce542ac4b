package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Validation
// problems come back as form-level messages, everything else as a toastable
// envelope with the raw message.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConstraint(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
