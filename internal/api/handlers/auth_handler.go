package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/auth"
	"bus-company-admin-api/internal/services"
)

type AuthHandler struct {
	Company  *services.CompanyService
	Sections *services.Registry
}

type RegisterRequest struct {
	Name        string                `json:"name" binding:"required"`
	Email       string                `json:"email" binding:"required,email"`
	Password    string                `json:"password" binding:"required"`
	PhoneNumber string                `json:"phoneNumber"`
	Address     services.AddressInput `json:"address"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Company.Register(c.Request.Context(), services.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.Company.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if err == services.ErrEmailNotVerified {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		// Credential failures all come back as 401 to avoid leaking which
		// part was wrong.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(company.Email, company.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "company": company})
}

func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := h.Company.Profile(c.Request.Context(), middleware.CompanyID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Company.UpdateProfile(c.Request.Context(), middleware.CompanyID(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// SignOut clears the cached profile and drops the company's section
// workspace so a fresh sign-in starts cold.
func (h *AuthHandler) SignOut(c *gin.Context) {
	companyID := middleware.CompanyID(c)
	h.Company.SignOut(companyID)
	h.Sections.Drop(companyID)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
