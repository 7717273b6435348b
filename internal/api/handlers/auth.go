package handlers

import (
	"net/http"

	"job-tracker-api/internal/api/middleware"
	"job-tracker-api/internal/services"
	"job-tracker-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthHandler serves account and session routes.
type AuthHandler struct {
	service services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register godoc
// @Summary      Register a new applicant
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user body      dto.RegisterRequest true "Registration details"
// @Success      201  {object}  dto.AuthResponse
// @Failure      400  {object}  map[string]string "Validation failed"
// @Failure      409  {object}  map[string]string "Email already registered"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true "Login credentials"
// @Success      200         {object}  dto.AuthResponse
// @Failure      400         {object}  map[string]string "Validation failed"
// @Failure      401         {object}  map[string]string "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary      Current user profile
// @Tags         Auth
// @Produce      json
// @Success      200 {object}  models.User
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.WithError(err).Error("Error getting user ID from context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented token until it expires.
// @Tags         Auth
// @Produce      json
// @Success      200 {object}  map[string]string "Logged out"
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, err := middleware.GetClaimsFromContext(c)
	if err != nil {
		log.WithError(err).Error("Error getting session claims from context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err, "Failed to log out")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
