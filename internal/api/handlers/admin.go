package handlers

import (
	"net/http"

	"job-tracker-api/internal/services"
	"job-tracker-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the triage and analytics routes.
type AdminHandler struct {
	service services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListApplications godoc
// @Summary      List every application
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Status or \"all\""
// @Param        role   query string false "Desired role substring"
// @Param        search query string false "Name or email substring"
// @Param        skills query string false "Exact skill"
// @Success      200 {array}   models.Application
// @Failure      400 {object}  map[string]string "Invalid status filter"
// @Failure      403 {object}  map[string]string "Admin access required"
// @Router       /admin/applications [get]
// @Security     BearerAuth
func (h *AdminHandler) ListApplications(c *gin.Context) {
	var query dto.ListApplicationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	apps, err := h.service.ListAll(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to retrieve applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// UpdateStatus godoc
// @Summary      Change status and/or admin notes
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id   path string                  true "Application ID" Format(uuid)
// @Param        body body dto.UpdateStatusRequest true "Fields to change"
// @Success      200 {object}  models.Application
// @Failure      400 {object}  map[string]string "Validation failed"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /admin/applications/{id}/status [put]
// @Security     BearerAuth
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	app, err := h.service.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update application status")
		return
	}
	c.JSON(http.StatusOK, app)
}

// DeleteApplication godoc
// @Summary      Delete any application
// @Tags         Admin
// @Produce      json
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200 {object}  map[string]string "Application deleted successfully"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /admin/applications/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteApplication(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAny(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete application")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}

// Analytics godoc
// @Summary      Dashboard summary
// @Tags         Admin
// @Produce      json
// @Success      200 {object}  models.Analytics
// @Router       /admin/analytics [get]
// @Security     BearerAuth
func (h *AdminHandler) Analytics(c *gin.Context) {
	summary, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute analytics")
		return
	}
	c.JSON(http.StatusOK, summary)
}
