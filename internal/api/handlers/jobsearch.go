package handlers

import (
	"net/http"

	"job-tracker-api/internal/models"
	"job-tracker-api/internal/services"
	"job-tracker-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// JobSearchHandler serves the global jobs routes. Responses use the
// {success, ...} envelope.
type JobSearchHandler struct {
	service services.JobSearchService
}

// NewJobSearchHandler creates a new JobSearchHandler.
func NewJobSearchHandler(service services.JobSearchService) *JobSearchHandler {
	return &JobSearchHandler{service: service}
}

// Search godoc
// @Summary      Search the external job board
// @Tags         Global Jobs
// @Produce      json
// @Param        query    query string  true  "Search terms"
// @Param        location query string  false "Location, or \"any\""
// @Param        remote   query boolean false "Remote only"
// @Param        page     query int     false "Page" default(1)
// @Success      200 {object}  dto.JobSearchResponse
// @Failure      400 {object}  map[string]interface{} "Query missing"
// @Failure      429 {object}  map[string]interface{} "Upstream rate limit"
// @Failure      500 {object}  map[string]interface{} "Upstream failure"
// @Router       /global-jobs/search [get]
// @Security     BearerAuth
func (h *JobSearchHandler) Search(c *gin.Context) {
	var req dto.JobSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		RejectEnvelope(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	listings, err := h.service.Search(c.Request.Context(), &req)
	if err != nil {
		respondEnvelopeError(c, err, "Failed to fetch jobs")
		return
	}
	if listings == nil {
		listings = []models.ExternalListing{}
	}

	c.JSON(http.StatusOK, dto.JobSearchResponse{
		Success: true,
		Data:    listings,
		Total:   len(listings),
	})
}

// Save godoc
// @Summary      Save a listing to the tracker
// @Tags         Global Jobs
// @Accept       json
// @Produce      json
// @Param        body body dto.SaveListingRequest true "Listing"
// @Success      201 {object}  dto.SaveListingResponse
// @Failure      400 {object}  map[string]interface{} "Title or company missing"
// @Failure      403 {object}  map[string]interface{} "userId does not match the session"
// @Router       /global-jobs/save [post]
// @Security     BearerAuth
func (h *JobSearchHandler) Save(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var req dto.SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RejectEnvelope(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	app, err := h.service.SaveListing(c.Request.Context(), actor, &req)
	if err != nil {
		respondEnvelopeError(c, err, "Failed to save job")
		return
	}

	c.JSON(http.StatusCreated, dto.SaveListingResponse{
		Success: true,
		Message: "Job saved to your applications",
		Data:    app,
	})
}
