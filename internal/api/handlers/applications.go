package handlers

import (
	"errors"
	"net/http"

	"job-tracker-api/internal/services"
	"job-tracker-api/internal/transport/dto"
	"job-tracker-api/internal/uploads"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const resumeField = "resume"

// multipart overhead allowed on top of the resume size limit
const formOverhead = 1 << 20

// ApplicationHandler serves the applicant-facing application routes.
type ApplicationHandler struct {
	service services.ApplicationService
	uploads ResumeUploader
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationService, uploader ResumeUploader) *ApplicationHandler {
	return &ApplicationHandler{service: service, uploads: uploader}
}

// Submit godoc
// @Summary      Submit an application
// @Description  Multipart form with a "resume" file; list fields are JSON-encoded text. JSON bodies are accepted without a resume file.
// @Tags         Applications
// @Accept       multipart/form-data
// @Produce      json
// @Success      201 {object}  models.Application
// @Failure      400 {object}  map[string]string "Validation failed"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Submit(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	raw, resume, err := h.readSubmission(c)
	if err != nil {
		respondError(c, err, "Failed to submit application")
		return
	}

	app, err := h.service.Submit(c.Request.Context(), actor, raw, resume)
	if err != nil {
		respondError(c, err, "Failed to submit application")
		return
	}
	c.JSON(http.StatusCreated, app)
}

// readSubmission extracts the raw fields and stores the resume file if one
// was sent.
func (h *ApplicationHandler) readSubmission(c *gin.Context) (map[string]any, *dto.ResumeAttachment, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		raw, err := readRawBody(c)
		return raw, nil, err
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploads.MaxSize()+formOverhead)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, &services.ValidationError{Field: resumeField, Message: uploads.ErrTooLarge.Error()}
		}
		return nil, nil, &services.ValidationError{Message: "malformed multipart form: " + err.Error()}
	}

	raw := formValues(form.Value)
	files := form.File[resumeField]
	if len(files) == 0 {
		return raw, nil, nil
	}

	resume, err := h.uploads.SaveFileHeader(files[0])
	if err != nil {
		if errors.Is(err, uploads.ErrRejected) {
			return nil, nil, &services.ValidationError{Field: resumeField, Message: err.Error()}
		}
		return nil, nil, err
	}
	log.WithField("resume_url", resume.URL).Debug("Resume stored")
	return raw, resume, nil
}

// readRawBody reads a JSON object, or url-encoded form values.
func readRawBody(c *gin.Context) (map[string]any, error) {
	if c.ContentType() == gin.MIMEPOSTForm {
		if err := c.Request.ParseForm(); err != nil {
			return nil, &services.ValidationError{Message: "malformed form: " + err.Error()}
		}
		return formValues(c.Request.PostForm), nil
	}

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, &services.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// ListMine godoc
// @Summary      List own applications
// @Tags         Applications
// @Produce      json
// @Param        status query string false "Status or \"all\""
// @Param        role   query string false "Desired role substring"
// @Success      200 {array}   models.Application
// @Failure      400 {object}  map[string]string "Invalid status filter"
// @Router       /applications/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}

	var query dto.ListApplicationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	apps, err := h.service.ListOwned(c.Request.Context(), actor, query)
	if err != nil {
		respondError(c, err, "Failed to retrieve applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Get godoc
// @Summary      Get an application
// @Tags         Applications
// @Produce      json
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Application
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	app, err := h.service.GetOwned(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err, "Failed to retrieve application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// Update godoc
// @Summary      Update an application
// @Description  Only the owner may update, and only while the status is Applied.
// @Tags         Applications
// @Accept       json
// @Produce      json
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200 {object}  models.Application
// @Failure      400 {object}  map[string]string "Validation failed or review already started"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Update(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var raw map[string]any
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		form, err := c.MultipartForm()
		if err != nil {
			respondError(c, &services.ValidationError{Message: "malformed multipart form: " + err.Error()}, "Failed to update application")
			return
		}
		raw = formValues(form.Value)
	} else {
		var err error
		if raw, err = readRawBody(c); err != nil {
			respondError(c, err, "Failed to update application")
			return
		}
	}

	app, err := h.service.UpdateOwned(c.Request.Context(), actor, id, raw)
	if err != nil {
		respondError(c, err, "Failed to update application")
		return
	}
	c.JSON(http.StatusOK, app)
}

// Delete godoc
// @Summary      Delete an application
// @Tags         Applications
// @Produce      json
// @Param        id path string true "Application ID" Format(uuid)
// @Success      200 {object}  map[string]string "Application deleted successfully"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Application Not Found"
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Delete(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteOwned(c.Request.Context(), actor, id); err != nil {
		respondError(c, err, "Failed to delete application")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application deleted successfully"})
}
