package handlers

import (
	"mime/multipart"

	"job-tracker-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// ApplicationHandlerInterface defines the methods needed by the application routes.
type ApplicationHandlerInterface interface {
	Submit(c *gin.Context)
	ListMine(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// AdminHandlerInterface defines the methods needed by the admin routes.
type AdminHandlerInterface interface {
	ListApplications(c *gin.Context)
	UpdateStatus(c *gin.Context)
	DeleteApplication(c *gin.Context)
	Analytics(c *gin.Context)
}

// JobSearchHandlerInterface defines the methods needed by the global jobs routes.
type JobSearchHandlerInterface interface {
	Search(c *gin.Context)
	Save(c *gin.Context)
}

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
	Logout(c *gin.Context)
}

// ResumeUploader stores an uploaded resume file.
type ResumeUploader interface {
	SaveFileHeader(fh *multipart.FileHeader) (*dto.ResumeAttachment, error)
	MaxSize() int64
}

// Ensure handlers implement the interfaces (compile-time check)
var (
	_ ApplicationHandlerInterface = (*ApplicationHandler)(nil)
	_ AdminHandlerInterface       = (*AdminHandler)(nil)
	_ JobSearchHandlerInterface   = (*JobSearchHandler)(nil)
	_ AuthHandlerInterface        = (*AuthHandler)(nil)
)
