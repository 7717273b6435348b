// Package uploads stores resume files on local disk and serves them by URL.
package uploads

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"job-tracker-api/config"
	"job-tracker-api/internal/transport/dto"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	log "github.com/sirupsen/logrus"
)

// ErrRejected is the parent of every error caused by the uploaded content.
var ErrRejected = errors.New("resume rejected")

var (
	ErrTooLarge        = fmt.Errorf("%w: file too large", ErrRejected)
	ErrUnsupportedType = fmt.Errorf("%w: only PDF, DOC and DOCX files are accepted", ErrRejected)
	ErrInvalidPDF      = fmt.Errorf("%w: PDF file is damaged", ErrRejected)
)

var allowedTypes = map[string]string{
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

func init() {
	// pdfcpu would otherwise create a config dir under the user's home.
	api.DisableConfigDir()
}

// Store keeps resumes in a directory exposed under urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
	maxSize   int64
}

// NewStore creates the upload directory if needed.
func NewStore(cfg config.UploadsConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:       cfg.Dir,
		urlPrefix: "/" + strings.Trim(cfg.URLPrefix, "/"),
		maxSize:   cfg.MaxSizeBytes(),
	}, nil
}

// Dir is the directory served under URLPrefix.
func (s *Store) Dir() string { return s.dir }

// URLPrefix is the public path prefix of stored files.
func (s *Store) URLPrefix() string { return s.urlPrefix }

// MaxSize is the upload limit in bytes.
func (s *Store) MaxSize() int64 { return s.maxSize }

// SaveFileHeader stores a multipart upload.
func (s *Store) SaveFileHeader(fh *multipart.FileHeader) (*dto.ResumeAttachment, error) {
	if fh.Size > s.maxSize {
		return nil, ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	return s.Save(f, fh.Filename)
}

// Save checks the content type by sniffing, validates PDFs and writes the
// file under a generated name.
func (s *Store) Save(r io.Reader, originalName string) (*dto.ResumeAttachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrTooLarge
	}

	ext, err := sniff(data)
	if err != nil {
		return nil, err
	}
	if ext == ".pdf" {
		conf := model.NewDefaultConfiguration()
		conf.ValidationMode = model.ValidationRelaxed
		if err := api.Validate(bytes.NewReader(data), conf); err != nil {
			log.WithError(err).WithField("file", originalName).Info("Rejected unreadable PDF")
			return nil, ErrInvalidPDF
		}
	}

	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	return &dto.ResumeAttachment{
		URL:      path.Join(s.urlPrefix, name),
		FileName: displayName(originalName, ext),
	}, nil
}

// Remove deletes a stored file by its public URL. Missing files are ignored.
func (s *Store) Remove(url string) error {
	name, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("not a stored upload: %q", url)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

func sniff(data []byte) (string, error) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		for mime, ext := range allowedTypes {
			if m.Is(mime) {
				return ext, nil
			}
		}
	}
	return "", ErrUnsupportedType
}

// displayName keeps the client's base name, falling back to a generic one.
func displayName(original, ext string) string {
	name := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return "resume" + ext
	}
	return name
}
