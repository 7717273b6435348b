package database

import (
	"fmt"

	"job-tracker-api/config"
	"job-tracker-api/internal/storage/sqlite"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewSQLite opens the embedded store used for local development.
func NewSQLite(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := sqlite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", cfg.Path, err)
	}
	log.WithField("path", cfg.Path).Info("SQLite database ready")
	return db, nil
}
