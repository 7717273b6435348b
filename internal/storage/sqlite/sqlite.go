package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (creating if needed) the SQLite database at path and migrates
// the tables.
func Open(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&userRecord{}, &applicationRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate models: %w", err)
	}
	if err := backfillFoldColumns(db); err != nil {
		return nil, err
	}
	return db, nil
}

// backfillFoldColumns fills the search columns of rows written before they existed.
func backfillFoldColumns(db *gorm.DB) error {
	var records []applicationRecord
	if err := db.Where("full_name_fold = '' OR full_name_fold IS NULL").Find(&records).Error; err != nil {
		return fmt.Errorf("load rows to backfill: %w", err)
	}
	for _, rec := range records {
		err := db.Model(&applicationRecord{}).Where("id = ?", rec.ID).Updates(map[string]any{
			"full_name_fold":    fold(rec.FullName),
			"email_fold":        fold(rec.Email),
			"desired_role_fold": fold(rec.DesiredRole),
		}).Error
		if err != nil {
			return fmt.Errorf("backfill application %s: %w", rec.ID, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}
