package database

import (
	"strings"

	"grants-backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens a GORM DB. A postgres:// / postgresql:// DSN selects the Postgres
// driver (PreferSimpleProtocol avoids prepared-statement clashes behind poolers
// like PgBouncer); anything else is treated as a SQLite file path.
func Open(databaseURL string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  databaseURL,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	if databaseURL == "" {
		databaseURL = "grants.db"
	}
	return gorm.Open(sqlite.Open(databaseURL), cfg)
}

// Migrate creates the grants, submissions and grant_notes tables and their
// indexes. Safe to run on every startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Grant{}, &models.Submission{}, &models.GrantNote{})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
