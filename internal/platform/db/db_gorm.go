// Package db opens the relational store behind the local gateway.
package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	authadapters "foro_backend/internal/feature/auth/adapters"
	pubadapters "foro_backend/internal/feature/publications/adapters"
)

// Open connects to the store selected by driver: "sqlite" with a file path
// (the client-side local store) or "postgres" with a DSN (the reference
// backend's store). Postgres connections are retried for up to a minute, as
// the database may still be coming up alongside the process.
func Open(driver, dsn string, log zerolog.Logger) (*gorm.DB, error) {
	// TranslateError turns driver-specific constraint failures into gorm
	// sentinels (ErrDuplicatedKey) on sqlite as well as postgres, so the
	// repositories can map them without knowing the driver.
	cfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), cfg)
	case "postgres":
		var (
			conn *gorm.DB
			err  error
		)
		deadline := time.Now().Add(60 * time.Second)
		for {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				return conn, nil
			}
			if time.Now().After(deadline) {
				return nil, fmt.Errorf("db connect failed after 60s: %w", err)
			}
			log.Warn().Err(err).Msg("db connect failed, retrying")
			time.Sleep(3 * time.Second)
		}
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}
}

// Migrate creates or updates the three local tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&authadapters.UserModel{},
		&pubadapters.PublicationModel{},
		&pubadapters.CommentModel{},
	)
}
