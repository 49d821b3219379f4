// Package repo implements the persistence layer: database bootstrapping,
// the CRUD primitives for each collection (on top of a store.Store), and
// idempotency records for retried submissions.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// Supported DB_DRIVER values.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open connects to the database selected by driver. For sqlite dsn is a file
// path; for postgres it is a connection URL. The memory driver has no
// database and returns (nil, nil).
func Open(driver, dsn string) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverSQLite, "":
		return OpenSQLite(dsn)
	case DriverPostgres:
		return OpenPostgres(dsn)
	case DriverMemory:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
}

// sqlitePragmas tune SQLite for one writer and many short reads.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA foreign_keys=ON",
}

// OpenSQLite opens (or creates) the SQLite file at path. The parent
// directory must already exist.
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}
	for _, p := range sqlitePragmas {
		if err := db.Exec(p).Error; err != nil {
			return nil, fmt.Errorf("sqlite %q: %w", p, err)
		}
	}
	// Collection writes replace a whole row; a single connection keeps
	// SQLite from returning SQLITE_BUSY under concurrent sessions.
	return db, tunePool(db, 1, 1, 0)
}

// OpenPostgres connects to Postgres through the pgx-backed GORM driver.
func OpenPostgres(url string) (*gorm.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("postgres: empty DATABASE_URL")
	}
	db, err := gorm.Open(postgres.Open(url), gormConfig())
	if err != nil {
		return nil, err
	}
	return db, tunePool(db, 10, 5, 30*time.Minute)
}

func tunePool(db *gorm.DB, maxOpen, maxIdle int, lifetime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	if lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	return nil
}

// gormConfig routes GORM's own warnings (slow queries, errors) through
// zerolog.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(zerologWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...any) {
	log.Warn().Str("component", "gorm").Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// AutoMigrate creates the collections and idempotency tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.CollectionRecord{},
		&domain.Idempotency{},
	)
}
