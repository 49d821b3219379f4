package repo

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

func TestOpenSQLite_MissingDir(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "nope", "warri.db")
	if db, err := OpenSQLite(bad); err == nil || db != nil {
		t.Fatalf("OpenSQLite(%q) = %v, %v; want error", bad, db, err)
	}
}

func TestOpenSQLite_Tuned(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "warri.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	pragmas := map[string]string{
		"journal_mode": "wal",
		"synchronous":  "1", // NORMAL
		"busy_timeout": "5000",
		"foreign_keys": "1",
	}
	for name, want := range pragmas {
		var got string
		if err := db.Raw("PRAGMA " + name).Row().Scan(&got); err != nil {
			t.Fatalf("PRAGMA %s: %v", name, err)
		}
		if strings.ToLower(got) != want {
			t.Errorf("PRAGMA %s = %q, want %q", name, got, want)
		}
	}
	if n := sqlDB.Stats().MaxOpenConnections; n != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", n)
	}
}

func TestAutoMigrate_CollectionRoundTrip(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "warri.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, tbl := range []any{&domain.CollectionRecord{}, &domain.Idempotency{}} {
		if !db.Migrator().HasTable(tbl) {
			t.Fatalf("missing table for %T", tbl)
		}
	}

	rec := domain.CollectionRecord{Key: string(domain.Agents), Data: datatypes.JSON(`[]`), UpdatedAt: time.Now().UTC()}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	var got domain.CollectionRecord
	if err := db.First(&got, "key = ?", string(domain.Agents)).Error; err != nil || string(got.Data) != "[]" {
		t.Fatalf("readback: err=%v got=%+v", err, got)
	}
}

func TestOpen_Drivers(t *testing.T) {
	cases := []struct {
		driver, dsn string
		wantDB      bool
		wantErr     bool
	}{
		{driver: DriverMemory},
		{driver: "mongo", dsn: "x", wantErr: true},
		{driver: DriverPostgres, dsn: "  ", wantErr: true},
		{driver: " SQLite ", dsn: filepath.Join(t.TempDir(), "a.db"), wantDB: true},
		{driver: "", dsn: filepath.Join(t.TempDir(), "b.db"), wantDB: true},
	}
	for _, tc := range cases {
		db, err := Open(tc.driver, tc.dsn)
		if (err != nil) != tc.wantErr || (db != nil) != tc.wantDB {
			t.Errorf("Open(%q) = %v, %v", tc.driver, db, err)
		}
		if db != nil {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
	}
}

func TestGormWarningsGoToZerolog(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	db, err := OpenSQLite(filepath.Join(t.TempDir(), "warri.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	_ = db.Exec("SELECT * FROM no_such_table").Error

	if out := buf.String(); !strings.Contains(out, `"component":"gorm"`) || !strings.Contains(out, "no_such_table") {
		t.Fatalf("gorm error not logged through zerolog: %s", out)
	}
}
