package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCollectionsStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, _, err := CollectionsStats(context.Background(), db); err == nil {
		t.Fatalf("expected error due to missing collections table")
	}
}

func TestCollectionsStats_ZeroRows(t *testing.T) {
	db := newTestDB(t, &domain.CollectionRecord{})
	count, last, err := CollectionsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("CollectionsStats error: %v", err)
	}
	if count != 0 || last != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, last)
	}
}

func TestCollectionsStats_LatestWrite(t *testing.T) {
	db := newTestDB(t, &domain.CollectionRecord{})

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // latest
	t3 := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for key, at := range map[domain.Collection]time.Time{
		domain.RentListings: t1,
		domain.Agents:       t2,
		domain.Applications: t3,
	} {
		rec := domain.CollectionRecord{Key: string(key), Data: datatypes.JSON("[]"), UpdatedAt: at}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}

	count, last, err := CollectionsStats(context.Background(), db)
	if err != nil {
		t.Fatalf("CollectionsStats error: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
	if last == nil || !last.Equal(t2) {
		t.Fatalf("lastWrite = %v, want %v", last, t2)
	}
}
