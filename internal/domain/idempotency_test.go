package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func TestIdempotency_Migration_UniqueKey(t *testing.T) {
	db := newTestDB(t)
	if err := db.AutoMigrate(&Idempotency{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	if !m.HasTable(&Idempotency{}) {
		t.Fatalf("expected table %q to exist", Idempotency{}.TableName())
	}
	if !m.HasIndex(&Idempotency{}, "ux_client_collection_key") {
		t.Fatalf("expected composite index ux_client_collection_key to exist")
	}

	now := time.Now().UTC()
	rec := &Idempotency{
		ID:         "id-1",
		ClientID:   "sess-1",
		Collection: string(Applications),
		Key:        "k1",
		RecordID:   "app_1",
		Status:     201,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("insert valid: %v", err)
	}

	var got Idempotency
	if err := db.First(&got, "id = ?", "id-1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.ClientID != "sess-1" || got.Collection != "applications" || got.RecordID != "app_1" || got.Status != 201 {
		t.Fatalf("unexpected row: %+v", got)
	}

	dup := &Idempotency{
		ID:         "id-2",
		ClientID:   "sess-1",
		Collection: string(Applications),
		Key:        "k1",
		RecordID:   "app_2",
		Status:     201,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Hour),
	}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on (client_id, collection, key)")
	}

	// Same key under another collection is allowed.
	other := *dup
	other.ID = "id-3"
	other.Collection = string(Inspections)
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("insert other collection: %v", err)
	}
}
