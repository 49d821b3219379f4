package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

func newStoreDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("store_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := db.AutoMigrate(&domain.CollectionRecord{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// backends returns every Store implementation so contract tests run on each.
func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"gorm":   NewGorm(newStoreDB(t)),
	}
}

func TestStore_ReadUnsetIsNil(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Read(context.Background(), domain.Agents)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if got != nil {
				t.Fatalf("expected nil for unset key, got %s", got)
			}
		})
	}
}

func TestStore_WriteReplacesAndRoundTrips(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Write(ctx, domain.RentListings, json.RawMessage(`[{"id":"apt_1"}]`)); err != nil {
				t.Fatalf("Write 1: %v", err)
			}
			if err := s.Write(ctx, domain.RentListings, json.RawMessage(`[{"id":"apt_2"},{"id":"apt_3"}]`)); err != nil {
				t.Fatalf("Write 2: %v", err)
			}
			got, err := s.Read(ctx, domain.RentListings)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			var rows []map[string]string
			if err := json.Unmarshal(got, &rows); err != nil {
				t.Fatalf("unmarshal %s: %v", got, err)
			}
			if len(rows) != 2 || rows[0]["id"] != "apt_2" {
				t.Fatalf("write did not replace whole collection: %s", got)
			}

			// Other collections are untouched.
			if other, _ := s.Read(ctx, domain.SaleListings); other != nil {
				t.Fatalf("sale listings should be unset, got %s", other)
			}
		})
	}
}

func TestStore_NotifiesAfterWrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var seen [][]domain.Collection
			cancel := s.OnChanged(func(keys []domain.Collection) {
				// The write must already be visible to listeners.
				data, err := s.Read(ctx, keys[0])
				if err != nil || data == nil {
					t.Errorf("listener saw unwritten data: %s %v", data, err)
				}
				seen = append(seen, keys)
			})

			_ = s.Write(ctx, domain.Applications, json.RawMessage(`[]`))
			_ = s.Write(ctx, domain.SaleListings, json.RawMessage(`[]`))

			if len(seen) != 2 || seen[0][0] != domain.Applications || seen[1][0] != domain.SaleListings {
				t.Fatalf("unexpected notifications: %v", seen)
			}

			cancel()
			cancel() // idempotent
			_ = s.Write(ctx, domain.Agents, json.RawMessage(`[]`))
			if len(seen) != 2 {
				t.Fatalf("cancelled listener still notified: %v", seen)
			}
		})
	}
}

func TestStore_ListenersRunInSubscriptionOrder(t *testing.T) {
	s := NewMemory()
	var order []int
	s.OnChanged(func([]domain.Collection) { order = append(order, 1) })
	cancel2 := s.OnChanged(func([]domain.Collection) { order = append(order, 2) })
	s.OnChanged(func([]domain.Collection) { order = append(order, 3) })
	cancel2()

	_ = s.Write(context.Background(), domain.Agents, json.RawMessage(`[]`))
	if fmt.Sprint(order) != "[1 3]" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestMemory_ReadReturnsCopy(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	_ = s.Write(ctx, domain.Agents, json.RawMessage(`[1]`))
	got, _ := s.Read(ctx, domain.Agents)
	got[1] = '9'
	again, _ := s.Read(ctx, domain.Agents)
	if string(again) != "[1]" {
		t.Fatalf("stored data was mutated through Read result: %s", again)
	}
}

func TestGorm_WriteError_NoTable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nomigrate.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	s := NewGorm(db)
	notified := false
	s.OnChanged(func([]domain.Collection) { notified = true })
	if err := s.Write(context.Background(), domain.Agents, json.RawMessage(`[]`)); err == nil {
		t.Fatalf("expected error without collections table")
	}
	if notified {
		t.Fatalf("failed write must not notify")
	}
}

func TestOrEmpty(t *testing.T) {
	if string(OrEmpty(nil)) != "[]" || string(OrEmpty(json.RawMessage(`[1]`))) != "[1]" {
		t.Fatalf("OrEmpty mismatch")
	}
}
