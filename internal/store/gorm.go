package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// Gorm persists each collection as one row of the collections table. It
// works on any GORM dialect that supports ON CONFLICT upserts (SQLite and
// Postgres are the ones wired in repo.Open).
type Gorm struct {
	db  *gorm.DB
	now func() time.Time
	notifier
}

// NewGorm returns a Store backed by db. The collections table must already
// exist (see repo.AutoMigrate).
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Read returns the stored array for key, or nil when no row exists.
func (g *Gorm) Read(ctx context.Context, key domain.Collection) (json.RawMessage, error) {
	var rec domain.CollectionRecord
	err := g.db.WithContext(ctx).
		Where("key = ?", string(key)).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return json.RawMessage(rec.Data), nil
}

// Write upserts the row for key and notifies subscribers once the row is
// committed.
func (g *Gorm) Write(ctx context.Context, key domain.Collection, data json.RawMessage) error {
	rec := domain.CollectionRecord{
		Key:       string(key),
		Data:      datatypes.JSON(OrEmpty(data)),
		UpdatedAt: g.now(),
	}
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	g.emit(key)
	return nil
}

// OnChanged subscribes fn to change notifications.
func (g *Gorm) OnChanged(fn Listener) func() { return g.subscribe(fn) }
