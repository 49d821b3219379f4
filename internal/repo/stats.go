package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// CollectionsStats returns how many collections have been written and the
// time of the most recent write. lastWrite is nil when nothing has been
// written yet.
func CollectionsStats(ctx context.Context, db *gorm.DB) (count int64, lastWrite *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.CollectionRecord{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
