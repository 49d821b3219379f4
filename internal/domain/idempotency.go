package domain

import "time"

// Idempotency remembers which record a submission produced, keyed by
// (client_id, collection, key). A retried POST with the same Idempotency-Key
// is answered with the stored record instead of creating a duplicate
// application, inspection, or support ticket.
type Idempotency struct {
	ID         string    `gorm:"type:TEXT NOT NULL;primaryKey"`
	ClientID   string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_collection_key,priority:1"`
	Collection string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_collection_key,priority:2"`
	Key        string    `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_client_collection_key,priority:3"`
	RecordID   string    `gorm:"type:TEXT NOT NULL"`
	Status     int       `gorm:"type:INTEGER NOT NULL"`
	CreatedAt  time.Time `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
