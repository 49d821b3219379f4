package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Collection names a stored array of records. The string values are the
// storage keys and appear in change notifications.
type Collection string

const (
	RentListings   Collection = "rentListings"
	SaleListings   Collection = "saleListings"
	Agents         Collection = "agents"
	Applications   Collection = "applications"
	Inspections    Collection = "inspections"
	SupportTickets Collection = "supportTickets"
)

// AllCollections lists every collection in a fixed order.
var AllCollections = []Collection{
	RentListings, SaleListings, Agents, Applications, Inspections, SupportTickets,
}

// IsListings reports whether c holds listings of either kind.
func (c Collection) IsListings() bool {
	return c == RentListings || c == SaleListings
}

// CollectionRecord is the database row backing one collection. Data holds
// the whole serialized array; writes replace it in full.
type CollectionRecord struct {
	Key       string         `gorm:"type:varchar(32);primaryKey"`
	Data      datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
}

// TableName returns the database table name for CollectionRecord.
func (CollectionRecord) TableName() string { return "collections" }
