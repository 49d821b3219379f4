// Package domain defines the records kept by the apartment portal: rent and
// sale listings, agents, rental applications, inspections, and support
// tickets. Records are serialized as JSON arrays (one array per collection)
// so the JSON field names below are the storage format and must stay stable.
package domain

import "fmt"

// Kind distinguishes rent listings from sale listings.
type Kind string

const (
	KindRent Kind = "rent"
	KindSale Kind = "sale"
)

// ParseKind validates s as a listing kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRent, KindSale:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown listing kind %q", s)
}

// Collection returns the collection that stores listings of this kind.
func (k Kind) Collection() Collection {
	if k == KindSale {
		return SaleListings
	}
	return RentListings
}

// IDPrefix is prepended to generated listing ids ("apt_" for rent,
// "sale_" for sale).
func (k Kind) IDPrefix() string {
	if k == KindSale {
		return "sale_"
	}
	return "apt_"
}

// Listing is a rentable or sellable property.
//
// Fields:
//   - ID: immutable, unique within its kind, prefixed by kind.
//   - Area/City/State: location triple; Area drives the location filter.
//   - Price: whole Naira.
//   - Type: open-ended property type ("1BR", "2BR", "Self-contain", ...).
//   - SizeSqm: optional, zero when unknown.
//   - AgentID: weak reference into the agents collection; may dangle.
//   - CreatedAt: epoch milliseconds, set once when the record is added.
type Listing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Area         string   `json:"area"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Price        int64    `json:"price"`
	Type         string   `json:"type"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	SizeSqm      *int     `json:"sizeSqm,omitempty"`
	LeadImageURL string   `json:"leadImageUrl"`
	ImageURLs    []string `json:"imageUrls"`
	AgentID      string   `json:"agentId"`
	Available    bool     `json:"available"`
	CreatedAt    int64    `json:"createdAt"`
}

// Images returns the lead image followed by the additional images, skipping
// empty references. This is the sequence a gallery is opened with.
func (l Listing) Images() []string {
	out := make([]string, 0, len(l.ImageURLs)+1)
	if l.LeadImageURL != "" {
		out = append(out, l.LeadImageURL)
	}
	for _, u := range l.ImageURLs {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Agent is a listing agent. AreasCovered has no ordering guarantee.
type Agent struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	AvatarURL    string   `json:"avatarUrl"`
	Phone        string   `json:"phone"`
	WhatsApp     string   `json:"whatsapp"`
	AreasCovered []string `json:"areasCovered"`
	Bio          string   `json:"bio,omitempty"`
}

// ListingSnapshot is a denormalized copy of a listing taken when an
// application is created. It is the display fallback once the listing is gone.
type ListingSnapshot struct {
	Title   string `json:"title"`
	Area    string `json:"area"`
	Price   int64  `json:"price"`
	AgentID string `json:"agentId"`
}

// Application is a rental application for a listing.
type Application struct {
	ID               string            `json:"id"`
	ApartmentID      string            `json:"apartmentId"`
	ApplicantName    string            `json:"applicantName"`
	Phone            string            `json:"phone"`
	Email            string            `json:"email"`
	PreferredContact string            `json:"preferredContact"`
	CurrentAddress   string            `json:"currentAddress"`
	EmploymentStatus string            `json:"employmentStatus"`
	MoveInDate       string            `json:"moveInDate"`
	Notes            string            `json:"notes"`
	Status           ApplicationStatus `json:"status"`
	CreatedAt        int64             `json:"createdAt"`
	Snapshot         *ListingSnapshot  `json:"apartmentSnapshot,omitempty"`
}

// Inspection is a viewing request for a listing.
type Inspection struct {
	ID             string           `json:"id"`
	ApartmentID    string           `json:"apartmentId"`
	ApplicantName  string           `json:"name"`
	Phone          string           `json:"phone"`
	Date           string           `json:"date"`
	Time           string           `json:"time"`
	Status         InspectionStatus `json:"status"`
	CreatedAt      int64            `json:"createdAt"`
	ApartmentTitle string           `json:"apartmentTitle,omitempty"`
}

// SupportTicket is a contact-form message. Tickets carry no status.
type SupportTicket struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"createdAt"`
}
