// Package listing implements the listing view pipeline: Filter, then Sort,
// then Paginate. All functions are pure; they never modify their input slice.
package listing

import (
	"cmp"
	"encoding/json"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// BedroomsThreePlus is the filter value matching three or more bedrooms.
const BedroomsThreePlus = "3+"

// DefaultPageSize is the number of listings per page.
const DefaultPageSize = 12

// Filters is the active filter set. Zero values mean "no constraint" for every
// field except Available, where false also means no constraint.
type Filters struct {
	Location  string `json:"location"`
	Bedrooms  string `json:"bedrooms"`
	MinBudget int64  `json:"minBudget"`
	MaxBudget int64  `json:"maxBudget"`
	Type      string `json:"type"`
	Available bool   `json:"available"`
}

// DefaultFilters returns the initial filter set: available listings only.
func DefaultFilters() Filters {
	return Filters{Available: true}
}

// Key serializes f deterministically for use in a cache key.
func (f Filters) Key() string {
	b, _ := json.Marshal(f)
	return string(b)
}

// FilterPatch is a partial filter update. Nil fields are left unchanged; an
// empty string or zero clears the criterion.
type FilterPatch struct {
	Location  *string `json:"location,omitempty"`
	Bedrooms  *string `json:"bedrooms,omitempty"`
	MinBudget *int64  `json:"minBudget,omitempty"`
	MaxBudget *int64  `json:"maxBudget,omitempty"`
	Type      *string `json:"type,omitempty"`
	Available *bool   `json:"available,omitempty"`
}

// Apply returns f with the non-nil fields of p merged over it.
func (p FilterPatch) Apply(f Filters) Filters {
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.Bedrooms != nil {
		f.Bedrooms = *p.Bedrooms
	}
	if p.MinBudget != nil {
		f.MinBudget = *p.MinBudget
	}
	if p.MaxBudget != nil {
		f.MaxBudget = *p.MaxBudget
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Available != nil {
		f.Available = *p.Available
	}
	return f
}

// Matches reports whether l passes every active criterion in f.
func (f Filters) Matches(l domain.Listing) bool {
	if f.Location != "" && l.Area != f.Location {
		return false
	}
	if f.Bedrooms != "" && !matchBedrooms(f.Bedrooms, l.Bedrooms) {
		return false
	}
	if f.MinBudget > 0 && l.Price < f.MinBudget {
		return false
	}
	if f.MaxBudget > 0 && l.Price > f.MaxBudget {
		return false
	}
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Available && !l.Available {
		return false
	}
	return true
}

// matchBedrooms treats "3+" as its own value; any other value must parse as
// an integer and match exactly. Unparsable values match nothing.
func matchBedrooms(want string, got int) bool {
	if want == BedroomsThreePlus {
		return got >= 3
	}
	n, err := strconv.Atoi(want)
	if err != nil {
		return false
	}
	return got == n
}

// Filter returns the listings that pass f, in input order.
func Filter(ls []domain.Listing, f Filters) []domain.Listing {
	out := make([]domain.Listing, 0, len(ls))
	for _, l := range ls {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// SortMode selects the listing order.
type SortMode string

const (
	SortNewest       SortMode = "newest"
	SortPriceAsc     SortMode = "price-asc"
	SortPriceDesc    SortMode = "price-desc"
	SortBedroomsAsc  SortMode = "bedrooms-asc"
	SortBedroomsDesc SortMode = "bedrooms-desc"
	SortArea         SortMode = "area"
)

// SortModes lists the recognized modes.
var SortModes = []SortMode{
	SortNewest, SortPriceAsc, SortPriceDesc, SortBedroomsAsc, SortBedroomsDesc, SortArea,
}

// Known reports whether m is a recognized sort mode.
func (m SortMode) Known() bool {
	return slices.Contains(SortModes, m)
}

// Sort returns a stably sorted copy of ls. Unknown modes return a copy in
// input order.
func Sort(ls []domain.Listing, mode SortMode) []domain.Listing {
	out := slices.Clone(ls)
	if out == nil {
		out = []domain.Listing{}
	}

	var less func(a, b domain.Listing) int
	switch mode {
	case SortNewest:
		less = func(a, b domain.Listing) int { return cmp.Compare(b.CreatedAt, a.CreatedAt) }
	case SortPriceAsc:
		less = func(a, b domain.Listing) int { return cmp.Compare(a.Price, b.Price) }
	case SortPriceDesc:
		less = func(a, b domain.Listing) int { return cmp.Compare(b.Price, a.Price) }
	case SortBedroomsAsc:
		less = func(a, b domain.Listing) int { return cmp.Compare(a.Bedrooms, b.Bedrooms) }
	case SortBedroomsDesc:
		less = func(a, b domain.Listing) int { return cmp.Compare(b.Bedrooms, a.Bedrooms) }
	case SortArea:
		// Collators keep internal buffers; one per call.
		c := collate.New(language.English)
		less = func(a, b domain.Listing) int { return c.CompareString(a.Area, b.Area) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

// Page is one page of a listing view plus its metadata.
type Page struct {
	Listings    []domain.Listing `json:"listings"`
	TotalItems  int              `json:"totalItems"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	HasNextPage bool             `json:"hasNextPage"`
	HasPrevPage bool             `json:"hasPrevPage"`
}

// Paginate returns page (1-based) of ls with the given page size. Pages past
// the end are empty with HasNextPage false. Page values below 1 are treated
// as 1 and non-positive sizes as DefaultPageSize.
func Paginate(ls []domain.Listing, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(ls)
	start := (page - 1) * size
	end := start + size

	items := []domain.Listing{}
	if start < total {
		items = ls[start:min(end, total)]
	}

	return Page{
		Listings:    items,
		TotalItems:  total,
		CurrentPage: page,
		TotalPages:  (total + size - 1) / size,
		HasNextPage: end < total,
		HasPrevPage: page > 1,
	}
}
