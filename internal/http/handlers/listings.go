// Listing HTTP handlers.
//
// Read endpoints go through the caller's session so that the filter set,
// sort mode and page they chose apply, and so repeated reads are served
// from the session's derived-data cache:
//   - GET    /listings/{kind}                 (filtered + sorted)
//   - GET    /listings/{kind}/page            (current page)
//   - GET    /listings/{kind}/price-range|bedrooms|locations|types
//   - GET    /listings/{kind}/suggestions?q=
//   - GET    /listings/{kind}/search?q=&k=
//
// Admin writes go through the catalog service:
//   - POST   /listings/{kind}
//   - GET    /listings/{kind}/{id}
//   - PATCH  /listings/{kind}/{id}
//   - DELETE /listings/{kind}/{id}
//   - GET    /listings/{kind}/{id}/applications
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/listing"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
	"github.com/tbourn/warri-apartment-hunt/internal/utils"
)

const (
	defaultSearchK = 10
	maxSearchK     = 50
)

//
// DTOs
//

// ListingsResponse is the filtered, sorted view of one listing kind.
type ListingsResponse struct {
	Kind     domain.Kind      `json:"kind" example:"rent"`
	Filters  listing.Filters  `json:"filters"`
	Sort     listing.SortMode `json:"sort" example:"newest"`
	Total    int              `json:"total"`
	Listings []domain.Listing `json:"listings"`
}

// SuggestionsResponse lists autocomplete candidates for a query.
type SuggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// SearchResponse lists ranked keyword hits.
type SearchResponse struct {
	Query string            `json:"query"`
	Hits  []state.SearchHit `json:"hits"`
}

//
// Session views
//

// FilteredListings godoc
// @ID          filteredListings
// @Summary     Filtered listings
// @Description Returns every listing of the kind that passes the session's filters, in the session's sort order.
// @Tags        Listings
// @Produce     json
// @Param       X-Session-ID header string false "Client session" example(tab-1)
// @Param       kind         path   string true  "rent or sale"   Enums(rent, sale)
// @Success     200 {object} handlers.ListingsResponse
// @Failure     400 {object} handlers.ErrorResponse "Unknown kind"
// @Router      /listings/{kind} [get]
func (h *Handlers) FilteredListings(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	var resp ListingsResponse
	err := h.withState(c, func(st *state.State) error {
		ls, err := st.FilteredListings(c.Request.Context(), kind)
		if err != nil {
			return err
		}
		resp = ListingsResponse{Kind: kind, Filters: st.Filters(), Sort: st.Sort(), Total: len(ls), Listings: ls}
		return nil
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, resp)
}

// PaginatedListings godoc
// @ID          paginatedListings
// @Summary     Current page of listings
// @Tags        Listings
// @Produce     json
// @Param       X-Session-ID header string false "Client session"
// @Param       kind         path   string true  "rent or sale" Enums(rent, sale)
// @Success     200 {object} listing.Page
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /listings/{kind}/page [get]
func (h *Handlers) PaginatedListings(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	var page listing.Page
	err := h.withState(c, func(st *state.State) (err error) {
		page, err = st.PaginatedListings(c.Request.Context(), kind)
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, page)
}

//
// Derived data
//

// PriceRange godoc
// @ID       priceRange
// @Summary  Min, max and average price over every listing of the kind
// @Tags     Derived
// @Produce  json
// @Param    kind path string true "rent or sale" Enums(rent, sale)
// @Success  200 {object} state.PriceRange
// @Router   /listings/{kind}/price-range [get]
func (h *Handlers) PriceRange(c *gin.Context) {
	derived(h, c, func(st *state.State, kind domain.Kind) (state.PriceRange, error) {
		return st.PriceRange(c.Request.Context(), kind)
	})
}

// BedroomCounts godoc
// @ID       bedroomCounts
// @Summary  Listing counts per bedroom bucket ("1", "2", "3+")
// @Tags     Derived
// @Produce  json
// @Param    kind path string true "rent or sale" Enums(rent, sale)
// @Success  200 {object} map[string]int
// @Router   /listings/{kind}/bedrooms [get]
func (h *Handlers) BedroomCounts(c *gin.Context) {
	derived(h, c, func(st *state.State, kind domain.Kind) (map[string]int, error) {
		return st.BedroomCounts(c.Request.Context(), kind)
	})
}

// UniqueLocations godoc
// @ID       uniqueLocations
// @Summary  Sorted distinct areas
// @Tags     Derived
// @Produce  json
// @Param    kind path string true "rent or sale" Enums(rent, sale)
// @Success  200 {array} string
// @Router   /listings/{kind}/locations [get]
func (h *Handlers) UniqueLocations(c *gin.Context) {
	derived(h, c, func(st *state.State, kind domain.Kind) ([]string, error) {
		return st.UniqueLocations(c.Request.Context(), kind)
	})
}

// UniqueTypes godoc
// @ID       uniqueTypes
// @Summary  Sorted distinct property types
// @Tags     Derived
// @Produce  json
// @Param    kind path string true "rent or sale" Enums(rent, sale)
// @Success  200 {array} string
// @Router   /listings/{kind}/types [get]
func (h *Handlers) UniqueTypes(c *gin.Context) {
	derived(h, c, func(st *state.State, kind domain.Kind) ([]string, error) {
		return st.UniqueTypes(c.Request.Context(), kind)
	})
}

// SearchSuggestions godoc
// @ID          searchSuggestions
// @Summary     Autocomplete suggestions
// @Description Up to 8 titles, areas, types or description words containing q. Queries shorter than 2 characters return none.
// @Tags        Derived
// @Produce     json
// @Param       kind path  string true "rent or sale" Enums(rent, sale)
// @Param       q    query string true "Partial text" example(gra)
// @Success     200 {object} handlers.SuggestionsResponse
// @Router      /listings/{kind}/suggestions [get]
func (h *Handlers) SearchSuggestions(c *gin.Context) {
	q := c.Query("q")
	derived(h, c, func(st *state.State, kind domain.Kind) (SuggestionsResponse, error) {
		s, err := st.SearchSuggestions(c.Request.Context(), q, kind)
		return SuggestionsResponse{Query: q, Suggestions: s}, err
	})
}

// SearchListings godoc
// @ID          searchListings
// @Summary     Keyword search
// @Description Ranks every listing of the kind against q. Session filters do not apply.
// @Tags        Derived
// @Produce     json
// @Param       kind path  string true  "rent or sale" Enums(rent, sale)
// @Param       q    query string true  "Keywords" example(self contain gra)
// @Param       k    query int    false "Max hits" minimum(1) maximum(50) default(10)
// @Success     200 {object} handlers.SearchResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /listings/{kind}/search [get]
func (h *Handlers) SearchListings(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "q is required")
		return
	}
	k := utils.Clamp(utils.AtoiDefault(c.Query("k"), defaultSearchK), 1, maxSearchK)
	derived(h, c, func(st *state.State, kind domain.Kind) (SearchResponse, error) {
		hits, err := st.SearchListings(c.Request.Context(), kind, q, k)
		return SearchResponse{Query: q, Hits: hits}, err
	})
}

// derived runs a per-kind read on the session state and writes the result.
func derived[T any](h *Handlers, c *gin.Context, read func(*state.State, domain.Kind) (T, error)) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	var out T
	err := h.withState(c, func(st *state.State) (err error) {
		out, err = read(st, kind)
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, out)
}

//
// Admin CRUD
//

// CreateListing godoc
// @ID       createListing
// @Summary  Create a listing
// @Description City and state default to Warri, Delta State.
// @Tags     Admin
// @Accept   json
// @Produce  json
// @Param    kind path string         true "rent or sale" Enums(rent, sale)
// @Param    body body domain.Listing true "Listing"
// @Success  201 {object} domain.Listing
// @Failure  400 {object} handlers.ErrorResponse
// @Router   /listings/{kind} [post]
func (h *Handlers) CreateListing(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	var in domain.Listing
	if !bindJSON(c, &in) {
		return
	}
	l, err := h.catalog.CreateListing(c.Request.Context(), kind, in)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusCreated, l)
}

// GetListing godoc
// @ID       getListing
// @Summary  Get a listing
// @Tags     Listings
// @Produce  json
// @Param    kind path string true "rent or sale" Enums(rent, sale)
// @Param    id   path string true "Listing id" example(apt_1)
// @Success  200 {object} domain.Listing
// @Failure  404 {object} handlers.ErrorResponse
// @Router   /listings/{kind}/{id} [get]
func (h *Handlers) GetListing(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	l, err := h.catalog.GetListing(c.Request.Context(), kind, c.Param("id"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// UpdateListing godoc
// @ID          updateListing
// @Summary     Patch a listing
// @Description Shallow merge of the given fields. id and createdAt cannot change.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Param       kind path string true "rent or sale" Enums(rent, sale)
// @Param       id   path string true "Listing id"
// @Param       body body object true "Fields to change"
// @Success     200 {object} domain.Listing
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /listings/{kind}/{id} [patch]
func (h *Handlers) UpdateListing(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	var p repo.Patch
	if !bindJSON(c, &p) {
		return
	}
	l, err := h.catalog.UpdateListing(c.Request.Context(), kind, c.Param("id"), p)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, l)
}

// DeleteListing godoc
// @ID          deleteListing
// @Summary     Delete a listing immediately
// @Description Applications keep their snapshot. Use the session delete flow for a confirmed delete.
// @Tags        Admin
// @Param       kind path string true "rent or sale" Enums(rent, sale)
// @Param       id   path string true "Listing id"
// @Success     204 {string} string "No Content"
// @Router      /listings/{kind}/{id} [delete]
func (h *Handlers) DeleteListing(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	if err := h.catalog.DeleteListing(c.Request.Context(), kind, c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// ListingApplications godoc
// @ID       listingApplications
// @Summary  Applications made on a rent listing
// @Tags     Admin
// @Produce  json
// @Param    kind path string true "rent" Enums(rent)
// @Param    id   path string true "Listing id"
// @Success  200 {array} domain.Application
// @Router   /listings/{kind}/{id}/applications [get]
func (h *Handlers) ListingApplications(c *gin.Context) {
	kind, good := kindParam(c)
	if !good {
		return
	}
	if kind != domain.KindRent {
		ok(c, http.StatusOK, []domain.Application{})
		return
	}
	var apps []domain.Application
	err := h.withState(c, func(st *state.State) (err error) {
		apps, err = st.ApplicationsForListing(c.Request.Context(), c.Param("id"))
		return err
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, apps)
}
