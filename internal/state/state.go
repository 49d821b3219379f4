// Package state is the listing portal's client-side state holder.
//
// A State owns the active filter set, sort mode and page, the transient UI
// machines (gallery, modal, delete confirmation), and a single-entry cache of
// the filtered+sorted listing view. The cache key is (kind, filters, sort);
// any change notification naming a listings collection invalidates it.
//
// A State is not safe for concurrent use; its owner serializes calls. The
// only cross-goroutine entry point is the store listener, which bumps an
// atomic generation counter instead of touching the cache directly.
package state

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/listing"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/search"
	"github.com/tbourn/warri-apartment-hunt/internal/uistate"
)

// Option configures a State.
type Option func(*State)

// WithPageSize overrides listing.DefaultPageSize. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithClock replaces the wall clock used by time-windowed stats.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		if now != nil {
			s.now = now
		}
	}
}

// WithInitialSort sets the starting sort mode (default "newest").
func WithInitialSort(m listing.SortMode) Option {
	return func(s *State) { s.sort = m }
}

type viewEntry struct {
	key      string
	gen      uint64
	listings []domain.Listing
}

type indexEntry struct {
	gen uint64
	idx search.Index
}

// State is one client's view state over the shared collections.
type State struct {
	coll     *repo.Collections
	now      func() time.Time
	pageSize int

	filters listing.Filters
	sort    listing.SortMode
	page    int

	gen     atomic.Uint64
	view    *viewEntry
	indexes map[domain.Kind]indexEntry
	hits    uint64
	misses  uint64

	gallery uistate.Gallery
	modal   uistate.Modal
	confirm *uistate.DeleteConfirm

	unsubscribe func()
}

// New returns a State reading from coll and subscribed to its store's change
// notifications. Call Close to unsubscribe.
func New(coll *repo.Collections, opts ...Option) *State {
	s := &State{
		coll:     coll,
		now:      time.Now,
		pageSize: listing.DefaultPageSize,
		filters:  listing.DefaultFilters(),
		sort:     listing.SortNewest,
		page:     1,
		indexes:  make(map[domain.Kind]indexEntry, 2),
	}
	for _, o := range opts {
		o(s)
	}
	s.confirm = uistate.NewDeleteConfirm(&s.modal)
	s.unsubscribe = coll.Store.OnChanged(s.onChanged)
	return s
}

// Close unsubscribes from change notifications. It is safe to call twice.
func (s *State) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *State) onChanged(keys []domain.Collection) {
	for _, k := range keys {
		if k.IsListings() {
			s.gen.Add(1)
			invalidations.Inc()
			return
		}
	}
}

// invalidate drops the cached view.
func (s *State) invalidate() {
	s.view = nil
}

// CacheKey returns the composite key for kind under the current filters and
// sort mode.
func (s *State) CacheKey(kind domain.Kind) string {
	return string(kind) + "_" + s.filters.Key() + "_" + string(s.sort)
}

// FilteredListings returns the filtered and sorted listings of kind. Repeated
// calls with no intervening change return the same slice; callers must not
// modify it.
func (s *State) FilteredListings(ctx context.Context, kind domain.Kind) ([]domain.Listing, error) {
	key := s.CacheKey(kind)
	gen := s.gen.Load()
	if v := s.view; v != nil && v.key == key && v.gen == gen {
		s.hits++
		cacheLookups.WithLabelValues("hit").Inc()
		return v.listings, nil
	}

	all, err := s.coll.Listings(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := listing.Sort(listing.Filter(all, s.filters), s.sort)

	s.misses++
	cacheLookups.WithLabelValues("miss").Inc()
	s.view = &viewEntry{key: key, gen: gen, listings: out}
	return out, nil
}

// PaginatedListings returns the current page of FilteredListings.
func (s *State) PaginatedListings(ctx context.Context, kind domain.Kind) (listing.Page, error) {
	ls, err := s.FilteredListings(ctx, kind)
	if err != nil {
		return listing.Page{}, err
	}
	return listing.Paginate(ls, s.page, s.pageSize), nil
}

// Filters returns the active filter set.
func (s *State) Filters() listing.Filters { return s.filters }

// UpdateSearchFilters merges p over the active filters, invalidates the view,
// and returns to page 1.
func (s *State) UpdateSearchFilters(p listing.FilterPatch) {
	s.filters = p.Apply(s.filters)
	s.invalidate()
	s.page = 1
}

// ClearSearchFilters restores the default filters, invalidates the view, and
// returns to page 1.
func (s *State) ClearSearchFilters() {
	s.filters = listing.DefaultFilters()
	s.invalidate()
	s.page = 1
}

// Sort returns the active sort mode.
func (s *State) Sort() listing.SortMode { return s.sort }

// UpdateSort changes the sort mode and invalidates the view. The page is kept.
func (s *State) UpdateSort(m listing.SortMode) {
	s.sort = m
	s.invalidate()
}

// Page returns the current page number (1-based).
func (s *State) Page() int { return s.page }

// PageSize returns the number of listings per page.
func (s *State) PageSize() int { return s.pageSize }

// SetPage moves to page n, clamped to at least 1. No upper bound is applied;
// a page past the end paginates to an empty slice.
func (s *State) SetPage(n int) {
	s.page = max(1, n)
}

// NextPage advances one page when kind's current view has a next page.
func (s *State) NextPage(ctx context.Context, kind domain.Kind) error {
	p, err := s.PaginatedListings(ctx, kind)
	if err != nil {
		return err
	}
	if p.HasNextPage {
		s.page++
	}
	return nil
}

// PrevPage goes back one page unless already on page 1.
func (s *State) PrevPage() {
	if s.page > 1 {
		s.page--
	}
}

// CacheStats describes the view cache.
type CacheStats struct {
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Generation uint64 `json:"generation"`
	Key        string `json:"key,omitempty"`
	Valid      bool   `json:"valid"`
}

// CacheStats returns hit and miss counters and the cached key, if any.
func (s *State) CacheStats() CacheStats {
	st := CacheStats{Hits: s.hits, Misses: s.misses, Generation: s.gen.Load()}
	if v := s.view; v != nil {
		st.Key = v.key
		st.Valid = v.gen == st.Generation
	}
	return st
}
