package session

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/listing"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
	"github.com/tbourn/warri-apartment-hunt/internal/store"
)

func newRegistry(t *testing.T, capacity int) (*Registry, *repo.Collections, *int) {
	t.Helper()
	c := repo.NewCollections(store.NewMemory())
	built := 0
	r, err := NewRegistry(capacity, func() *state.State {
		built++
		return state.New(c)
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	t.Cleanup(r.Close)
	return r, c, &built
}

func TestNormalizeID(t *testing.T) {
	long := strings.Repeat("x", MaxIDLen+10)
	cases := map[string]string{
		"":       DefaultID,
		"   ":    DefaultID,
		" tab-1": "tab-1",
		long:     long[:MaxIDLen],
	}
	for in, want := range cases {
		if got := NormalizeID(in); got != want {
			t.Fatalf("NormalizeID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWith_SessionsAreIsolated(t *testing.T) {
	r, _, built := newRegistry(t, 4)

	bedrooms := "2"
	if err := r.With("a", func(s *state.State) error {
		s.UpdateSearchFilters(listing.FilterPatch{Bedrooms: &bedrooms})
		return nil
	}); err != nil {
		t.Fatalf("With: %v", err)
	}
	var got listing.Filters
	_ = r.With("b", func(s *state.State) error { got = s.Filters(); return nil })
	if got.Bedrooms != "" {
		t.Fatalf("session b saw a's filters: %+v", got)
	}
	_ = r.With("a", func(s *state.State) error { got = s.Filters(); return nil })
	if got.Bedrooms != "2" {
		t.Fatalf("session a lost its filters: %+v", got)
	}
	if *built != 2 || r.Len() != 2 {
		t.Fatalf("built=%d len=%d", *built, r.Len())
	}
}

func TestWith_EvictsLeastRecentlyUsed(t *testing.T) {
	r, _, built := newRegistry(t, 2)
	noop := func(*state.State) error { return nil }

	_ = r.With("a", noop)
	_ = r.With("b", noop)
	_ = r.With("a", noop) // a is now most recent
	_ = r.With("c", noop) // evicts b
	if r.Len() != 2 {
		t.Fatalf("Len: %d", r.Len())
	}
	_ = r.With("a", noop)
	if *built != 3 {
		t.Fatalf("a should have survived eviction, built=%d", *built)
	}
	_ = r.With("b", noop)
	if *built != 4 {
		t.Fatalf("b should have been rebuilt, built=%d", *built)
	}
}

func TestRemove_ClosesState(t *testing.T) {
	r, c, _ := newRegistry(t, 2)
	ctx := context.Background()

	var held *state.State
	_ = r.With("a", func(s *state.State) error {
		held = s
		_, err := s.FilteredListings(ctx, domain.KindRent)
		return err
	})
	r.Remove("a")

	before := held.CacheStats().Generation
	if _, err := c.AddListing(ctx, domain.KindRent, domain.Listing{Title: "x", Available: true}); err != nil {
		t.Fatalf("AddListing: %v", err)
	}
	if held.CacheStats().Generation != before {
		t.Fatalf("removed session still receives invalidations")
	}
	if r.Len() != 0 {
		t.Fatalf("Len after Remove: %d", r.Len())
	}
}

func TestWith_SerializesPerSession(t *testing.T) {
	r, _, _ := newRegistry(t, 4)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.With("shared", func(s *state.State) error {
				s.SetPage(s.Page() + 1)
				return nil
			})
		}()
	}
	wg.Wait()
	var page int
	_ = r.With("shared", func(s *state.State) error { page = s.Page(); return nil })
	if page != 51 {
		t.Fatalf("page = %d, want 51", page)
	}
}

func TestNewRegistry_InvalidCapacity(t *testing.T) {
	if _, err := NewRegistry(0, nil); err == nil {
		t.Fatalf("expected error for zero capacity")
	}
}
