package state

import (
	"context"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/search"
)

// SearchHit is a keyword search result.
type SearchHit struct {
	Listing domain.Listing `json:"listing"`
	Score   float64        `json:"score"`
}

// SearchListings ranks every listing of kind against q and returns up to k
// hits. Filters do not apply. The per-kind index is rebuilt after any
// listings change.
func (s *State) SearchListings(ctx context.Context, kind domain.Kind, q string, k int) ([]SearchHit, error) {
	gen := s.gen.Load()
	ls, err := s.coll.Listings(ctx, kind)
	if err != nil {
		return nil, err
	}
	e, ok := s.indexes[kind]
	if !ok || e.gen != gen {
		e = indexEntry{gen: gen, idx: search.NewListingIndex(ls, search.WithStopwords(search.DefaultStopwords))}
		s.indexes[kind] = e
	}

	byID := make(map[string]domain.Listing, len(ls))
	for _, l := range ls {
		byID[l.ID] = l
	}
	hits := []SearchHit{}
	for _, r := range e.idx.TopK(q, k) {
		if l, ok := byID[r.ID]; ok {
			hits = append(hits, SearchHit{Listing: l, Score: r.Score})
		}
	}
	return hits, nil
}
