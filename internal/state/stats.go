package state

import (
	"context"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
)

// RecentWindow is the trailing window for recent-activity counts.
const RecentWindow = 7 * 24 * time.Hour

// MaxSuggestions caps SearchSuggestions output.
const MaxSuggestions = 8

// QuickStats is the admin dashboard summary.
type QuickStats struct {
	TotalRentListings       int                              `json:"totalRentListings"`
	AvailableRentListings   int                              `json:"availableRentListings"`
	TotalSaleListings       int                              `json:"totalSaleListings"`
	AvailableSaleListings   int                              `json:"availableSaleListings"`
	TotalAgents             int                              `json:"totalAgents"`
	TotalApplications       int                              `json:"totalApplications"`
	TotalInspections        int                              `json:"totalInspections"`
	TotalSupportTickets     int                              `json:"totalSupportTickets"`
	AvgPriceRent            int64                            `json:"avgPriceRent"`
	RecentApplications      int                              `json:"recentApplications"`
	RecentInspections       int                              `json:"recentInspections"`
	ApplicationStatusCounts map[domain.ApplicationStatus]int `json:"applicationStatusCounts"`
}

// QuickStats computes collection totals, the average price of available rent
// listings, and activity within the trailing RecentWindow.
func (s *State) QuickStats(ctx context.Context) (QuickStats, error) {
	var qs QuickStats
	rent, err := s.coll.Listings(ctx, domain.KindRent)
	if err != nil {
		return qs, err
	}
	sale, err := s.coll.Listings(ctx, domain.KindSale)
	if err != nil {
		return qs, err
	}
	agents, err := s.coll.Agents(ctx)
	if err != nil {
		return qs, err
	}
	apps, err := s.coll.Applications(ctx)
	if err != nil {
		return qs, err
	}
	insps, err := s.coll.Inspections(ctx)
	if err != nil {
		return qs, err
	}
	tickets, err := s.coll.SupportTickets(ctx)
	if err != nil {
		return qs, err
	}

	availRent := available(rent)
	qs = QuickStats{
		TotalRentListings:       len(rent),
		AvailableRentListings:   len(availRent),
		TotalSaleListings:       len(sale),
		AvailableSaleListings:   len(available(sale)),
		TotalAgents:             len(agents),
		TotalApplications:       len(apps),
		TotalInspections:        len(insps),
		TotalSupportTickets:     len(tickets),
		AvgPriceRent:            avgPrice(availRent),
		ApplicationStatusCounts: make(map[domain.ApplicationStatus]int),
	}

	since := s.now().Add(-RecentWindow).UnixMilli()
	for _, a := range apps {
		if a.CreatedAt > since {
			qs.RecentApplications++
		}
		qs.ApplicationStatusCounts[a.Status]++
	}
	for _, in := range insps {
		if in.CreatedAt > since {
			qs.RecentInspections++
		}
	}
	return qs, nil
}

// AgentListings returns the available listings of kind assigned to agentID.
func (s *State) AgentListings(ctx context.Context, agentID string, kind domain.Kind) ([]domain.Listing, error) {
	ls, err := s.coll.Listings(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := []domain.Listing{}
	for _, l := range ls {
		if l.AgentID == agentID && l.Available {
			out = append(out, l)
		}
	}
	return out, nil
}

// AgentStats summarizes one agent's portfolio.
type AgentStats struct {
	ActiveRentListings int   `json:"activeRentListings"`
	ActiveSaleListings int   `json:"activeSaleListings"`
	TotalApplications  int   `json:"totalApplications"`
	AverageRentPrice   int64 `json:"averageRentPrice"`
}

// AgentStats counts the agent's available listings and the applications made
// on their rent listings. An application whose listing is gone is attributed
// through its snapshot.
func (s *State) AgentStats(ctx context.Context, agentID string) (AgentStats, error) {
	var st AgentStats
	rent, err := s.AgentListings(ctx, agentID, domain.KindRent)
	if err != nil {
		return st, err
	}
	sale, err := s.AgentListings(ctx, agentID, domain.KindSale)
	if err != nil {
		return st, err
	}
	allRent, err := s.coll.Listings(ctx, domain.KindRent)
	if err != nil {
		return st, err
	}
	apps, err := s.coll.Applications(ctx)
	if err != nil {
		return st, err
	}

	byID := make(map[string]domain.Listing, len(allRent))
	for _, l := range allRent {
		byID[l.ID] = l
	}
	for _, a := range apps {
		if l, ok := byID[a.ApartmentID]; ok {
			if l.AgentID == agentID {
				st.TotalApplications++
			}
			continue
		}
		if a.Snapshot != nil && a.Snapshot.AgentID == agentID {
			st.TotalApplications++
		}
	}

	st.ActiveRentListings = len(rent)
	st.ActiveSaleListings = len(sale)
	st.AverageRentPrice = avgPrice(rent)
	return st, nil
}

// PriceRange is the min, max and rounded mean price of a set of listings.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
	Avg int64 `json:"avg"`
}

// PriceRange covers every listing of kind, available or not. It is all zeros
// when there are none.
func (s *State) PriceRange(ctx context.Context, kind domain.Kind) (PriceRange, error) {
	ls, err := s.coll.Listings(ctx, kind)
	if err != nil || len(ls) == 0 {
		return PriceRange{}, err
	}
	pr := PriceRange{Min: ls[0].Price, Max: ls[0].Price}
	for _, l := range ls[1:] {
		pr.Min = min(pr.Min, l.Price)
		pr.Max = max(pr.Max, l.Price)
	}
	pr.Avg = avgPrice(ls)
	return pr, nil
}

// BedroomCounts buckets listings of kind by bedroom count. Three or more
// bedrooms share the "3+" bucket.
func (s *State) BedroomCounts(ctx context.Context, kind domain.Kind) (map[string]int, error) {
	ls, err := s.coll.Listings(ctx, kind)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, l := range ls {
		key := strconv.Itoa(l.Bedrooms)
		if l.Bedrooms >= 3 {
			key = "3+"
		}
		counts[key]++
	}
	return counts, nil
}

// UniqueLocations returns the sorted, deduplicated areas of kind.
func (s *State) UniqueLocations(ctx context.Context, kind domain.Kind) ([]string, error) {
	return s.unique(ctx, kind, func(l domain.Listing) string { return l.Area })
}

// UniqueTypes returns the sorted, deduplicated property types of kind.
func (s *State) UniqueTypes(ctx context.Context, kind domain.Kind) ([]string, error) {
	return s.unique(ctx, kind, func(l domain.Listing) string { return l.Type })
}

func (s *State) unique(ctx context.Context, kind domain.Kind, field func(domain.Listing) string) ([]string, error) {
	ls, err := s.coll.Listings(ctx, kind)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(ls))
	out := []string{}
	for _, l := range ls {
		v := field(l)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out, nil
}

// SearchSuggestions returns up to MaxSuggestions distinct strings from
// listings of kind that contain query, case-insensitively. Per listing the
// title is checked first, then area, then type, then each description word
// longer than three characters (lowercased). Queries shorter than two
// characters yield nothing.
func (s *State) SearchSuggestions(ctx context.Context, query string, kind domain.Kind) ([]string, error) {
	if utf8.RuneCountInString(query) < 2 {
		return []string{}, nil
	}
	ls, err := s.coll.Listings(ctx, kind)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)

	seen := map[string]struct{}{}
	out := []string{}
	add := func(v string) {
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, l := range ls {
		for _, field := range []string{l.Title, l.Area, l.Type} {
			if strings.Contains(strings.ToLower(field), q) {
				add(field)
			}
		}
		for _, w := range strings.Split(strings.ToLower(l.Description), " ") {
			if utf8.RuneCountInString(w) > 3 && strings.Contains(w, q) {
				add(w)
			}
		}
		if len(out) >= MaxSuggestions {
			break
		}
	}
	if len(out) > MaxSuggestions {
		out = out[:MaxSuggestions]
	}
	return out, nil
}

func available(ls []domain.Listing) []domain.Listing {
	out := make([]domain.Listing, 0, len(ls))
	for _, l := range ls {
		if l.Available {
			out = append(out, l)
		}
	}
	return out
}

func avgPrice(ls []domain.Listing) int64 {
	if len(ls) == 0 {
		return 0
	}
	var sum int64
	for _, l := range ls {
		sum += l.Price
	}
	return int64(math.Round(float64(sum) / float64(len(ls))))
}
