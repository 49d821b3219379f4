package state

import (
	"context"
	"errors"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
)

// UserApplications returns the applications submitted with phone.
func (s *State) UserApplications(ctx context.Context, phone string) ([]domain.Application, error) {
	apps, err := s.coll.Applications(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Application{}
	for _, a := range apps {
		if a.Phone == phone {
			out = append(out, a)
		}
	}
	return out, nil
}

// ApplicationsForListing returns the applications made on apartmentID.
func (s *State) ApplicationsForListing(ctx context.Context, apartmentID string) ([]domain.Application, error) {
	apps, err := s.coll.Applications(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Application{}
	for _, a := range apps {
		if a.ApartmentID == apartmentID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ResolveListing follows an application's listing reference. ok is false when
// the listing has been deleted.
func (s *State) ResolveListing(ctx context.Context, a domain.Application) (*domain.Listing, bool, error) {
	l, err := s.coll.GetListing(ctx, domain.KindRent, a.ApartmentID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return l, true, nil
}

// ApplicationView is an application with the listing fields used for
// display. Live is false when those fields come from the snapshot.
type ApplicationView struct {
	domain.Application
	ListingTitle string `json:"listingTitle"`
	ListingArea  string `json:"listingArea"`
	ListingPrice int64  `json:"listingPrice"`
	AgentID      string `json:"listingAgentId"`
	Live         bool   `json:"listingLive"`
}

// ViewApplication resolves the listing of a and falls back to its snapshot
// when the listing is gone. Without either, the listing fields stay empty.
func (s *State) ViewApplication(ctx context.Context, a domain.Application) (ApplicationView, error) {
	v := ApplicationView{Application: a}
	l, ok, err := s.ResolveListing(ctx, a)
	if err != nil {
		return v, err
	}
	switch {
	case ok:
		v.ListingTitle, v.ListingArea, v.ListingPrice, v.AgentID = l.Title, l.Area, l.Price, l.AgentID
		v.Live = true
	case a.Snapshot != nil:
		v.ListingTitle, v.ListingArea, v.ListingPrice, v.AgentID = a.Snapshot.Title, a.Snapshot.Area, a.Snapshot.Price, a.Snapshot.AgentID
	}
	return v, nil
}
