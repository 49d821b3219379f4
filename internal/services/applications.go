package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/format"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
)

// ApplicationRepo is the persistence contract ApplicationService needs.
type ApplicationRepo interface {
	GetListing(ctx context.Context, kind domain.Kind, id string) (*domain.Listing, error)
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	Applications(ctx context.Context) ([]domain.Application, error)
	GetApplication(ctx context.Context, id string) (*domain.Application, error)
	AddApplication(ctx context.Context, a domain.Application) (*domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

// ApplicationInput is the rental application form.
type ApplicationInput struct {
	ApartmentID      string `json:"apartmentId"`
	ApplicantName    string `json:"applicantName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	PreferredContact string `json:"preferredContact"`
	CurrentAddress   string `json:"currentAddress"`
	EmploymentStatus string `json:"employmentStatus"`
	MoveInDate       string `json:"moveInDate"`
	Notes            string `json:"notes"`
}

// ApplicationService validates and records rental applications and drives
// their status.
type ApplicationService struct {
	Repo ApplicationRepo
	Now  func() time.Time
}

// NewApplicationService returns a service using the wall clock.
func NewApplicationService(r ApplicationRepo) *ApplicationService {
	return &ApplicationService{Repo: r, Now: time.Now}
}

// Validate checks the form and returns the application to store, with the
// phone normalized to +234 form. The first failing field is reported as a
// *FieldError.
func (s *ApplicationService) Validate(in ApplicationInput) (domain.Application, error) {
	a := domain.Application{
		ApartmentID:      strings.TrimSpace(in.ApartmentID),
		ApplicantName:    strings.TrimSpace(in.ApplicantName),
		Email:            strings.TrimSpace(in.Email),
		PreferredContact: strings.TrimSpace(in.PreferredContact),
		CurrentAddress:   strings.TrimSpace(in.CurrentAddress),
		EmploymentStatus: strings.TrimSpace(in.EmploymentStatus),
		MoveInDate:       strings.TrimSpace(in.MoveInDate),
		Notes:            strings.TrimSpace(in.Notes),
	}
	for _, f := range []struct{ name, v string }{
		{"apartmentId", a.ApartmentID},
		{"applicantName", a.ApplicantName},
		{"phone", strings.TrimSpace(in.Phone)},
		{"preferredContact", a.PreferredContact},
		{"currentAddress", a.CurrentAddress},
		{"employmentStatus", a.EmploymentStatus},
		{"moveInDate", a.MoveInDate},
	} {
		if f.v == "" {
			return a, fieldErr(f.name, ErrMissingField)
		}
	}

	phone, err := format.NormalizePhone(in.Phone)
	if err != nil {
		return a, fieldErr("phone", ErrInvalidPhone)
	}
	a.Phone = phone

	if a.Email != "" && !format.ValidEmail(a.Email) {
		return a, fieldErr("email", ErrInvalidEmail)
	}

	day, err := format.ParseDay(a.MoveInDate)
	if err != nil {
		return a, fieldErr("moveInDate", ErrInvalidDate)
	}
	if format.BeforeToday(day, s.Now()) {
		return a, fieldErr("moveInDate", ErrMoveInPast)
	}
	return a, nil
}

// Submit validates in, checks that it names an available rent listing, and
// stores it with status Submitted.
func (s *ApplicationService) Submit(ctx context.Context, in ApplicationInput) (*domain.Application, error) {
	a, err := s.Validate(in)
	if err != nil {
		return nil, err
	}
	l, err := s.Repo.GetListing(ctx, domain.KindRent, a.ApartmentID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, fieldErr("apartmentId", ErrListingUnavailable)
	}
	if err != nil {
		return nil, err
	}
	if !l.Available {
		return nil, fieldErr("apartmentId", ErrListingUnavailable)
	}
	a.Status = domain.StatusSubmitted
	return s.Repo.AddApplication(ctx, a)
}

// Get returns the application with id.
func (s *ApplicationService) Get(ctx context.Context, id string) (*domain.Application, error) {
	return s.Repo.GetApplication(ctx, id)
}

// List returns every application, newest first.
func (s *ApplicationService) List(ctx context.Context) ([]domain.Application, error) {
	apps, err := s.Repo.Applications(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(apps, func(a domain.Application) int64 { return a.CreatedAt }), nil
}

// SetStatus assigns status to the application with id. Any known status may
// follow any other.
func (s *ApplicationService) SetStatus(ctx context.Context, id, status string) (*domain.Application, error) {
	st := domain.ApplicationStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, fieldErr("status", ErrInvalidStatus)
	}
	return s.Repo.UpdateApplicationStatus(ctx, id, st)
}

// newestFirst returns a copy of items sorted by descending creation time.
// Ties keep their stored order.
func newestFirst[T any](items []T, created func(T) int64) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		ca, cb := created(a), created(b)
		switch {
		case ca > cb:
			return -1
		case ca < cb:
			return 1
		}
		return 0
	})
	return out
}
