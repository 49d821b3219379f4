package services

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/format"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
)

// InquiryRepo is the persistence contract InquiryService needs.
type InquiryRepo interface {
	GetListing(ctx context.Context, kind domain.Kind, id string) (*domain.Listing, error)
	Inspections(ctx context.Context) ([]domain.Inspection, error)
	GetInspection(ctx context.Context, id string) (*domain.Inspection, error)
	AddInspection(ctx context.Context, in domain.Inspection) (*domain.Inspection, error)
	UpdateInspectionStatus(ctx context.Context, id string, status domain.InspectionStatus) (*domain.Inspection, error)
	SupportTickets(ctx context.Context) ([]domain.SupportTicket, error)
	GetSupportTicket(ctx context.Context, id string) (*domain.SupportTicket, error)
	AddSupportTicket(ctx context.Context, t domain.SupportTicket) (*domain.SupportTicket, error)
}

// InspectionInput is the viewing request form.
type InspectionInput struct {
	ApartmentID string `json:"apartmentId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// TicketInput is the contact form.
type TicketInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

var clockTime = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// InquiryService records inspection requests and support tickets.
type InquiryService struct {
	Repo InquiryRepo
	Now  func() time.Time
}

// NewInquiryService returns a service using the wall clock.
func NewInquiryService(r InquiryRepo) *InquiryService {
	return &InquiryService{Repo: r, Now: time.Now}
}

// RequestInspection validates in and stores a Pending inspection. The listing
// must exist and the day must not be in the past.
func (s *InquiryService) RequestInspection(ctx context.Context, in InspectionInput) (*domain.Inspection, error) {
	insp := domain.Inspection{
		ApartmentID:   strings.TrimSpace(in.ApartmentID),
		ApplicantName: strings.TrimSpace(in.Name),
		Date:          strings.TrimSpace(in.Date),
		Time:          strings.TrimSpace(in.Time),
	}
	for _, f := range []struct{ name, v string }{
		{"apartmentId", insp.ApartmentID},
		{"name", insp.ApplicantName},
		{"phone", strings.TrimSpace(in.Phone)},
		{"date", insp.Date},
		{"time", insp.Time},
	} {
		if f.v == "" {
			return nil, fieldErr(f.name, ErrMissingField)
		}
	}
	phone, err := format.NormalizePhone(in.Phone)
	if err != nil {
		return nil, fieldErr("phone", ErrInvalidPhone)
	}
	insp.Phone = phone

	day, err := format.ParseDay(insp.Date)
	if err != nil {
		return nil, fieldErr("date", ErrInvalidDate)
	}
	if format.BeforeToday(day, s.Now()) {
		return nil, fieldErr("date", ErrDateInPast)
	}
	if !clockTime.MatchString(insp.Time) {
		return nil, fieldErr("time", ErrInvalidValue)
	}

	if _, err := s.Repo.GetListing(ctx, domain.KindRent, insp.ApartmentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fieldErr("apartmentId", ErrListingUnavailable)
		}
		return nil, err
	}
	insp.Status = domain.InspectionPending
	return s.Repo.AddInspection(ctx, insp)
}

// Inspections returns every inspection ordered by requested day and time.
func (s *InquiryService) Inspections(ctx context.Context) ([]domain.Inspection, error) {
	all, err := s.Repo.Inspections(ctx)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(all)
	slices.SortStableFunc(out, func(a, b domain.Inspection) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
	})
	return out, nil
}

// Inspection returns one inspection.
func (s *InquiryService) Inspection(ctx context.Context, id string) (*domain.Inspection, error) {
	return s.Repo.GetInspection(ctx, id)
}

// SetInspectionStatus assigns status to the inspection with id.
func (s *InquiryService) SetInspectionStatus(ctx context.Context, id, status string) (*domain.Inspection, error) {
	st := domain.InspectionStatus(strings.TrimSpace(status))
	if !st.Valid() {
		return nil, fieldErr("status", ErrInvalidStatus)
	}
	return s.Repo.UpdateInspectionStatus(ctx, id, st)
}

// OpenTicket validates in and stores a support ticket.
func (s *InquiryService) OpenTicket(ctx context.Context, in TicketInput) (*domain.SupportTicket, error) {
	t := domain.SupportTicket{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	for _, f := range []struct{ name, v string }{
		{"name", t.Name},
		{"phone", strings.TrimSpace(in.Phone)},
		{"subject", t.Subject},
		{"message", t.Message},
	} {
		if f.v == "" {
			return nil, fieldErr(f.name, ErrMissingField)
		}
	}
	phone, err := format.NormalizePhone(in.Phone)
	if err != nil {
		return nil, fieldErr("phone", ErrInvalidPhone)
	}
	t.Phone = phone
	if t.Email != "" && !format.ValidEmail(t.Email) {
		return nil, fieldErr("email", ErrInvalidEmail)
	}
	return s.Repo.AddSupportTicket(ctx, t)
}

// Ticket returns one support ticket.
func (s *InquiryService) Ticket(ctx context.Context, id string) (*domain.SupportTicket, error) {
	return s.Repo.GetSupportTicket(ctx, id)
}

// Tickets returns every support ticket, newest first.
func (s *InquiryService) Tickets(ctx context.Context) ([]domain.SupportTicket, error) {
	all, err := s.Repo.SupportTickets(ctx)
	if err != nil {
		return nil, err
	}
	return newestFirst(all, func(t domain.SupportTicket) int64 { return t.CreatedAt }), nil
}
