package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/format"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
)

// Default location of listings created from the admin form.
const (
	DefaultCity  = "Warri"
	DefaultState = "Delta State"
)

// CatalogRepo is the persistence contract CatalogService needs.
type CatalogRepo interface {
	Listings(ctx context.Context, kind domain.Kind) ([]domain.Listing, error)
	GetListing(ctx context.Context, kind domain.Kind, id string) (*domain.Listing, error)
	AddListing(ctx context.Context, kind domain.Kind, l domain.Listing) (*domain.Listing, error)
	UpdateListing(ctx context.Context, kind domain.Kind, id string, p repo.Patch) (*domain.Listing, error)
	DeleteListing(ctx context.Context, kind domain.Kind, id string) error
	Agents(ctx context.Context) ([]domain.Agent, error)
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	AddAgent(ctx context.Context, a domain.Agent) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, id string, p repo.Patch) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, id string) error
}

// CatalogService is the admin surface over listings and agents.
type CatalogService struct {
	Repo CatalogRepo
}

// NewCatalogService returns a CatalogService over r.
func NewCatalogService(r CatalogRepo) *CatalogService {
	return &CatalogService{Repo: r}
}

// ParseKind maps "rent" and "sale" to a listing kind.
func ParseKind(s string) (domain.Kind, error) {
	k, err := domain.ParseKind(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return "", ErrUnknownKind
	}
	return k, nil
}

// ---- listings ----

func normalizeListing(l domain.Listing) (domain.Listing, error) {
	l.Title = strings.TrimSpace(l.Title)
	l.Area = strings.TrimSpace(l.Area)
	l.Type = strings.TrimSpace(l.Type)
	l.City = strings.TrimSpace(l.City)
	l.State = strings.TrimSpace(l.State)
	l.LeadImageURL = strings.TrimSpace(l.LeadImageURL)
	if l.City == "" {
		l.City = DefaultCity
	}
	if l.State == "" {
		l.State = DefaultState
	}
	imgs := make([]string, 0, len(l.ImageURLs))
	for _, u := range l.ImageURLs {
		if u = strings.TrimSpace(u); u != "" {
			imgs = append(imgs, u)
		}
	}
	l.ImageURLs = imgs

	switch {
	case l.Title == "":
		return l, fieldErr("title", ErrMissingField)
	case l.Area == "":
		return l, fieldErr("area", ErrMissingField)
	case l.Type == "":
		return l, fieldErr("type", ErrMissingField)
	case l.Price < 0:
		return l, fieldErr("price", ErrInvalidValue)
	case l.Bedrooms < 0:
		return l, fieldErr("bedrooms", ErrInvalidValue)
	case l.Bathrooms < 0:
		return l, fieldErr("bathrooms", ErrInvalidValue)
	case l.SizeSqm != nil && *l.SizeSqm <= 0:
		return l, fieldErr("sizeSqm", ErrInvalidValue)
	}
	return l, nil
}

// Listings returns every listing of kind in stored order.
func (s *CatalogService) Listings(ctx context.Context, kind domain.Kind) ([]domain.Listing, error) {
	return s.Repo.Listings(ctx, kind)
}

// GetListing returns one listing.
func (s *CatalogService) GetListing(ctx context.Context, kind domain.Kind, id string) (*domain.Listing, error) {
	return s.Repo.GetListing(ctx, kind, id)
}

// CreateListing validates l and adds it under kind.
func (s *CatalogService) CreateListing(ctx context.Context, kind domain.Kind, l domain.Listing) (*domain.Listing, error) {
	l, err := normalizeListing(l)
	if err != nil {
		return nil, err
	}
	return s.Repo.AddListing(ctx, kind, l)
}

// UpdateListing validates the listing p would produce and then applies p.
func (s *CatalogService) UpdateListing(ctx context.Context, kind domain.Kind, id string, p repo.Patch) (*domain.Listing, error) {
	cur, err := s.Repo.GetListing(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	merged, err := preview(*cur, p)
	if err != nil {
		return nil, err
	}
	if _, err := normalizeListing(merged); err != nil {
		return nil, err
	}
	return s.Repo.UpdateListing(ctx, kind, id, p)
}

// DeleteListing removes a listing. Applications keep their snapshot.
func (s *CatalogService) DeleteListing(ctx context.Context, kind domain.Kind, id string) error {
	return s.Repo.DeleteListing(ctx, kind, id)
}

// ---- agents ----

func normalizeAgent(a domain.Agent) (domain.Agent, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.AvatarURL = strings.TrimSpace(a.AvatarURL)
	a.Bio = strings.TrimSpace(a.Bio)
	if a.Name == "" {
		return a, fieldErr("name", ErrMissingField)
	}
	if strings.TrimSpace(a.Phone) == "" {
		return a, fieldErr("phone", ErrMissingField)
	}
	phone, err := format.NormalizePhone(a.Phone)
	if err != nil {
		return a, fieldErr("phone", ErrInvalidPhone)
	}
	a.Phone = phone
	if strings.TrimSpace(a.WhatsApp) == "" {
		a.WhatsApp = phone
	} else if a.WhatsApp, err = format.NormalizePhone(a.WhatsApp); err != nil {
		return a, fieldErr("whatsapp", ErrInvalidPhone)
	}

	seen := make(map[string]bool, len(a.AreasCovered))
	areas := make([]string, 0, len(a.AreasCovered))
	for _, ar := range a.AreasCovered {
		ar = strings.TrimSpace(ar)
		if ar == "" || seen[ar] {
			continue
		}
		seen[ar] = true
		areas = append(areas, ar)
	}
	a.AreasCovered = areas
	return a, nil
}

// Agents returns every agent.
func (s *CatalogService) Agents(ctx context.Context) ([]domain.Agent, error) {
	return s.Repo.Agents(ctx)
}

// GetAgent returns one agent.
func (s *CatalogService) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return s.Repo.GetAgent(ctx, id)
}

// CreateAgent validates a, normalizes its phone numbers, and adds it.
// WhatsApp defaults to the phone number.
func (s *CatalogService) CreateAgent(ctx context.Context, a domain.Agent) (*domain.Agent, error) {
	a, err := normalizeAgent(a)
	if err != nil {
		return nil, err
	}
	return s.Repo.AddAgent(ctx, a)
}

// UpdateAgent validates the agent p would produce and stores it with
// normalized phone numbers.
func (s *CatalogService) UpdateAgent(ctx context.Context, id string, p repo.Patch) (*domain.Agent, error) {
	cur, err := s.Repo.GetAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	merged, err := preview(*cur, p)
	if err != nil {
		return nil, err
	}
	norm, err := normalizeAgent(merged)
	if err != nil {
		return nil, err
	}
	out := make(repo.Patch, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	for k, v := range map[string]string{"phone": norm.Phone, "whatsapp": norm.WhatsApp} {
		if _, ok := p[k]; ok {
			out[k], _ = json.Marshal(v)
		}
	}
	return s.Repo.UpdateAgent(ctx, id, out)
}

// DeleteAgent removes an agent. Their listings keep the dangling agentId.
func (s *CatalogService) DeleteAgent(ctx context.Context, id string) error {
	return s.Repo.DeleteAgent(ctx, id)
}

// preview decodes p over a copy of rec the way the repo merges patches.
func preview[T any](rec T, p repo.Patch) (T, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return rec, fmt.Errorf("%w: %v", repo.ErrInvalidPatch, err)
	}
	out := rec
	if err := json.Unmarshal(b, &out); err != nil {
		return rec, fmt.Errorf("%w: %v", repo.ErrInvalidPatch, err)
	}
	return out, nil
}
