package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/http/middleware"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/services"
	"github.com/tbourn/warri-apartment-hunt/internal/state"
)

//
// Service contracts (context-aware)
//

// Sessions runs fn against the view state of one client session. Calls for
// the same session never overlap.
type Sessions interface {
	With(id string, fn func(*state.State) error) error
}

// CatalogService is the admin surface over listings and agents.
type CatalogService interface {
	Listings(ctx context.Context, kind domain.Kind) ([]domain.Listing, error)
	GetListing(ctx context.Context, kind domain.Kind, id string) (*domain.Listing, error)
	CreateListing(ctx context.Context, kind domain.Kind, l domain.Listing) (*domain.Listing, error)
	UpdateListing(ctx context.Context, kind domain.Kind, id string, p repo.Patch) (*domain.Listing, error)
	DeleteListing(ctx context.Context, kind domain.Kind, id string) error
	Agents(ctx context.Context) ([]domain.Agent, error)
	GetAgent(ctx context.Context, id string) (*domain.Agent, error)
	CreateAgent(ctx context.Context, a domain.Agent) (*domain.Agent, error)
	UpdateAgent(ctx context.Context, id string, p repo.Patch) (*domain.Agent, error)
	DeleteAgent(ctx context.Context, id string) error
}

// ApplicationService records rental applications and drives their status.
type ApplicationService interface {
	Submit(ctx context.Context, in services.ApplicationInput) (*domain.Application, error)
	Get(ctx context.Context, id string) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Application, error)
	Summarize(ctx context.Context, id string) (*services.Summary, error)
}

// InquiryService records inspection requests and support tickets.
type InquiryService interface {
	RequestInspection(ctx context.Context, in services.InspectionInput) (*domain.Inspection, error)
	Inspection(ctx context.Context, id string) (*domain.Inspection, error)
	Inspections(ctx context.Context) ([]domain.Inspection, error)
	SetInspectionStatus(ctx context.Context, id, status string) (*domain.Inspection, error)
	OpenTicket(ctx context.Context, in services.TicketInput) (*domain.SupportTicket, error)
	Ticket(ctx context.Context, id string) (*domain.SupportTicket, error)
	Tickets(ctx context.Context) ([]domain.SupportTicket, error)
}

// IdempotencyStore remembers which record a keyed submission created.
type IdempotencyStore interface {
	Remember(ctx context.Context, clientID string, coll domain.Collection, key, recordID string, status int) error
}

//
// Handler wiring
//

// Handlers groups every endpoint. Dependencies are abstract so tests can
// swap in fakes.
type Handlers struct {
	sessions  Sessions
	catalog   CatalogService
	apps      ApplicationService
	inquiries InquiryService
	idem      IdempotencyStore
}

// New returns Handlers bound to the given services. idem may be nil, which
// disables idempotency records.
func New(sessions Sessions, catalog CatalogService, apps ApplicationService, inquiries InquiryService, idem IdempotencyStore) *Handlers {
	return &Handlers{sessions: sessions, catalog: catalog, apps: apps, inquiries: inquiries, idem: idem}
}

//
// Helpers
//

// withState runs fn on the caller's session state.
func (h *Handlers) withState(c *gin.Context, fn func(*state.State) error) error {
	return h.sessions.With(middleware.ClientID(c), fn)
}

// kindParam parses the :kind path segment, writing a 400 on failure.
func kindParam(c *gin.Context) (domain.Kind, bool) {
	k, err := services.ParseKind(c.Param("kind"))
	if err != nil {
		failErr(c, err)
		return "", false
	}
	return k, true
}

// kindQuery parses ?kind=, defaulting to rent.
func kindQuery(c *gin.Context) (domain.Kind, bool) {
	raw := c.Query("kind")
	if raw == "" {
		return domain.KindRent, true
	}
	k, err := services.ParseKind(raw)
	if err != nil {
		failErr(c, err)
		return "", false
	}
	return k, true
}

// bindJSON decodes the body into dst, writing a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// replay answers a repeated keyed submission with the record the first
// request created. It reports whether a response was written.
func replay[T any](c *gin.Context, get func(ctx context.Context, id string) (*T, error)) bool {
	id, found := middleware.ReplayRecordID(c)
	if !found {
		return false
	}
	rec, err := get(c.Request.Context(), id)
	if errors.Is(err, repo.ErrNotFound) {
		// record gone since; treat as a first attempt
		return false
	}
	if err != nil {
		failErr(c, err)
		return true
	}
	c.Header("Idempotent-Replayed", "true")
	ok(c, http.StatusCreated, rec)
	return true
}

// remember stores the record id for a keyed submission. Failures are logged
// and never fail the request.
func (h *Handlers) remember(c *gin.Context, coll domain.Collection, recordID string) {
	key, keyed := middleware.GetIdempotencyKey(c)
	if !keyed || h.idem == nil {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), middleware.ClientID(c), coll, key, recordID, http.StatusCreated); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("collection", string(coll)).Msg("idempotency record not stored")
	}
}
