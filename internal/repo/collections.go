// Package repo provides the CRUD primitives for the six collections.
//
// Every mutation reads the whole collection, changes it in memory, and writes
// the whole collection back through the store while holding the Collections
// write lock, which then emits a change
// notification naming the collection. Ids and creation timestamps are
// assigned here and never by the caller.
//
// Error semantics:
//   - A lookup miss returns ErrNotFound (the absent sentinel).
//   - A stored array that cannot be decoded is logged and read as empty.
//   - Store failures are wrapped and propagated.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/store"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrInvalidPatch is returned when a partial update cannot be applied to the
// record type (e.g., a string where a number is expected).
var ErrInvalidPatch = errors.New("invalid patch")

// Patch is a partial update: the provided JSON fields are shallow-merged over
// the existing record. The "id" and "createdAt" fields are ignored.
type Patch map[string]json.RawMessage

// Collections provides typed CRUD over a store.Store.
type Collections struct {
	Store store.Store

	// mu serializes read-modify-write cycles so concurrent requests do not
	// overwrite each other's changes.
	mu sync.Mutex

	// Now and NewID are replaceable for deterministic tests.
	Now   func() time.Time
	NewID func() string
}

// NewCollections returns Collections bound to s with the real clock and
// UUID-based ids.
func NewCollections(s store.Store) *Collections {
	return &Collections{
		Store: s,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

func (c *Collections) nowMillis() int64 { return c.Now().UnixMilli() }

// ---- generic helpers ----

func readAll[T any](ctx context.Context, s store.Store, key domain.Collection) ([]T, error) {
	raw, err := s.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("collection", string(key)).Msg("malformed collection, reading as empty")
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func writeAll[T any](ctx context.Context, s store.Store, key domain.Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Write(ctx, key, b)
}

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func getByID[T any](ctx context.Context, s store.Store, key domain.Collection, id string, idOf func(T) string) (*T, error) {
	items, err := readAll[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id, idOf)
	if i < 0 {
		return nil, ErrNotFound
	}
	return &items[i], nil
}

func updateByID[T any](ctx context.Context, c *Collections, key domain.Collection, id string, idOf func(T) string, change func(T) (T, error)) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := readAll[T](ctx, c.Store, key)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id, idOf)
	if i < 0 {
		return nil, ErrNotFound
	}
	next, err := change(items[i])
	if err != nil {
		return nil, err
	}
	items[i] = next
	if err := writeAll(ctx, c.Store, key, items); err != nil {
		return nil, err
	}
	return &items[i], nil
}

func deleteByID[T any](ctx context.Context, c *Collections, key domain.Collection, id string, idOf func(T) string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := readAll[T](ctx, c.Store, key)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if idOf(it) != id {
			kept = append(kept, it)
		}
	}
	return writeAll(ctx, c.Store, key, kept)
}

func appendRecord[T any](ctx context.Context, c *Collections, key domain.Collection, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := readAll[T](ctx, c.Store, key)
	if err != nil {
		return err
	}
	return writeAll(ctx, c.Store, key, append(items, rec))
}

// mergePatch shallow-merges p over rec through their JSON forms.
func mergePatch[T any](rec T, p Patch) (T, error) {
	base, err := json.Marshal(rec)
	if err != nil {
		return rec, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(base, &fields); err != nil {
		return rec, err
	}
	for k, v := range p {
		if k == "id" || k == "createdAt" {
			continue
		}
		fields[k] = v
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return rec, err
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return rec, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	return out, nil
}

func listingID(l domain.Listing) string         { return l.ID }
func agentID(a domain.Agent) string             { return a.ID }
func applicationID(a domain.Application) string { return a.ID }
func inspectionID(i domain.Inspection) string   { return i.ID }
func ticketID(t domain.SupportTicket) string    { return t.ID }

// ---- listings ----

// Listings returns every listing of the given kind in stored order.
func (c *Collections) Listings(ctx context.Context, kind domain.Kind) ([]domain.Listing, error) {
	return readAll[domain.Listing](ctx, c.Store, kind.Collection())
}

// GetListing returns the listing with id, or ErrNotFound.
func (c *Collections) GetListing(ctx context.Context, kind domain.Kind, id string) (*domain.Listing, error) {
	return getByID(ctx, c.Store, kind.Collection(), id, listingID)
}

// AddListing assigns an id and creation time to l and appends it.
func (c *Collections) AddListing(ctx context.Context, kind domain.Kind, l domain.Listing) (*domain.Listing, error) {
	l.ID = kind.IDPrefix() + c.NewID()
	l.CreatedAt = c.nowMillis()
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	if err := appendRecord(ctx, c, kind.Collection(), l); err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateListing merges p over the listing with id.
func (c *Collections) UpdateListing(ctx context.Context, kind domain.Kind, id string, p Patch) (*domain.Listing, error) {
	return updateByID(ctx, c, kind.Collection(), id, listingID, func(l domain.Listing) (domain.Listing, error) {
		return mergePatch(l, p)
	})
}

// DeleteListing removes the listing with id. Applications and inspections
// that reference it are left alone.
func (c *Collections) DeleteListing(ctx context.Context, kind domain.Kind, id string) error {
	return deleteByID(ctx, c, kind.Collection(), id, listingID)
}

// ---- agents ----

// Agents returns every agent.
func (c *Collections) Agents(ctx context.Context) ([]domain.Agent, error) {
	return readAll[domain.Agent](ctx, c.Store, domain.Agents)
}

// GetAgent returns the agent with id, or ErrNotFound.
func (c *Collections) GetAgent(ctx context.Context, id string) (*domain.Agent, error) {
	return getByID(ctx, c.Store, domain.Agents, id, agentID)
}

// AddAgent assigns an id to a and appends it.
func (c *Collections) AddAgent(ctx context.Context, a domain.Agent) (*domain.Agent, error) {
	a.ID = "agt_" + c.NewID()
	if a.AreasCovered == nil {
		a.AreasCovered = []string{}
	}
	if err := appendRecord(ctx, c, domain.Agents, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAgent merges p over the agent with id.
func (c *Collections) UpdateAgent(ctx context.Context, id string, p Patch) (*domain.Agent, error) {
	return updateByID(ctx, c, domain.Agents, id, agentID, func(a domain.Agent) (domain.Agent, error) {
		return mergePatch(a, p)
	})
}

// DeleteAgent removes the agent with id. Listings keep their agentId.
func (c *Collections) DeleteAgent(ctx context.Context, id string) error {
	return deleteByID(ctx, c, domain.Agents, id, agentID)
}

// ---- applications ----

// Applications returns every application.
func (c *Collections) Applications(ctx context.Context) ([]domain.Application, error) {
	return readAll[domain.Application](ctx, c.Store, domain.Applications)
}

// GetApplication returns the application with id, or ErrNotFound.
func (c *Collections) GetApplication(ctx context.Context, id string) (*domain.Application, error) {
	return getByID(ctx, c.Store, domain.Applications, id, applicationID)
}

// AddApplication assigns id, creation time and default status, snapshots the
// referenced rent listing when it resolves, and appends the application.
func (c *Collections) AddApplication(ctx context.Context, a domain.Application) (*domain.Application, error) {
	a.ID = "app_" + c.NewID()
	a.CreatedAt = c.nowMillis()
	if a.Status == "" {
		a.Status = domain.StatusSubmitted
	}
	a.Snapshot = nil

	l, err := c.GetListing(ctx, domain.KindRent, a.ApartmentID)
	switch {
	case err == nil:
		a.Snapshot = &domain.ListingSnapshot{
			Title:   l.Title,
			Area:    l.Area,
			Price:   l.Price,
			AgentID: l.AgentID,
		}
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if err := appendRecord(ctx, c, domain.Applications, a); err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateApplicationStatus sets the status of the application with id. Any
// status may replace any other.
func (c *Collections) UpdateApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	return updateByID(ctx, c, domain.Applications, id, applicationID, func(a domain.Application) (domain.Application, error) {
		a.Status = status
		return a, nil
	})
}

// ---- inspections ----

// Inspections returns every inspection.
func (c *Collections) Inspections(ctx context.Context) ([]domain.Inspection, error) {
	return readAll[domain.Inspection](ctx, c.Store, domain.Inspections)
}

// GetInspection returns the inspection with id or ErrNotFound.
func (c *Collections) GetInspection(ctx context.Context, id string) (*domain.Inspection, error) {
	return getByID(ctx, c.Store, domain.Inspections, id, inspectionID)
}

// AddInspection assigns id, creation time and default status, records the
// listing title when the listing resolves, and appends the inspection.
func (c *Collections) AddInspection(ctx context.Context, in domain.Inspection) (*domain.Inspection, error) {
	in.ID = "insp_" + c.NewID()
	in.CreatedAt = c.nowMillis()
	if in.Status == "" {
		in.Status = domain.InspectionPending
	}
	in.ApartmentTitle = ""

	l, err := c.GetListing(ctx, domain.KindRent, in.ApartmentID)
	switch {
	case err == nil:
		in.ApartmentTitle = l.Title
	case !errors.Is(err, ErrNotFound):
		return nil, err
	}

	if err := appendRecord(ctx, c, domain.Inspections, in); err != nil {
		return nil, err
	}
	return &in, nil
}

// UpdateInspectionStatus sets the status of the inspection with id.
func (c *Collections) UpdateInspectionStatus(ctx context.Context, id string, status domain.InspectionStatus) (*domain.Inspection, error) {
	return updateByID(ctx, c, domain.Inspections, id, inspectionID, func(in domain.Inspection) (domain.Inspection, error) {
		in.Status = status
		return in, nil
	})
}

// ---- support tickets ----

// SupportTickets returns every support ticket.
func (c *Collections) SupportTickets(ctx context.Context) ([]domain.SupportTicket, error) {
	return readAll[domain.SupportTicket](ctx, c.Store, domain.SupportTickets)
}

// GetSupportTicket returns the ticket with id or ErrNotFound.
func (c *Collections) GetSupportTicket(ctx context.Context, id string) (*domain.SupportTicket, error) {
	return getByID(ctx, c.Store, domain.SupportTickets, id, ticketID)
}

// AddSupportTicket assigns id and creation time and appends the ticket.
func (c *Collections) AddSupportTicket(ctx context.Context, t domain.SupportTicket) (*domain.SupportTicket, error) {
	t.ID = "sup_" + c.NewID()
	t.CreatedAt = c.nowMillis()
	if err := appendRecord(ctx, c, domain.SupportTickets, t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ---- raw access ----

// Snapshot returns the serialized array of every collection, keyed by name.
// Unset collections are reported as empty arrays.
func (c *Collections) Snapshot(ctx context.Context) (map[domain.Collection]json.RawMessage, error) {
	out := make(map[domain.Collection]json.RawMessage, len(domain.AllCollections))
	for _, key := range domain.AllCollections {
		raw, err := c.Store.Read(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", key, err)
		}
		out[key] = store.OrEmpty(raw)
	}
	return out, nil
}
