package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
	"github.com/tbourn/warri-apartment-hunt/internal/store"
)

// 2025-03-10 10:00 WAT
var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newRepo(t *testing.T) *repo.Collections {
	t.Helper()
	c := repo.NewCollections(store.NewMemory())
	n := 0
	c.NewID = func() string { n++; return fmt.Sprintf("%03d", n) }
	c.Now = func() time.Time { return testNow }
	return c
}

func seedListing(t *testing.T, c *repo.Collections, l domain.Listing) *domain.Listing {
	t.Helper()
	out, err := c.AddListing(context.Background(), domain.KindRent, l)
	if err != nil {
		t.Fatalf("AddListing: %v", err)
	}
	return out
}

func validApplication(apartmentID string) ApplicationInput {
	return ApplicationInput{
		ApartmentID:      apartmentID,
		ApplicantName:    " Ese Okoro ",
		Phone:            "0803 123 4567",
		Email:            "ese@example.com",
		PreferredContact: "WhatsApp",
		CurrentAddress:   "12 Airport Road, Warri",
		EmploymentStatus: "Employed",
		MoveInDate:       "2025-04-01",
	}
}

func assertField(t *testing.T, err error, field string, want error) {
	t.Helper()
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != field || !errors.Is(err, want) {
		t.Fatalf("want %s error on %q, got %v", want, field, err)
	}
}

// ---------- applications ----------

func TestApplicationSubmit_NormalizesAndStores(t *testing.T) {
	c := newRepo(t)
	l := seedListing(t, c, domain.Listing{Title: "2BR GRA", Area: "GRA", Price: 850000, Available: true, AgentID: "agt_1"})
	svc := NewApplicationService(c)
	svc.Now = func() time.Time { return testNow }

	a, err := svc.Submit(context.Background(), validApplication(l.ID))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a.Phone != "+2348031234567" || a.ApplicantName != "Ese Okoro" || a.Status != domain.StatusSubmitted {
		t.Fatalf("unexpected application: %+v", a)
	}
	if a.Snapshot == nil || a.Snapshot.Title != "2BR GRA" || a.Snapshot.Price != 850000 {
		t.Fatalf("snapshot: %+v", a.Snapshot)
	}
}

func TestApplicationValidate(t *testing.T) {
	svc := &ApplicationService{Now: func() time.Time { return testNow }}
	cases := []struct {
		name  string
		edit  func(*ApplicationInput)
		field string
		want  error
	}{
		{"missing name", func(in *ApplicationInput) { in.ApplicantName = "  " }, "applicantName", ErrMissingField},
		{"missing phone", func(in *ApplicationInput) { in.Phone = "" }, "phone", ErrMissingField},
		{"missing move-in", func(in *ApplicationInput) { in.MoveInDate = "" }, "moveInDate", ErrMissingField},
		{"foreign phone", func(in *ApplicationInput) { in.Phone = "+44 20 7946 0958" }, "phone", ErrInvalidPhone},
		{"short phone", func(in *ApplicationInput) { in.Phone = "080312345" }, "phone", ErrInvalidPhone},
		{"bad email", func(in *ApplicationInput) { in.Email = "ese@" }, "email", ErrInvalidEmail},
		{"bad date", func(in *ApplicationInput) { in.MoveInDate = "01/04/2025" }, "moveInDate", ErrInvalidDate},
		{"past date", func(in *ApplicationInput) { in.MoveInDate = "2025-03-09" }, "moveInDate", ErrMoveInPast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validApplication("apt_1")
			tc.edit(&in)
			_, err := svc.Validate(in)
			assertField(t, err, tc.field, tc.want)
		})
	}

	t.Run("today is allowed", func(t *testing.T) {
		in := validApplication("apt_1")
		in.MoveInDate = "2025-03-10"
		in.Email = ""
		if _, err := svc.Validate(in); err != nil {
			t.Fatalf("Validate: %v", err)
		}
	})
}

func TestApplicationSubmit_ListingMustBeAvailable(t *testing.T) {
	c := newRepo(t)
	taken := seedListing(t, c, domain.Listing{Title: "Let", Area: "GRA", Available: false})
	svc := NewApplicationService(c)
	svc.Now = func() time.Time { return testNow }

	_, err := svc.Submit(context.Background(), validApplication(taken.ID))
	assertField(t, err, "apartmentId", ErrListingUnavailable)

	_, err = svc.Submit(context.Background(), validApplication("apt_missing"))
	assertField(t, err, "apartmentId", ErrListingUnavailable)
}

func TestApplicationSetStatus_AnyToAny(t *testing.T) {
	c := newRepo(t)
	l := seedListing(t, c, domain.Listing{Title: "x", Area: "GRA", Available: true})
	svc := NewApplicationService(c)
	svc.Now = func() time.Time { return testNow }
	ctx := context.Background()
	a, _ := svc.Submit(ctx, validApplication(l.ID))

	for _, st := range []string{"Approved", "Submitted", "Rejected", " Reviewed "} {
		got, err := svc.SetStatus(ctx, a.ID, st)
		if err != nil || string(got.Status) != strings.TrimSpace(st) {
			t.Fatalf("SetStatus(%q): %+v %v", st, got, err)
		}
	}
	_, err := svc.SetStatus(ctx, a.ID, "approved")
	assertField(t, err, "status", ErrInvalidStatus)

	if _, err := svc.SetStatus(ctx, "app_missing", "Approved"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestApplicationList_NewestFirst(t *testing.T) {
	c := newRepo(t)
	l := seedListing(t, c, domain.Listing{Title: "x", Area: "GRA", Available: true})
	svc := NewApplicationService(c)
	svc.Now = func() time.Time { return testNow }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		at := testNow.Add(time.Duration(i) * time.Hour)
		c.Now = func() time.Time { return at }
		if _, err := svc.Submit(ctx, validApplication(l.ID)); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	apps, err := svc.List(ctx)
	if err != nil || len(apps) != 3 {
		t.Fatalf("List: %v %v", apps, err)
	}
	if !(apps[0].CreatedAt > apps[1].CreatedAt && apps[1].CreatedAt > apps[2].CreatedAt) {
		t.Fatalf("not newest first: %d %d %d", apps[0].CreatedAt, apps[1].CreatedAt, apps[2].CreatedAt)
	}
}

// ---------- summary ----------

func TestSummarize_LiveListingWithAgent(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	ag, _ := c.AddAgent(ctx, domain.Agent{Name: "Tega Agent", Phone: "+2348012345678", WhatsApp: "+2348012345678"})
	l := seedListing(t, c, domain.Listing{Title: "2BR GRA", Area: "GRA", Price: 1200000, Type: "2BR", Bedrooms: 2, Bathrooms: 2, Available: true, AgentID: ag.ID})
	svc := NewApplicationService(c)
	svc.Now = func() time.Time { return testNow }
	in := validApplication(l.ID)
	in.Notes = "Two cats"
	a, _ := svc.Submit(ctx, in)

	sum, err := svc.Summarize(ctx, a.ID)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	text := sum.Text()
	for _, want := range []string{
		"Application Date: Mar 10, 2025",
		"2BR GRA",
		"GRA, Warri, Delta State",
		"₦1,200,000",
		"Bedrooms:",
		"+234 803 123 4567",
		"Apr 1, 2025",
		"Two cats",
		"Tega Agent",
		"Submitted",
		a.ID,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestSummarize_SnapshotFallback(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	l := seedListing(t, c, domain.Listing{Title: "Gone Flat", Area: "Effurun", Price: 500000, Available: true})
	svc := NewApplicationService(c)
	svc.Now = func() time.Time { return testNow }
	in := validApplication(l.ID)
	in.Email = ""
	a, _ := svc.Submit(ctx, in)
	if err := c.DeleteListing(ctx, domain.KindRent, l.ID); err != nil {
		t.Fatalf("DeleteListing: %v", err)
	}

	sum, err := svc.Summarize(ctx, a.ID)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	text := sum.Text()
	if !strings.Contains(text, "Gone Flat") || !strings.Contains(text, "₦500,000") || !strings.Contains(text, "Not provided") {
		t.Fatalf("snapshot fallback missing:\n%s", text)
	}
	if strings.Contains(text, "Bedrooms:") || strings.Contains(text, "Agent Information") {
		t.Fatalf("live-only fields shown for deleted listing:\n%s", text)
	}
}

func TestSummarize_NoListingNoSnapshot(t *testing.T) {
	c := newRepo(t)
	ctx := context.Background()
	a, _ := c.AddApplication(ctx, domain.Application{ApartmentID: "apt_x", ApplicantName: "A", Phone: "+2348031234567", MoveInDate: "bad"})
	sum, err := NewApplicationService(c).Summarize(ctx, a.ID)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got := sum.Sections[0].Rows[0].Value; got != PropertyNotFound {
		t.Fatalf("property name = %q", got)
	}
	if !strings.Contains(sum.Text(), "bad") {
		t.Fatalf("unparsable move-in date should be shown raw")
	}
}

// ---------- inquiries ----------

func TestRequestInspection(t *testing.T) {
	c := newRepo(t)
	l := seedListing(t, c, domain.Listing{Title: "Viewable", Area: "GRA", Available: true})
	svc := NewInquiryService(c)
	svc.Now = func() time.Time { return testNow }
	ctx := context.Background()

	in := InspectionInput{ApartmentID: l.ID, Name: "Ovie", Phone: "2348031234567", Date: "2025-03-12", Time: "14:30"}
	insp, err := svc.RequestInspection(ctx, in)
	if err != nil {
		t.Fatalf("RequestInspection: %v", err)
	}
	if insp.Status != domain.InspectionPending || insp.Phone != "+2348031234567" || insp.ApartmentTitle != "Viewable" {
		t.Fatalf("unexpected inspection: %+v", insp)
	}

	bad := in
	bad.Date = "2025-03-01"
	_, err = svc.RequestInspection(ctx, bad)
	assertField(t, err, "date", ErrDateInPast)

	bad = in
	bad.Time = "25:00"
	_, err = svc.RequestInspection(ctx, bad)
	assertField(t, err, "time", ErrInvalidValue)

	bad = in
	bad.ApartmentID = "apt_missing"
	_, err = svc.RequestInspection(ctx, bad)
	assertField(t, err, "apartmentId", ErrListingUnavailable)
}

func TestInspections_SortedAndStatus(t *testing.T) {
	c := newRepo(t)
	l := seedListing(t, c, domain.Listing{Title: "x", Area: "GRA", Available: true})
	svc := NewInquiryService(c)
	svc.Now = func() time.Time { return testNow }
	ctx := context.Background()

	for _, d := range []struct{ day, at string }{{"2025-03-14", "09:00"}, {"2025-03-12", "16:00"}, {"2025-03-12", "10:00"}} {
		if _, err := svc.RequestInspection(ctx, InspectionInput{ApartmentID: l.ID, Name: "n", Phone: "08031234567", Date: d.day, Time: d.at}); err != nil {
			t.Fatalf("RequestInspection: %v", err)
		}
	}
	all, _ := svc.Inspections(ctx)
	if all[0].Time != "10:00" || all[1].Time != "16:00" || all[2].Date != "2025-03-14" {
		t.Fatalf("order: %+v", all)
	}

	got, err := svc.SetInspectionStatus(ctx, all[0].ID, "Cancelled")
	if err != nil || got.Status != domain.InspectionCancelled {
		t.Fatalf("SetInspectionStatus: %+v %v", got, err)
	}
	_, err = svc.SetInspectionStatus(ctx, all[0].ID, "Done")
	assertField(t, err, "status", ErrInvalidStatus)
}

func TestOpenTicket(t *testing.T) {
	c := newRepo(t)
	svc := NewInquiryService(c)
	ctx := context.Background()

	tk, err := svc.OpenTicket(ctx, TicketInput{Name: "Efe", Phone: "0803-123-4567", Subject: "Viewing", Message: "Hello"})
	if err != nil || tk.Phone != "+2348031234567" || !strings.HasPrefix(tk.ID, "sup_") {
		t.Fatalf("OpenTicket: %+v %v", tk, err)
	}
	_, err = svc.OpenTicket(ctx, TicketInput{Name: "Efe", Phone: "0803-123-4567", Subject: "Viewing"})
	assertField(t, err, "message", ErrMissingField)
	_, err = svc.OpenTicket(ctx, TicketInput{Name: "Efe", Phone: "0803-123-4567", Email: "nope", Subject: "s", Message: "m"})
	assertField(t, err, "email", ErrInvalidEmail)

	tickets, _ := svc.Tickets(ctx)
	if len(tickets) != 1 {
		t.Fatalf("Tickets: %+v", tickets)
	}
}

// ---------- catalog ----------

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Sale "); err != nil || k != domain.KindSale {
		t.Fatalf("ParseKind: %v %v", k, err)
	}
	if _, err := ParseKind("lease"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind, got %v", err)
	}
}

func TestCreateListing_DefaultsAndValidation(t *testing.T) {
	svc := NewCatalogService(newRepo(t))
	ctx := context.Background()

	l, err := svc.CreateListing(ctx, domain.KindSale, domain.Listing{
		Title: " Duplex ", Area: "GRA", Type: "Duplex", Price: 45000000, Bedrooms: 4,
		ImageURLs: []string{" a.jpg ", "", "b.jpg"},
	})
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if l.Title != "Duplex" || l.City != DefaultCity || l.State != DefaultState || len(l.ImageURLs) != 2 || !strings.HasPrefix(l.ID, "sale_") {
		t.Fatalf("unexpected listing: %+v", l)
	}

	zero := 0
	for _, tc := range []struct {
		l     domain.Listing
		field string
		want  error
	}{
		{domain.Listing{Area: "GRA", Type: "1BR"}, "title", ErrMissingField},
		{domain.Listing{Title: "t", Type: "1BR"}, "area", ErrMissingField},
		{domain.Listing{Title: "t", Area: "GRA"}, "type", ErrMissingField},
		{domain.Listing{Title: "t", Area: "GRA", Type: "1BR", Price: -1}, "price", ErrInvalidValue},
		{domain.Listing{Title: "t", Area: "GRA", Type: "1BR", Bedrooms: -1}, "bedrooms", ErrInvalidValue},
		{domain.Listing{Title: "t", Area: "GRA", Type: "1BR", SizeSqm: &zero}, "sizeSqm", ErrInvalidValue},
	} {
		_, err := svc.CreateListing(ctx, domain.KindRent, tc.l)
		assertField(t, err, tc.field, tc.want)
	}
}

func TestUpdateListing_ValidatesMergedRecord(t *testing.T) {
	c := newRepo(t)
	svc := NewCatalogService(c)
	ctx := context.Background()
	l, _ := svc.CreateListing(ctx, domain.KindRent, domain.Listing{Title: "t", Area: "GRA", Type: "1BR", Price: 100})

	got, err := svc.UpdateListing(ctx, domain.KindRent, l.ID, repo.Patch{"price": json.RawMessage(`250`)})
	if err != nil || got.Price != 250 || got.Title != "t" {
		t.Fatalf("UpdateListing: %+v %v", got, err)
	}

	_, err = svc.UpdateListing(ctx, domain.KindRent, l.ID, repo.Patch{"title": json.RawMessage(`""`)})
	assertField(t, err, "title", ErrMissingField)

	_, err = svc.UpdateListing(ctx, domain.KindRent, l.ID, repo.Patch{"price": json.RawMessage(`"cheap"`)})
	if !errors.Is(err, repo.ErrInvalidPatch) {
		t.Fatalf("want ErrInvalidPatch, got %v", err)
	}

	if _, err := svc.UpdateListing(ctx, domain.KindRent, "apt_missing", repo.Patch{}); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	stored, _ := c.GetListing(ctx, domain.KindRent, l.ID)
	if stored.Title != "t" || stored.Price != 250 {
		t.Fatalf("rejected patch leaked into storage: %+v", stored)
	}
}

func TestAgents_NormalizePhones(t *testing.T) {
	svc := NewCatalogService(newRepo(t))
	ctx := context.Background()

	a, err := svc.CreateAgent(ctx, domain.Agent{Name: "Tega", Phone: "0801 234 5678", AreasCovered: []string{"GRA", " GRA", "", "Effurun"}})
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if a.Phone != "+2348012345678" || a.WhatsApp != a.Phone || len(a.AreasCovered) != 2 {
		t.Fatalf("unexpected agent: %+v", a)
	}

	_, err = svc.CreateAgent(ctx, domain.Agent{Name: "x", Phone: "12345"})
	assertField(t, err, "phone", ErrInvalidPhone)
	_, err = svc.CreateAgent(ctx, domain.Agent{Name: "x", Phone: "08012345678", WhatsApp: "nope"})
	assertField(t, err, "whatsapp", ErrInvalidPhone)

	up, err := svc.UpdateAgent(ctx, a.ID, repo.Patch{"whatsapp": json.RawMessage(`"234 809 876 5432"`)})
	if err != nil || up.WhatsApp != "+2348098765432" || up.Phone != "+2348012345678" {
		t.Fatalf("UpdateAgent: %+v %v", up, err)
	}
	if err := svc.DeleteAgent(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAgent: %v", err)
	}
	if _, err := svc.GetAgent(ctx, a.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}
}
