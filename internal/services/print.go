package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/format"
	"github.com/tbourn/warri-apartment-hunt/internal/repo"
)

// PropertyNotFound is shown when neither the listing nor a snapshot exists.
const PropertyNotFound = "Property Not Found"

// Row is one label/value line of a printed section.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a titled group of rows, or free text when Rows is empty.
type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Summary is the printable record of an application.
type Summary struct {
	ApplicationID   string    `json:"applicationId"`
	ApplicationDate string    `json:"applicationDate"`
	Sections        []Section `json:"sections"`
}

// Summarize builds the printable summary of application id. Property fields
// come from the live listing when it still exists, else from the snapshot
// taken at submission. Agent details are only shown for a live listing.
func (s *ApplicationService) Summarize(ctx context.Context, id string) (*Summary, error) {
	a, err := s.Repo.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		listing *domain.Listing
		agent   *domain.Agent
	)
	switch l, err := s.Repo.GetListing(ctx, domain.KindRent, a.ApartmentID); {
	case err == nil:
		listing = l
	case !errors.Is(err, repo.ErrNotFound):
		return nil, err
	}
	if listing != nil && listing.AgentID != "" {
		switch ag, err := s.Repo.GetAgent(ctx, listing.AgentID); {
		case err == nil:
			agent = ag
		case !errors.Is(err, repo.ErrNotFound):
			return nil, err
		}
	}

	title, area, price := PropertyNotFound, "", int64(0)
	switch {
	case listing != nil:
		title, area, price = listing.Title, listing.Area, listing.Price
	case a.Snapshot != nil:
		title, area, price = a.Snapshot.Title, a.Snapshot.Area, a.Snapshot.Price
	}

	property := Section{Title: "Property Information", Rows: []Row{
		{"Property Name", title},
		{"Location", location(area)},
		{"Annual Rent", format.Naira(price)},
	}}
	if listing != nil {
		property.Rows = append(property.Rows,
			Row{"Property Type", listing.Type},
			Row{"Bedrooms", strconv.Itoa(listing.Bedrooms)},
			Row{"Bathrooms", strconv.Itoa(listing.Bathrooms)},
		)
	}

	email := a.Email
	if email == "" {
		email = "Not provided"
	}
	sum := &Summary{
		ApplicationID:   a.ID,
		ApplicationDate: format.Date(a.CreatedAt),
		Sections: []Section{
			property,
			{Title: "Applicant Information", Rows: []Row{
				{"Full Name", a.ApplicantName},
				{"Phone Number", format.DisplayPhone(a.Phone)},
				{"Email", email},
				{"Preferred Contact", a.PreferredContact},
				{"Current Address", a.CurrentAddress},
				{"Employment Status", a.EmploymentStatus},
				{"Proposed Move-in Date", moveIn(a.MoveInDate)},
			}},
		},
	}
	if a.Notes != "" {
		sum.Sections = append(sum.Sections, Section{Title: "Additional Notes", Text: a.Notes})
	}
	if agent != nil {
		sum.Sections = append(sum.Sections, Section{Title: "Agent Information", Rows: []Row{
			{"Agent Name", agent.Name},
			{"Phone", format.DisplayPhone(agent.Phone)},
			{"WhatsApp", format.DisplayPhone(agent.WhatsApp)},
		}})
	}
	sum.Sections = append(sum.Sections, Section{Title: "Application Status", Rows: []Row{
		{"Current Status", string(a.Status)},
		{"Application ID", a.ID},
	}})
	return sum, nil
}

func location(area string) string {
	if area == "" {
		return DefaultCity + ", " + DefaultState
	}
	return area + ", " + DefaultCity + ", " + DefaultState
}

func moveIn(day string) string {
	t, err := format.ParseDay(day)
	if err != nil {
		return day
	}
	return t.Format("Jan 2, 2006")
}

// Text renders the summary as plain text for printing.
func (s *Summary) Text() string {
	var b strings.Builder
	b.WriteString("Warri Apartment Hunt\n")
	fmt.Fprintf(&b, "Application Date: %s\n\nApartment Application\n", s.ApplicationDate)
	for _, sec := range s.Sections {
		fmt.Fprintf(&b, "\n%s\n%s\n", sec.Title, strings.Repeat("-", len(sec.Title)))
		if sec.Text != "" {
			b.WriteString(sec.Text + "\n")
		}
		for _, r := range sec.Rows {
			fmt.Fprintf(&b, "%-22s %s\n", r.Label+":", r.Value)
		}
	}
	b.WriteString("\nWarri Apartment Hunt\nWarri, Delta State, Nigeria\n")
	return b.String()
}
