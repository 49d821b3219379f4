// Package seed loads the initial agents and listings of the portal and
// writes them to collections that have never been written.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/tbourn/warri-apartment-hunt/internal/domain"
	"github.com/tbourn/warri-apartment-hunt/internal/store"
)

//go:embed seed.yaml
var defaultSeed []byte

// Agent is the YAML shape of a seeded agent.
type Agent struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	AvatarURL    string   `yaml:"avatarUrl"`
	Phone        string   `yaml:"phone"`
	WhatsApp     string   `yaml:"whatsapp"`
	AreasCovered []string `yaml:"areasCovered"`
	Bio          string   `yaml:"bio"`
}

// Listing is the YAML shape of a seeded listing. AgeHours is subtracted from
// the seeding time to produce createdAt.
type Listing struct {
	ID           string   `yaml:"id"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Area         string   `yaml:"area"`
	City         string   `yaml:"city"`
	State        string   `yaml:"state"`
	Price        int64    `yaml:"price"`
	Type         string   `yaml:"type"`
	Bedrooms     int      `yaml:"bedrooms"`
	Bathrooms    int      `yaml:"bathrooms"`
	SizeSqm      *int     `yaml:"sizeSqm"`
	LeadImageURL string   `yaml:"leadImageUrl"`
	ImageURLs    []string `yaml:"imageUrls"`
	AgentID      string   `yaml:"agentId"`
	Available    bool     `yaml:"available"`
	AgeHours     float64  `yaml:"ageHours"`
}

// Data is a parsed seed file.
type Data struct {
	Agents       []Agent   `yaml:"agents"`
	RentListings []Listing `yaml:"rentListings"`
	SaleListings []Listing `yaml:"saleListings"`
}

// Default returns the embedded seed data.
func Default() (*Data, error) {
	return Parse(defaultSeed)
}

// Load reads seed data from path, or the embedded default when path is "".
func Load(path string) (*Data, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML seed data.
func Parse(b []byte) (*Data, error) {
	var d Data
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &d, nil
}

func (l Listing) toDomain(now time.Time) domain.Listing {
	imgs := l.ImageURLs
	if imgs == nil {
		imgs = []string{}
	}
	age := time.Duration(l.AgeHours * float64(time.Hour))
	return domain.Listing{
		ID:           l.ID,
		Title:        l.Title,
		Description:  l.Description,
		Area:         l.Area,
		City:         l.City,
		State:        l.State,
		Price:        l.Price,
		Type:         l.Type,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		SizeSqm:      l.SizeSqm,
		LeadImageURL: l.LeadImageURL,
		ImageURLs:    imgs,
		AgentID:      l.AgentID,
		Available:    l.Available,
		CreatedAt:    now.Add(-age).UnixMilli(),
	}
}

func (a Agent) toDomain() domain.Agent {
	areas := a.AreasCovered
	if areas == nil {
		areas = []string{}
	}
	return domain.Agent{
		ID:           a.ID,
		Name:         a.Name,
		AvatarURL:    a.AvatarURL,
		Phone:        a.Phone,
		WhatsApp:     a.WhatsApp,
		AreasCovered: areas,
		Bio:          a.Bio,
	}
}

// Records converts the seed data into the serialized arrays stored per
// collection. Applications, inspections and support tickets start empty.
func (d *Data) Records(now time.Time) (map[domain.Collection]json.RawMessage, error) {
	rent := make([]domain.Listing, 0, len(d.RentListings))
	for _, l := range d.RentListings {
		rent = append(rent, l.toDomain(now))
	}
	sale := make([]domain.Listing, 0, len(d.SaleListings))
	for _, l := range d.SaleListings {
		sale = append(sale, l.toDomain(now))
	}
	agents := make([]domain.Agent, 0, len(d.Agents))
	for _, a := range d.Agents {
		agents = append(agents, a.toDomain())
	}

	out := make(map[domain.Collection]json.RawMessage, len(domain.AllCollections))
	for key, v := range map[domain.Collection]any{
		domain.RentListings:   rent,
		domain.SaleListings:   sale,
		domain.Agents:         agents,
		domain.Applications:   []domain.Application{},
		domain.Inspections:    []domain.Inspection{},
		domain.SupportTickets: []domain.SupportTicket{},
	} {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		out[key] = b
	}
	return out, nil
}

// Apply writes each seeded collection whose key has never been written.
// Collections that exist, even as empty arrays, are left alone. It returns
// the collections it wrote.
func Apply(ctx context.Context, s store.Store, d *Data, now time.Time) ([]domain.Collection, error) {
	recs, err := d.Records(now)
	if err != nil {
		return nil, err
	}
	var wrote []domain.Collection
	for _, key := range domain.AllCollections {
		cur, err := s.Read(ctx, key)
		if err != nil {
			return wrote, fmt.Errorf("seed %s: %w", key, err)
		}
		if cur != nil {
			continue
		}
		if err := s.Write(ctx, key, recs[key]); err != nil {
			return wrote, fmt.Errorf("seed %s: %w", key, err)
		}
		wrote = append(wrote, key)
	}
	if len(wrote) > 0 {
		log.Info().Interface("collections", wrote).Msg("seeded collections")
	}
	return wrote, nil
}
