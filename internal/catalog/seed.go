package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/srgjo27/ticket_booking/internal/core/domain"
)

// SeedEvent is one catalog entry as written in a seed file. Prices should be
// quoted so they are read as exact decimals.
type SeedEvent struct {
	Name        string `mapstructure:"name"`
	Date        string `mapstructure:"date"`
	Venue       string `mapstructure:"venue"`
	Description string `mapstructure:"description"`
	BasePrice   string `mapstructure:"base_price"`
	TotalSeats  int    `mapstructure:"total_seats"`
	ImagePath   string `mapstructure:"image_path"`
}

func (s SeedEvent) Spec() (domain.EventSpec, error) {
	date, err := time.Parse(domain.DateLayout, s.Date)
	if err != nil {
		return domain.EventSpec{}, fmt.Errorf("event %q: invalid date %q: %w", s.Name, s.Date, err)
	}

	price, err := decimal.NewFromString(s.BasePrice)
	if err != nil {
		return domain.EventSpec{}, fmt.Errorf("event %q: invalid base price %q: %w", s.Name, s.BasePrice, err)
	}

	return domain.EventSpec{
		Name:        s.Name,
		Date:        date,
		Venue:       s.Venue,
		Description: s.Description,
		BasePrice:   price,
		TotalSeats:  s.TotalSeats,
		ImagePath:   s.ImagePath,
	}, nil
}

// LoadFile reads the "events" list from a YAML, JSON or TOML seed file.
func LoadFile(path string) ([]domain.EventSpec, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []SeedEvent
	if err := v.UnmarshalKey("events", &entries); err != nil {
		return nil, fmt.Errorf("failed to decode seed events: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("seed file %s has no events", path)
	}

	return toSpecs(entries)
}

func toSpecs(entries []SeedEvent) ([]domain.EventSpec, error) {
	specs := make([]domain.EventSpec, 0, len(entries))
	for _, e := range entries {
		spec, err := e.Spec()
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	return specs, nil
}

// Load returns the events in path, or the built-in sample catalog when path
// is empty.
func Load(path string) ([]domain.EventSpec, error) {
	if path == "" {
		return DefaultEvents(), nil
	}

	return LoadFile(path)
}
