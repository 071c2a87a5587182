package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date layout used for event dates.
const DateLayout = "2006-01-02"

// EventSpec describes an event before the catalog assigns it an id.
type EventSpec struct {
	Name        string
	Date        time.Time
	Venue       string
	Description string
	BasePrice   decimal.Decimal
	TotalSeats  int
	ImagePath   string
}

// Event is an inventory record. AvailableSeats only decreases, via Consume.
type Event struct {
	ID             int64
	Name           string
	Date           time.Time
	Venue          string
	Description    string
	BasePrice      decimal.Decimal
	TotalSeats     int
	AvailableSeats int
	ImagePath      string
}

// EventDetails holds the display fields of an event that never change after creation.
type EventDetails struct {
	ID          int64
	Name        string
	Date        time.Time
	Venue       string
	Description string
	BasePrice   decimal.Decimal
}

func NewEvent(id int64, spec EventSpec) (*Event, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidEvent)
	}

	if spec.BasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: base price cannot be negative", ErrInvalidEvent)
	}

	if spec.TotalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be greater than zero", ErrInvalidEvent)
	}

	if spec.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}

	y, m, d := spec.Date.Date()

	return &Event{
		ID:             id,
		Name:           name,
		Date:           time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Venue:          spec.Venue,
		Description:    spec.Description,
		BasePrice:      spec.BasePrice.Round(2),
		TotalSeats:     spec.TotalSeats,
		AvailableSeats: spec.TotalSeats,
		ImagePath:      spec.ImagePath,
	}, nil
}

func (e *Event) HasCapacityFor(quantity int) bool {
	return quantity >= 0 && e.AvailableSeats >= quantity
}

// Consume takes quantity seats out of the event. The caller must hold the
// event's lock across the capacity check and this call.
func (e *Event) Consume(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if !e.HasCapacityFor(quantity) {
		return &CapacityError{EventID: e.ID, Requested: quantity, Remaining: e.AvailableSeats}
	}

	e.AvailableSeats -= quantity

	return nil
}

func (e *Event) IsSoldOut() bool {
	return e.AvailableSeats == 0
}

func (e *Event) Details() EventDetails {
	return EventDetails{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		Venue:       e.Venue,
		Description: e.Description,
		BasePrice:   e.BasePrice,
	}
}
