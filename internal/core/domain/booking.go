package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SeatClass string

const (
	SeatStandard SeatClass = "Standard"
	SeatVIP      SeatClass = "VIP"
	SeatPremium  SeatClass = "Premium"
)

var multipliers = map[SeatClass]decimal.Decimal{
	SeatStandard: decimal.RequireFromString("1.0"),
	SeatVIP:      decimal.RequireFromString("1.5"),
	SeatPremium:  decimal.RequireFromString("2.0"),
}

// SeatClasses returns every seat class in display order.
func SeatClasses() []SeatClass {
	return []SeatClass{SeatStandard, SeatVIP, SeatPremium}
}

// ParseSeatClass maps a seat-class token to its SeatClass. Tokens are matched
// exactly; there is no fallback class.
func ParseSeatClass(token string) (SeatClass, error) {
	class := SeatClass(token)
	if !class.Valid() {
		return "", ErrInvalidSeatClass
	}

	return class, nil
}

func (c SeatClass) Valid() bool {
	_, ok := multipliers[c]
	return ok
}

func (c SeatClass) Multiplier() (decimal.Decimal, error) {
	m, ok := multipliers[c]
	if !ok {
		return decimal.Decimal{}, ErrInvalidSeatClass
	}

	return m, nil
}

func (c SeatClass) String() string {
	return string(c)
}

// ComputeTotal returns basePrice * multiplier(class) * quantity rounded to cents.
func ComputeTotal(basePrice decimal.Decimal, class SeatClass, quantity int) (decimal.Decimal, error) {
	m, err := class.Multiplier()
	if err != nil {
		return decimal.Decimal{}, err
	}

	if quantity <= 0 {
		return decimal.Decimal{}, ErrInvalidQuantity
	}

	return basePrice.Mul(m).Mul(decimal.NewFromInt(int64(quantity))).Round(2), nil
}

// Booking is an immutable record of a completed seat reservation. Its
// existence implies the seats were already consumed from the event.
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	EventID       int64
	SeatClass     SeatClass
	Quantity      int
	TotalPrice    decimal.Decimal
	BookedAt      time.Time

	event *Event
}

// NewBooking builds the record for seats that have already been consumed from
// event. It does not touch the event's counters.
func NewBooking(id int64, customer Customer, event *Event, class SeatClass, quantity int, bookedAt time.Time) (Booking, error) {
	total, err := ComputeTotal(event.BasePrice, class, quantity)
	if err != nil {
		return Booking{}, err
	}

	return Booking{
		ID:            id,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		EventID:       event.ID,
		SeatClass:     class,
		Quantity:      quantity,
		TotalPrice:    total,
		BookedAt:      bookedAt,
		event:         event,
	}, nil
}

// Event returns the display fields of the booked event. Ownership of the
// event stays with the catalog.
func (b Booking) Event() EventDetails {
	if b.event == nil {
		return EventDetails{ID: b.EventID}
	}

	return b.event.Details()
}

// UnitPrice is the per-ticket price after the seat-class multiplier.
func (b Booking) UnitPrice() decimal.Decimal {
	if b.Quantity <= 0 {
		return decimal.Zero
	}

	return b.TotalPrice.Div(decimal.NewFromInt(int64(b.Quantity))).Round(2)
}

// Customer holds the contact fields supplied with a booking request.
type Customer struct {
	Name  string
	Email string
	Phone string
}
