package services

import (
	"time"

	"github.com/srgjo27/ticket_booking/internal/core/domain"
)

// Receipt is the flat record handed to whatever renders a booking
// confirmation. Amounts are fixed two-decimal strings.
type Receipt struct {
	BookingID     int64  `json:"booking_id"`
	BookingDate   string `json:"booking_date"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	EventID          int64  `json:"event_id"`
	EventName        string `json:"event_name"`
	EventDate        string `json:"event_date"`
	EventVenue       string `json:"event_venue"`
	EventDescription string `json:"event_description"`

	SeatClass  string `json:"seat_class"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	BasePrice  string `json:"base_price"`
	TotalPrice string `json:"total_price"`
}

func NewReceipt(b domain.Booking) Receipt {
	event := b.Event()

	return Receipt{
		BookingID:        b.ID,
		BookingDate:      b.BookedAt.Format(time.RFC3339),
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		EventID:          b.EventID,
		EventName:        event.Name,
		EventDate:        event.Date.Format(domain.DateLayout),
		EventVenue:       event.Venue,
		EventDescription: event.Description,
		SeatClass:        b.SeatClass.String(),
		Quantity:         b.Quantity,
		UnitPrice:        b.UnitPrice().StringFixed(2),
		BasePrice:        event.BasePrice.StringFixed(2),
		TotalPrice:       b.TotalPrice.StringFixed(2),
	}
}

func (s *BookingService) Receipt(bookingID int64) (Receipt, error) {
	b, err := s.GetBooking(bookingID)
	if err != nil {
		return Receipt{}, err
	}

	return NewReceipt(b), nil
}
