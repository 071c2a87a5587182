package ports

import (
	"context"

	"github.com/srgjo27/ticket_booking/internal/core/domain"
)

// BookingJournal records committed bookings outside the booking path. A
// failed Append never undoes the in-memory booking.
type BookingJournal interface {
	Append(ctx context.Context, booking domain.Booking) error
}

// AvailabilityMirror publishes an event's remaining seats to readers outside
// this process.
type AvailabilityMirror interface {
	PublishAvailability(ctx context.Context, eventID int64, available int) error
}
