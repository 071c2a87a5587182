package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/srgjo27/ticket_booking/internal/core/domain"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS booking_journal (
	entry_id       UUID PRIMARY KEY,
	booking_id     BIGINT NOT NULL UNIQUE,
	event_id       BIGINT NOT NULL,
	event_name     TEXT NOT NULL,
	customer_name  TEXT NOT NULL,
	customer_email TEXT NOT NULL,
	customer_phone TEXT NOT NULL DEFAULT '',
	seat_class     TEXT NOT NULL,
	quantity       INTEGER NOT NULL CHECK (quantity > 0),
	total_price    NUMERIC(12, 2) NOT NULL,
	booked_at      TIMESTAMPTZ NOT NULL,
	journaled_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// BookingJournal appends committed bookings to Postgres. It is an audit
// trail only; the service never reads it back.
type BookingJournal struct {
	db *sql.DB
}

func NewBookingJournal(db *sql.DB) *BookingJournal {
	return &BookingJournal{db: db}
}

func (r *BookingJournal) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, journalSchema); err != nil {
		return fmt.Errorf("failed to create booking_journal table: %w", err)
	}

	return nil
}

// Append is idempotent per booking id.
func (r *BookingJournal) Append(ctx context.Context, booking domain.Booking) error {
	query := `
	INSERT INTO booking_journal (entry_id, booking_id, event_id, event_name, customer_name, customer_email, customer_phone, seat_class, quantity, total_price, booked_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (booking_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New(),
		booking.ID,
		booking.EventID,
		booking.Event().Name,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.SeatClass.String(),
		booking.Quantity,
		booking.TotalPrice.StringFixed(2),
		booking.BookedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to journal booking %d: %w", booking.ID, err)
	}

	return nil
}
