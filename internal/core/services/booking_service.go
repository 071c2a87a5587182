package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/srgjo27/ticket_booking/internal/core/domain"
	"github.com/srgjo27/ticket_booking/internal/core/ports"
	"github.com/srgjo27/ticket_booking/internal/platform/clock"
	"github.com/srgjo27/ticket_booking/internal/platform/logger"
)

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	EventID       int64  `json:"event_id"`
	SeatClass     string `json:"seat_class"`
	Quantity      int    `json:"quantity"`
}

// eventSlot guards one event. The write lock is held across the capacity
// check and the consumption; readers take the read lock to copy the event.
type eventSlot struct {
	mu    sync.RWMutex
	event *domain.Event
}

func (s *eventSlot) snapshot() domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return *s.event
}

// BookingService owns the event catalog and the booking ledger. It is the
// only place seats are consumed.
type BookingService struct {
	clock  clock.Clock
	logger *zap.Logger

	catalogMu   sync.RWMutex
	slots       map[int64]*eventSlot
	order       []int64
	nextEventID int64

	// Lock order: eventSlot.mu before ledgerMu.
	ledgerMu      sync.RWMutex
	bookings      []domain.Booking
	bookingIndex  map[int64]int
	nextBookingID int64

	journal    ports.BookingJournal
	mirror     ports.AvailabilityMirror
	postCommit chan postCommitItem
	bufferSize int
}

type Option func(*BookingService)

func WithClock(clk clock.Clock) Option {
	return func(s *BookingService) {
		if clk != nil {
			s.clock = clk
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *BookingService) {
		if log != nil {
			s.logger = log
		}
	}
}

func WithJournal(journal ports.BookingJournal) Option {
	return func(s *BookingService) {
		s.journal = journal
	}
}

func WithAvailabilityMirror(mirror ports.AvailabilityMirror) Option {
	return func(s *BookingService) {
		s.mirror = mirror
	}
}

// WithPostCommitBuffer sets how many committed bookings may wait for the
// journal and mirror before new ones are dropped from post-commit work.
func WithPostCommitBuffer(n int) Option {
	return func(s *BookingService) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

const defaultPostCommitBuffer = 1024

// NewBookingService builds a service whose catalog holds seed, with ids
// assigned from 1 in seed order.
func NewBookingService(seed []domain.EventSpec, opts ...Option) (*BookingService, error) {
	s := &BookingService{
		clock:         clock.NewSystem(),
		logger:        zap.NewNop(),
		slots:         make(map[int64]*eventSlot, len(seed)),
		nextEventID:   1,
		bookingIndex:  make(map[int64]int),
		nextBookingID: 1,
		bufferSize:    defaultPostCommitBuffer,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.postCommit = make(chan postCommitItem, s.bufferSize)

	for i, spec := range seed {
		if _, err := s.insertEvent(spec); err != nil {
			return nil, fmt.Errorf("seed event %d: %w", i+1, err)
		}
	}

	return s, nil
}

func (s *BookingService) insertEvent(spec domain.EventSpec) (domain.Event, error) {
	s.catalogMu.Lock()
	defer s.catalogMu.Unlock()

	event, err := domain.NewEvent(s.nextEventID, spec)
	if err != nil {
		return domain.Event{}, err
	}

	s.slots[event.ID] = &eventSlot{event: event}
	s.order = append(s.order, event.ID)
	s.nextEventID++

	s.enqueue(postCommitItem{eventID: event.ID, available: event.AvailableSeats})

	return *event, nil
}

func (s *BookingService) slot(id int64) (*eventSlot, bool) {
	s.catalogMu.RLock()
	defer s.catalogMu.RUnlock()

	slot, ok := s.slots[id]
	return slot, ok
}

// AddEvent adds an event to the catalog with the next free id.
func (s *BookingService) AddEvent(ctx context.Context, spec domain.EventSpec) (domain.Event, error) {
	created, err := s.insertEvent(spec)
	if err != nil {
		return domain.Event{}, err
	}

	s.logger.Info("event added",
		zap.Int64("event_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("total_seats", created.TotalSeats),
		zap.String("request_id", logger.RequestID(ctx)),
	)

	return created, nil
}

func (s *BookingService) ListEvents() []domain.Event {
	s.catalogMu.RLock()
	slots := make([]*eventSlot, 0, len(s.order))
	for _, id := range s.order {
		slots = append(slots, s.slots[id])
	}
	s.catalogMu.RUnlock()

	events := make([]domain.Event, 0, len(slots))
	for _, slot := range slots {
		events = append(events, slot.snapshot())
	}

	return events
}

func (s *BookingService) GetEvent(id int64) (domain.Event, error) {
	slot, ok := s.slot(id)
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}

	return slot.snapshot(), nil
}

func (s *BookingService) SeatClasses() []domain.SeatClass {
	return domain.SeatClasses()
}

// QuotePrice prices a prospective booking without reserving anything.
func (s *BookingService) QuotePrice(eventID int64, seatClass string, quantity int) (decimal.Decimal, error) {
	slot, ok := s.slot(eventID)
	if !ok {
		return decimal.Decimal{}, domain.ErrEventNotFound
	}

	class, err := domain.ParseSeatClass(seatClass)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if quantity <= 0 {
		return decimal.Decimal{}, domain.ErrInvalidQuantity
	}

	// BasePrice never changes after creation.
	return domain.ComputeTotal(slot.event.BasePrice, class, quantity)
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (domain.Booking, error) {
	slot, ok := s.slot(req.EventID)
	if !ok {
		return domain.Booking{}, domain.ErrEventNotFound
	}

	if req.Quantity <= 0 {
		return domain.Booking{}, domain.ErrInvalidQuantity
	}

	class, err := domain.ParseSeatClass(req.SeatClass)
	if err != nil {
		return domain.Booking{}, err
	}

	customer := domain.Customer{
		Name:  strings.TrimSpace(req.CustomerName),
		Email: strings.TrimSpace(req.CustomerEmail),
		Phone: strings.TrimSpace(req.CustomerPhone),
	}
	if customer.Name == "" {
		return domain.Booking{}, domain.ErrCustomerNameRequired
	}
	if customer.Email == "" {
		return domain.Booking{}, domain.ErrCustomerEmailRequired
	}

	booking, available, err := s.reserve(slot, customer, class, req.Quantity)
	if err != nil {
		var capErr *domain.CapacityError
		if errors.As(err, &capErr) {
			s.logger.Debug("booking rejected",
				zap.Int64("event_id", capErr.EventID),
				zap.Int("requested", capErr.Requested),
				zap.Int("remaining", capErr.Remaining),
				zap.String("request_id", logger.RequestID(ctx)),
			)
		}
		return domain.Booking{}, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("event_id", booking.EventID),
		zap.String("seat_class", booking.SeatClass.String()),
		zap.Int("quantity", booking.Quantity),
		zap.String("total_price", booking.TotalPrice.StringFixed(2)),
		zap.Int("available_seats", available),
		zap.String("request_id", logger.RequestID(ctx)),
	)

	return booking, nil
}

// reserve runs the check-consume-record sequence under the event's lock and
// returns the booking with the seats left afterwards.
func (s *BookingService) reserve(slot *eventSlot, customer domain.Customer, class domain.SeatClass, quantity int) (domain.Booking, int, error) {
	slot.mu.Lock()
	defer slot.mu.Unlock()

	event := slot.event
	if !event.HasCapacityFor(quantity) {
		return domain.Booking{}, 0, &domain.CapacityError{
			EventID:   event.ID,
			Requested: quantity,
			Remaining: event.AvailableSeats,
		}
	}

	s.ledgerMu.Lock()
	defer s.ledgerMu.Unlock()

	booking, err := domain.NewBooking(s.nextBookingID, customer, event, class, quantity, s.clock.Now())
	if err != nil {
		return domain.Booking{}, 0, err
	}

	if err := event.Consume(quantity); err != nil {
		return domain.Booking{}, 0, err
	}

	s.nextBookingID++
	s.bookingIndex[booking.ID] = len(s.bookings)
	s.bookings = append(s.bookings, booking)

	// Enqueued under the event lock so availability is published in commit order.
	committed := booking
	s.enqueue(postCommitItem{booking: &committed, eventID: event.ID, available: event.AvailableSeats})

	return booking, event.AvailableSeats, nil
}

func (s *BookingService) ListBookings() []domain.Booking {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()

	out := make([]domain.Booking, len(s.bookings))
	copy(out, s.bookings)

	return out
}

func (s *BookingService) GetBooking(id int64) (domain.Booking, error) {
	s.ledgerMu.RLock()
	defer s.ledgerMu.RUnlock()

	i, ok := s.bookingIndex[id]
	if !ok {
		return domain.Booking{}, domain.ErrBookingNotFound
	}

	return s.bookings[i], nil
}
