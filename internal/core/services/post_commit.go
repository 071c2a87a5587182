package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/srgjo27/ticket_booking/internal/core/domain"
)

// postCommitItem is work that runs after a booking or event has been
// committed in memory. booking is nil for catalog changes.
type postCommitItem struct {
	booking   *domain.Booking
	eventID   int64
	available int
}

func (s *BookingService) hasPostCommit() bool {
	return s.journal != nil || s.mirror != nil
}

// enqueue never blocks: when the buffer is full the item is dropped and logged.
func (s *BookingService) enqueue(item postCommitItem) {
	if !s.hasPostCommit() {
		return
	}

	select {
	case s.postCommit <- item:
	default:
		fields := []zap.Field{zap.Int64("event_id", item.eventID)}
		if item.booking != nil {
			fields = append(fields, zap.Int64("booking_id", item.booking.ID))
		}
		s.logger.Warn("post-commit buffer full, dropping work", fields...)
	}
}

// RunPostCommit writes committed bookings to the journal and publishes seat
// availability until ctx is cancelled. Failures are logged and never touch
// the in-memory catalog.
func (s *BookingService) RunPostCommit(ctx context.Context) {
	if !s.hasPostCommit() {
		return
	}

	s.logger.Info("post-commit worker started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("post-commit worker stopped", zap.Int("pending", len(s.postCommit)))
			return
		case item := <-s.postCommit:
			s.processPostCommit(ctx, item)
		}
	}
}

func (s *BookingService) processPostCommit(ctx context.Context, item postCommitItem) {
	if item.booking != nil && s.journal != nil {
		if err := s.journal.Append(ctx, *item.booking); err != nil {
			s.logger.Error("failed to journal booking",
				zap.Int64("booking_id", item.booking.ID),
				zap.Error(err),
			)
		}
	}

	if s.mirror != nil {
		if err := s.mirror.PublishAvailability(ctx, item.eventID, item.available); err != nil {
			s.logger.Error("failed to publish availability",
				zap.Int64("event_id", item.eventID),
				zap.Int("available", item.available),
				zap.Error(err),
			)
		}
	}
}
