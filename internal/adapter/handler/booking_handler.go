package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/srgjo27/ticket_booking/internal/catalog"
	"github.com/srgjo27/ticket_booking/internal/core/domain"
	"github.com/srgjo27/ticket_booking/internal/core/services"
	"github.com/srgjo27/ticket_booking/internal/platform/logger"
)

type EventResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Date           string `json:"date"`
	Venue          string `json:"venue"`
	Description    string `json:"description"`
	BasePrice      string `json:"base_price"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	ImagePath      string `json:"image_path,omitempty"`
}

func newEventResponse(e domain.Event) EventResponse {
	return EventResponse{
		ID:             e.ID,
		Name:           e.Name,
		Date:           e.Date.Format(domain.DateLayout),
		Venue:          e.Venue,
		Description:    e.Description,
		BasePrice:      e.BasePrice.StringFixed(2),
		TotalSeats:     e.TotalSeats,
		AvailableSeats: e.AvailableSeats,
		ImagePath:      e.ImagePath,
	}
}

type BookingResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	EventID       int64  `json:"event_id"`
	EventName     string `json:"event_name"`
	EventDate     string `json:"event_date"`
	EventVenue    string `json:"event_venue"`
	SeatClass     string `json:"seat_class"`
	Quantity      int    `json:"quantity"`
	TotalPrice    string `json:"total_price"`
	BookingDate   string `json:"booking_date"`
}

func newBookingResponse(b domain.Booking) BookingResponse {
	event := b.Event()

	return BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		EventID:       b.EventID,
		EventName:     event.Name,
		EventDate:     event.Date.Format(domain.DateLayout),
		EventVenue:    event.Venue,
		SeatClass:     b.SeatClass.String(),
		Quantity:      b.Quantity,
		TotalPrice:    b.TotalPrice.StringFixed(2),
		BookingDate:   b.BookedAt.Format(time.RFC3339),
	}
}

type QuoteResponse struct {
	EventID    int64  `json:"event_id"`
	SeatClass  string `json:"seat_class"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
}

type AddEventRequest struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Venue       string `json:"venue"`
	Description string `json:"description"`
	BasePrice   string `json:"base_price"`
	TotalSeats  int    `json:"total_seats"`
	ImagePath   string `json:"image_path"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Remaining *int   `json:"remaining,omitempty"`
}

type BookingHandler struct {
	svc    *services.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc *services.BookingService, log *zap.Logger) *BookingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{svc: svc, logger: log}
}

// Routes registers every endpoint. createBooking wraps only POST /bookings.
func (h *BookingHandler) Routes(createBooking ...func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("GET /events", h.ListEvents)
	mux.HandleFunc("POST /events", h.AddEvent)
	mux.HandleFunc("GET /events/{id}", h.GetEvent)

	mux.HandleFunc("GET /seat-classes", h.SeatClasses)
	mux.HandleFunc("GET /quote", h.QuotePrice)

	var create http.Handler = http.HandlerFunc(h.CreateBooking)
	for i := len(createBooking) - 1; i >= 0; i-- {
		create = createBooking[i](create)
	}
	mux.Handle("POST /bookings", create)

	mux.HandleFunc("GET /bookings", h.ListBookings)
	mux.HandleFunc("GET /bookings/{id}", h.GetBooking)
	mux.HandleFunc("GET /bookings/{id}/receipt", h.GetReceipt)

	return mux
}

func (h *BookingHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *BookingHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.svc.ListEvents()

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, newEventResponse(e))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid event id")
	if !ok {
		return
	}

	event, err := h.svc.GetEvent(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newEventResponse(event))
}

func (h *BookingHandler) AddEvent(w http.ResponseWriter, r *http.Request) {
	var req AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	spec, err := catalog.SeedEvent{
		Name:        req.Name,
		Date:        req.Date,
		Venue:       req.Venue,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		TotalSeats:  req.TotalSeats,
		ImagePath:   req.ImagePath,
	}.Spec()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	event, err := h.svc.AddEvent(r.Context(), spec)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newEventResponse(event))
}

func (h *BookingHandler) SeatClasses(w http.ResponseWriter, r *http.Request) {
	classes := h.svc.SeatClasses()

	resp := make([]string, 0, len(classes))
	for _, c := range classes {
		resp = append(resp, c.String())
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) QuotePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	eventID, err := strconv.ParseInt(q.Get("event_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid event id"})
		return
	}

	quantity, err := strconv.Atoi(q.Get("quantity"))
	if err != nil {
		h.writeError(w, r, domain.ErrInvalidQuantity)
		return
	}

	seatClass := q.Get("seat_class")

	price, err := h.svc.QuotePrice(eventID, seatClass, quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, QuoteResponse{
		EventID:    eventID,
		SeatClass:  seatClass,
		Quantity:   quantity,
		TotalPrice: price.StringFixed(2),
	})
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	booking, err := h.svc.CreateBooking(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings := h.svc.ListBookings()

	resp := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, newBookingResponse(b))
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid booking id")
	if !ok {
		return
	}

	booking, err := h.svc.GetBooking(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newBookingResponse(booking))
}

func (h *BookingHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "invalid booking id")
	if !ok {
		return
	}

	receipt, err := h.svc.Receipt(id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}

func pathID(w http.ResponseWriter, r *http.Request, msg string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return 0, false
	}
	return id, true
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var capErr *domain.CapacityError

	switch {
	case errors.As(err, &capErr):
		remaining := capErr.Remaining
		writeJSON(w, http.StatusConflict, errorResponse{Error: domain.ErrInsufficientCapacity.Error(), Remaining: &remaining})
	case domain.IsNotFoundError(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsConflictError(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("unexpected error",
			zap.String("path", r.URL.Path),
			zap.String("request_id", logger.RequestID(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
