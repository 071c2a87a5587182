package middleware_test

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/srgjo27/ticket_booking/internal/adapter/middleware"
	"github.com/srgjo27/ticket_booking/internal/platform/clock"
	"github.com/srgjo27/ticket_booking/internal/platform/logger"
)

var now = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

const bookingBody = `{"event_id":1,"seat_class":"VIP","quantity":2}`

func hashOf(method, path, body string) string {
	sum := sha256.Sum256([]byte(method + path + body))
	return hex.EncodeToString(sum[:])
}

func record(t *testing.T, r middleware.IdempotencyRecord) string {
	t.Helper()

	b, err := json.Marshal(r)
	require.NoError(t, err)

	return string(b)
}

func countingHandler(calls *int, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"id":1}`))
	})
}

func newIdempotency(db middleware.RedisClient) func(http.Handler) http.Handler {
	cfg := middleware.DefaultIdempotencyConfig(db)
	cfg.Clock = clock.NewFixed(now)
	cfg.TTL = time.Hour
	return middleware.Idempotency(cfg)
}

func post(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(bookingBody))
	if key != "" {
		req.Header.Set(middleware.IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotency_FirstRequestStoresResponse(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	processing := middleware.IdempotencyRecord{
		Key:         "abc",
		Status:      middleware.StatusProcessing,
		RequestHash: hashOf(http.MethodPost, "/bookings", bookingBody),
		CreatedAt:   now,
	}
	completed := processing
	completed.Status = middleware.StatusCompleted
	completed.ResponseCode = http.StatusCreated
	completed.ResponseBody = `{"id":1}`
	completed.CompletedAt = &now

	mockRedis.ExpectSetNX("idempotency:abc", record(t, processing), middleware.DefaultProcessingTTL).SetVal(true)
	mockRedis.ExpectSet("idempotency:abc", record(t, completed), time.Hour).SetVal("OK")

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusCreated)).ServeHTTP(rec, post("abc"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCompletedResponse(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	processing := middleware.IdempotencyRecord{
		Key:         "abc",
		Status:      middleware.StatusProcessing,
		RequestHash: hashOf(http.MethodPost, "/bookings", bookingBody),
		CreatedAt:   now,
	}
	stored := processing
	stored.Status = middleware.StatusCompleted
	stored.ResponseCode = http.StatusCreated
	stored.ResponseBody = `{"id":7}`

	mockRedis.ExpectSetNX("idempotency:abc", record(t, processing), middleware.DefaultProcessingTTL).SetVal(false)
	mockRedis.ExpectGet("idempotency:abc").SetVal(record(t, stored))

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusCreated)).ServeHTTP(rec, post("abc"))

	assert.Equal(t, 0, calls)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(middleware.IdempotentReplayHeader))
	assert.JSONEq(t, `{"id":7}`, rec.Body.String())
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestIdempotency_KeyReusedWithDifferentBody(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	processing := middleware.IdempotencyRecord{
		Key:         "abc",
		Status:      middleware.StatusProcessing,
		RequestHash: hashOf(http.MethodPost, "/bookings", bookingBody),
		CreatedAt:   now,
	}
	other := processing
	other.RequestHash = "something-else"
	other.Status = middleware.StatusCompleted

	mockRedis.ExpectSetNX("idempotency:abc", record(t, processing), middleware.DefaultProcessingTTL).SetVal(false)
	mockRedis.ExpectGet("idempotency:abc").SetVal(record(t, other))

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusCreated)).ServeHTTP(rec, post("abc"))

	assert.Equal(t, 0, calls)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestIdempotency_InProgress(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	processing := middleware.IdempotencyRecord{
		Key:         "abc",
		Status:      middleware.StatusProcessing,
		RequestHash: hashOf(http.MethodPost, "/bookings", bookingBody),
		CreatedAt:   now,
	}

	mockRedis.ExpectSetNX("idempotency:abc", record(t, processing), middleware.DefaultProcessingTTL).SetVal(false)
	mockRedis.ExpectGet("idempotency:abc").SetVal(record(t, processing))

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusCreated)).ServeHTTP(rec, post("abc"))

	assert.Equal(t, 0, calls)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIdempotency_ServerErrorReleasesKey(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	processing := middleware.IdempotencyRecord{
		Key:         "abc",
		Status:      middleware.StatusProcessing,
		RequestHash: hashOf(http.MethodPost, "/bookings", bookingBody),
		CreatedAt:   now,
	}

	mockRedis.ExpectSetNX("idempotency:abc", record(t, processing), middleware.DefaultProcessingTTL).SetVal(true)
	mockRedis.ExpectDel("idempotency:abc").SetVal(1)

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusInternalServerError)).ServeHTTP(rec, post("abc"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestIdempotency_StoreDownServesRequest(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	processing := middleware.IdempotencyRecord{
		Key:         "abc",
		Status:      middleware.StatusProcessing,
		RequestHash: hashOf(http.MethodPost, "/bookings", bookingBody),
		CreatedAt:   now,
	}
	mockRedis.ExpectSetNX("idempotency:abc", record(t, processing), middleware.DefaultProcessingTTL).
		SetErr(errors.New("connection refused"))

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusCreated)).ServeHTTP(rec, post("abc"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestIdempotency_NoHeaderPassesThrough(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()

	var calls int
	rec := httptest.NewRecorder()
	newIdempotency(db)(countingHandler(&calls, http.StatusCreated)).ServeHTTP(rec, post(""))

	assert.Equal(t, 1, calls)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var seenID string
	h := middleware.RequestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = logger.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", seenID)
	assert.Equal(t, "req-1", rec.Header().Get(middleware.RequestIDHeader))

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusTeapot), entries[0].ContextMap()["status"])
	assert.Equal(t, "/events", entries[0].ContextMap()["path"])
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	h := middleware.RequestLogger(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 36)
}

func TestRecover(t *testing.T) {
	h := middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") }),
		middleware.Recover(zap.NewNop()),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
