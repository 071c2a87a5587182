package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/ticket_booking/internal/platform/clock"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// IdempotentReplayHeader marks a response served from a stored record
	IdempotentReplayHeader = "X-Idempotent-Replayed"
	// IdempotencyKeyPrefix is the Redis key prefix for idempotency records
	IdempotencyKeyPrefix = "idempotency:"

	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultProcessingTTL  = 60 * time.Second
)

type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the state of an idempotent request
type IdempotencyRecord struct {
	Key          string            `json:"key"`
	Status       IdempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code,omitempty"`
	ResponseBody string            `json:"response_body,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// RedisClient is the subset of go-redis the idempotency store needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type IdempotencyConfig struct {
	Redis  RedisClient
	Clock  clock.Clock
	Logger *zap.Logger

	// TTL for completed records
	TTL time.Duration

	// ProcessingTTL bounds how long a crashed request can block retries
	ProcessingTTL time.Duration
}

func DefaultIdempotencyConfig(client RedisClient) IdempotencyConfig {
	return IdempotencyConfig{
		Redis:         client,
		TTL:           DefaultIdempotencyTTL,
		ProcessingTTL: DefaultProcessingTTL,
		Clock:         clock.NewSystem(),
		Logger:        zap.NewNop(),
	}
}

// Idempotency replays the stored response when a request is retried with the
// same X-Idempotency-Key, so a retried booking never consumes seats twice.
// Requests without the header pass through untouched.
func Idempotency(cfg IdempotencyConfig) func(http.Handler) http.Handler {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultIdempotencyTTL
	}
	if cfg.ProcessingTTL <= 0 {
		cfg.ProcessingTTL = DefaultProcessingTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewSystem()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyKeyHeader)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, "failed to read request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			redisKey := IdempotencyKeyPrefix + key
			hash := requestHash(r, body)

			processing := IdempotencyRecord{
				Key:         key,
				Status:      StatusProcessing,
				RequestHash: hash,
				CreatedAt:   cfg.Clock.Now(),
			}
			payload, _ := json.Marshal(processing)

			acquired, err := cfg.Redis.SetNX(ctx, redisKey, string(payload), cfg.ProcessingTTL).Result()
			if err != nil {
				// Without the store we cannot dedupe; serve the request normally.
				cfg.Logger.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if !acquired {
				replayExisting(ctx, w, cfg, redisKey, hash)
				return
			}

			rec := &bufferedResponse{header: make(http.Header)}
			next.ServeHTTP(rec, r)
			rec.flush(w)

			if rec.status >= http.StatusInternalServerError {
				if err := cfg.Redis.Del(ctx, redisKey).Err(); err != nil {
					cfg.Logger.Warn("failed to release idempotency key", zap.String("key", key), zap.Error(err))
				}
				return
			}

			completedAt := cfg.Clock.Now()
			completed := processing
			completed.Status = StatusCompleted
			completed.ResponseCode = rec.status
			completed.ResponseBody = rec.body.String()
			completed.CompletedAt = &completedAt
			payload, _ = json.Marshal(completed)

			if err := cfg.Redis.Set(ctx, redisKey, string(payload), cfg.TTL).Err(); err != nil {
				cfg.Logger.Warn("failed to store idempotency record", zap.String("key", key), zap.Error(err))
			}
		})
	}
}

func replayExisting(ctx context.Context, w http.ResponseWriter, cfg IdempotencyConfig, redisKey, hash string) {
	raw, err := cfg.Redis.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		writeJSONError(w, http.StatusConflict, "request in progress, retry later")
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusServiceUnavailable, "idempotency store unavailable")
		return
	}

	var record IdempotencyRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "corrupt idempotency record")
		return
	}

	if record.RequestHash != hash {
		writeJSONError(w, http.StatusUnprocessableEntity, "idempotency key reused with a different request")
		return
	}

	if record.Status != StatusCompleted {
		writeJSONError(w, http.StatusConflict, "request in progress, retry later")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotentReplayHeader, "true")
	w.WriteHeader(record.ResponseCode)
	_, _ = io.WriteString(w, record.ResponseBody)
}

func requestHash(r *http.Request, body []byte) string {
	h := sha256.New()
	h.Write([]byte(r.Method))
	h.Write([]byte(r.URL.Path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// bufferedResponse holds a handler's response so it can be stored before it
// is written to the client.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) flush(w http.ResponseWriter) {
	for k, v := range b.header {
		w.Header()[k] = v
	}
	if b.status == 0 {
		b.status = http.StatusOK
	}
	w.WriteHeader(b.status)
	_, _ = w.Write(b.body.Bytes())
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
