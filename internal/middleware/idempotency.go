package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/domain/dto"
	"github.com/guttosm/package-form/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a replayed response.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
	// MaxIdempotencyKeyLength bounds the header value.
	MaxIdempotencyKeyLength = 255
)

// replayedHeaders are copied from the original response on replay.
var replayedHeaders = []string{"Location", SessionHeader}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *idempotencyCache
	Enabled bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Cache:   newIdempotencyCache(IdempotencyKeyTTL),
		Enabled: true,
	}
}

// Idempotency replays the stored response when a POST, PUT or PATCH repeats
// an Idempotency-Key within the TTL, so a retried submit never reaches the
// package API twice. Keys are scoped by session, method, path and body. A
// repeat that arrives while the first request is running gets 409. Server
// errors are not stored and may be retried.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		locale := i18n.GetLocale(c)
		translator := i18n.GetTranslator()
		requestID := GetRequestID(c)

		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, translator.Translate(i18n.ErrKeyIdempotencyKeyTooBig, locale)).
					WithRequestID(requestID))
			return
		}

		cacheKey, err := generateCacheKey(key, GetSessionID(c), c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewError(dto.ErrCodeInvalidRequest, translator.Translate(i18n.ErrKeyInvalidRequestBody, locale)).
					WithRequestID(requestID))
			return
		}

		cached, inFlight := cfg.Cache.reserve(cacheKey)
		switch {
		case inFlight:
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewError(dto.ErrCodeConflict, translator.Translate(i18n.ErrKeyIdempotencyInFlight, locale)).
					WithRequestID(requestID))
			return
		case cached != nil:
			for k, v := range cached.Headers {
				c.Header(k, v)
			}
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		defer func() {
			status := writer.Status()
			if status >= http.StatusInternalServerError || !writer.Written() {
				cfg.Cache.release(cacheKey)
				return
			}

			headers := make(map[string]string, len(replayedHeaders))
			for _, h := range replayedHeaders {
				if v := writer.Header().Get(h); v != "" {
					headers[h] = v
				}
			}
			cfg.Cache.complete(cacheKey, &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Headers:     headers,
				Body:        writer.body.Bytes(),
			})
		}()

		c.Next()
	}
}

// generateCacheKey hashes the idempotency key with the request identity. The
// body is restored for the handler.
func generateCacheKey(idempotencyKey, sessionID string, req *http.Request) (string, error) {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, sessionID, req.Method, req.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}

	if req.Body != nil {
		bodyBytes, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		hasher.Write(bodyBytes)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// responseWriter captures the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
