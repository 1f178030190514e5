package middleware

import (
	"net/http"
	"time"

	"github.com/fintrak/backend/internal/domain/shared"
	"github.com/fintrak/backend/internal/infrastructure/logger"
	"github.com/fintrak/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader lets clients make a mutation safe to retry
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds the key so it cannot bloat the store
const maxIdempotencyKeyLength = 128

// Idempotency rejects a repeated Idempotency-Key with 409 DUPLICATE_REQUEST
// until ttl passes. Keys are scoped to method and route. A request that fails
// releases its key so the client can retry it. Requests without the header
// pass through; when the store itself fails the request also passes through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInvalidInput, "Idempotency-Key is too long", GetRequestID(c)))
			return
		}

		log := logger.GetGinLogger(c)
		ctx := c.Request.Context()
		scoped := c.Request.Method + " " + c.FullPath() + " " + key

		fresh, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			log.Warn("idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				shared.ErrDuplicate.Code, shared.ErrDuplicate.Message, GetRequestID(c)))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Forget(ctx, scoped); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
