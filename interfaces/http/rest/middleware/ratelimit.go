package middleware

import (
	"net/http"

	"wishbloom-backend/pkg/auth"
	"wishbloom-backend/pkg/common"
	apperrors "wishbloom-backend/pkg/errors"

	"go.uber.org/zap"
)

// RateLimit gates a route subtree with the named policy. A denied request
// never reaches the wrapped handler. Limiter store errors fail open: the
// error is logged and the request proceeds.
func RateLimit(limiter auth.Limiter, policy auth.Policy, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := auth.ClientIdentifier(r)

			allowed, err := limiter.Allow(r.Context(), policy, identifier)
			if err != nil {
				logger.Warn("rate limiter error",
					zap.String("policy", string(policy)),
					zap.String("identifier", identifier),
					zap.Error(err),
				)
			}
			if !allowed {
				w.Header().Set("Retry-After", "60")
				common.RespondError(w, http.StatusTooManyRequests,
					string(apperrors.ErrorTypeRateLimit), "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
