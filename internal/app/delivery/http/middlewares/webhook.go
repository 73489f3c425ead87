package middlewares

import (
	"fmt"
	"net/http"

	"onterapi-service/internal/pkg/constvars"
	"onterapi-service/internal/pkg/exceptions"
	"onterapi-service/internal/pkg/utils"

	"onterapi-service/internal/app/services/shared/ratelimiter"
)

// WebhookToken checks the static access token Asaas is configured to send
// with every delivery. An empty configured token disables the check for
// local development.
func (m *Middlewares) WebhookToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := m.InternalConfig.Payments.WebhookAccessToken
		if expected != "" && r.Header.Get(constvars.HeaderAsaasAccessToken) != expected {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrWebhookTokenInvalid(nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WebhookRateLimit applies a fixed-window limit per provider, shared across
// instances through the limiter's store.
func (m *Middlewares) WebhookRateLimit(provider string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			output, err := m.ResourceLimiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
				ResourceName:      provider,
				LimiterGroupName:  "payment-webhook",
				WindowDurationSec: 60,
				MaxQuota:          m.InternalConfig.Payments.WebhookMaxPerMinute,
			})
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			if !output.Allowed {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", output.RetryAfterSecs))
				utils.BuildErrorResponse(m.Log, w, exceptions.BuildNewCustomError(nil, constvars.StatusTooManyRequests, constvars.ErrClientCannotProcessRequest, "webhook rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
