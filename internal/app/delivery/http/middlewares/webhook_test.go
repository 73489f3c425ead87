package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func webhookMiddlewares(token string) *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			Payments: config.Payments{WebhookAccessToken: token},
		},
	}
}

func TestWebhookToken(t *testing.T) {
	passed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("matching token passes", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/webhooks/asaas", nil)
		request.Header.Set(constvars.HeaderAsaasAccessToken, "secret-token")

		webhookMiddlewares("secret-token").WebhookToken(passed).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("wrong token is unauthorized", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/webhooks/asaas", nil)
		request.Header.Set(constvars.HeaderAsaasAccessToken, "wrong")

		webhookMiddlewares("secret-token").WebhookToken(passed).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("missing token is unauthorized", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/webhooks/asaas", nil)

		webhookMiddlewares("secret-token").WebhookToken(passed).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("empty configured token disables the check", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/webhooks/asaas", nil)

		webhookMiddlewares("").WebhookToken(passed).ServeHTTP(recorder, request)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
