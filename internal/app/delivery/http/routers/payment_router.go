package routers

import (
	"fmt"

	"onterapi-service/internal/app/delivery/http/controllers"
	"onterapi-service/internal/app/delivery/http/middlewares"
	"onterapi-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(r chi.Router, m *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	r.Group(func(r chi.Router) {
		r.Use(m.WebhookToken)
		r.Use(m.WebhookRateLimit(constvars.PaymentProviderAsaas))
		r.Post("/webhooks/asaas", paymentController.AsaasWebhook)
	})

	r.Group(func(r chi.Router) {
		r.Use(m.StaffAuth)
		r.Get(fmt.Sprintf("/appointments/{%s}/ledger", constvars.URLParamAppointmentID), paymentController.GetLedger)
	})
}
