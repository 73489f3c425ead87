package routers

import (
	"time"

	"onterapi-service/internal/app/config"
	"onterapi-service/internal/app/delivery/http/controllers"
	"onterapi-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	bookingController *controllers.BookingController,
	paymentController *controllers.PaymentController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	router.Use(middlewares.RequestID)
	router.Use(middlewares.Logging)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			attachBookingRoutes(r, middlewares, bookingController)
		})

		r.Route("/payments", func(r chi.Router) {
			attachPaymentRoutes(r, middlewares, paymentController)
		})
	})
}
