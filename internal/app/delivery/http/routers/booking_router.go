package routers

import (
	"fmt"

	"onterapi-service/internal/app/delivery/http/controllers"
	"onterapi-service/internal/app/delivery/http/middlewares"
	"onterapi-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(r chi.Router, m *middlewares.Middlewares, bookingController *controllers.BookingController) {
	r.Group(func(r chi.Router) {
		r.Use(m.StaffAuth)
		r.Post(fmt.Sprintf("/holds/{%s}/confirm", constvars.URLParamHoldID), bookingController.ConfirmHold)
		r.Post(fmt.Sprintf("/holds/{%s}/overbooking-review", constvars.URLParamHoldID), bookingController.ReviewOverbooking)
	})
}
