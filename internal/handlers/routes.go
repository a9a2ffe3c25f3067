package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/event-hotels-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, log *slog.Logger, authHandler *auth.AuthHandler, hotelHandler *HotelHandler) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Event Hotels API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		auth.SecurityScheme: {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)
	api.UseMiddleware(authHandler.Middleware(api))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	huma.Get(api, "/auth/discord/login", authHandler.HandleLogin)
	huma.Get(api, "/auth/discord/callback", authHandler.HandleCallback)

	// Protected routes
	protected := func(o *huma.Operation) {
		o.Security = auth.Security()
	}
	huma.Get(api, "/me", authHandler.HandleMe, protected)
	huma.Get(api, "/hotels", hotelHandler.HandleListHotels, protected, func(o *huma.Operation) {
		o.Summary = "List hotels"
		o.Description = "Lists every hotel to users whose paid, in-person ticket includes lodging."
		o.Errors = []int{http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusNotFound}
	})
	huma.Get(api, "/hotels/{hotelId}", hotelHandler.HandleListHotelRooms, protected, func(o *huma.Operation) {
		o.Summary = "List hotel rooms"
		o.Errors = []int{http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusNotFound}
	})

	return api
}
