package router

import (
	"corpbooking/internal/handlers/auth"
	"corpbooking/internal/handlers/booking"
	"corpbooking/internal/handlers/room"
	"corpbooking/internal/handlers/vehicle"

	"github.com/go-chi/chi/v5"
)

const apiVersion = "/v1"

type DomainHandlers struct {
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Vehicle vehicle.Handler
}

type mountable interface {
	Router(r chi.Router)
}

type Router struct {
	DomainHandlers DomainHandlers
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

// SetupRoutes mounts every domain under the API version prefix.
func (r *Router) SetupRoutes(router chi.Router) {
	handlers := []mountable{
		&r.DomainHandlers.Auth,
		&r.DomainHandlers.Room,
		&r.DomainHandlers.Booking,
		&r.DomainHandlers.Vehicle,
	}

	router.Route(apiVersion, func(group chi.Router) {
		for _, handler := range handlers {
			handler.Router(group)
		}
	})
}
