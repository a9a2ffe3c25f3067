package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-hotels-api/internal/auth"
	"github.com/gdg-garage/event-hotels-api/internal/models"
	"github.com/gdg-garage/event-hotels-api/internal/service"
)

// HotelLister is the eligibility-gated hotel listing.
type HotelLister interface {
	ListHotels(ctx context.Context, userID uint) ([]models.Hotel, error)
	ListHotelRooms(ctx context.Context, hotelID, userID uint) ([]models.Room, error)
}

type HotelHandler struct {
	hotels HotelLister
	log    *slog.Logger
}

func NewHotelHandler(hotels HotelLister, log *slog.Logger) *HotelHandler {
	if log == nil {
		log = slog.Default()
	}
	return &HotelHandler{hotels: hotels, log: log}
}

type HotelsOutput struct {
	Body []models.Hotel
}

func (h *HotelHandler) HandleListHotels(ctx context.Context, input *struct{}) (*HotelsOutput, error) {
	const op = "handlers.HotelHandler.HandleListHotels"

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	hotels, err := h.hotels.ListHotels(ctx, userID)
	if err != nil {
		return nil, h.toHTTPError(op, userID, err)
	}

	return &HotelsOutput{Body: hotels}, nil
}

type HotelRoomsInput struct {
	HotelID uint `path:"hotelId" minimum:"1" doc:"Hotel identifier"`
}

type HotelRoomsOutput struct {
	Body []models.Room
}

func (h *HotelHandler) HandleListHotelRooms(ctx context.Context, input *HotelRoomsInput) (*HotelRoomsOutput, error) {
	const op = "handlers.HotelHandler.HandleListHotelRooms"

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	rooms, err := h.hotels.ListHotelRooms(ctx, input.HotelID, userID)
	if err != nil {
		return nil, h.toHTTPError(op, userID, err)
	}

	return &HotelRoomsOutput{Body: rooms}, nil
}

// toHTTPError maps a gate failure onto its response status. Causes are kept
// in the log only.
func (h *HotelHandler) toHTTPError(op string, userID uint, err error) error {
	log := h.log.With(slog.String("op", op), slog.Uint64("user_id", uint64(userID)))

	switch {
	case errors.Is(err, service.ErrNotFound):
		log.Info("hotel listing not found", slog.String("reason", err.Error()))
		return huma.Error404NotFound("Not found")
	case errors.Is(err, service.ErrPaymentRequired):
		log.Info("hotel listing denied", slog.String("reason", err.Error()))
		return huma.NewError(http.StatusPaymentRequired, "Payment required")
	default:
		log.Error("failed to list hotels", slog.Any("error", err))
		return huma.Error500InternalServerError("Internal server error")
	}
}
