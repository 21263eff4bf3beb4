package handlers

import (
	"context"
	"time"

	"hotel-concierge/internal/dto"
	"hotel-concierge/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BookingLister reads back persisted bookings for the listing view.
type BookingLister interface {
	ListOrderedByCheckIn(ctx context.Context) ([]*models.Booking, error)
}

type BookingHandler struct {
	bookings BookingLister
	logger   *zap.Logger
}

func NewBookingHandler(bookings BookingLister, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookings: bookings,
		logger:   logger,
	}
}

// List returns all bookings ordered by check-in date.
func (h *BookingHandler) List(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListOrderedByCheckIn(c.Context())
	if err != nil {
		h.logger.Error("Failed to list bookings", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list bookings",
		})
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.BookingResponse{
			ID:              b.ID,
			GuestName:       b.GuestName,
			RoomType:        b.RoomType,
			CheckIn:         b.CheckIn,
			CheckOut:        b.CheckOut,
			SpecialRequests: b.SpecialRequests,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}

	return c.JSON(resp)
}
