package models

import "time"

// Booking is one row of the bookings table. Check-in and check-out dates are
// stored as the opaque strings found in the uploaded CSV; no date-range
// validation is performed on them.
type Booking struct {
	ID              int64     `db:"id"`
	GuestName       string    `db:"guest_name" validate:"required"`
	RoomType        string    `db:"room_type" validate:"required"`
	CheckIn         string    `db:"check_in" validate:"required"`
	CheckOut        string    `db:"check_out" validate:"required"`
	SpecialRequests string    `db:"special_requests"`
	CreatedAt       time.Time `db:"created_at"`
}
