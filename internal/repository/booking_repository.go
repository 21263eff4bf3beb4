package repository

import (
	"context"

	"hotel-concierge/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type BookingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBookingRepository(db *pgxpool.Pool, logger *zap.Logger) *BookingRepository {
	return &BookingRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts one booking row and fills in the assigned id and creation
// time. Each call is its own implicit transaction.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	query := squirrel.Insert("bookings").
		Columns("guest_name", "room_type", "check_in", "check_out", "special_requests").
		Values(booking.GuestName, booking.RoomType, booking.CheckIn, booking.CheckOut, booking.SpecialRequests).
		Suffix("RETURNING id, created_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&booking.ID, &booking.CreatedAt)
}

// ListOrderedByCheckIn returns every booking, ordered by the check-in
// string. Dates are opaque text, so the ordering is lexicographic.
func (r *BookingRepository) ListOrderedByCheckIn(ctx context.Context) ([]*models.Booking, error) {
	query := squirrel.Select("id", "guest_name", "room_type", "check_in", "check_out", "special_requests", "created_at").
		From("bookings").
		OrderBy("check_in ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.GuestName, &b.RoomType, &b.CheckIn, &b.CheckOut, &b.SpecialRequests, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}
