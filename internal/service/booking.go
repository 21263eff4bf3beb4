package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"hotel-concierge/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const noValidBookingsNote = "No valid bookings found in the uploaded file."

// BookingStore persists accepted bookings. One Create call is one implicit
// transaction.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
}

// IngestResult is the aggregate outcome of one CSV upload. Rejected rows are
// not itemized; they only show through the processed count.
type IngestResult struct {
	Processed int
	Context   string
}

// BookingService ingests uploaded booking CSVs: parse with a header row,
// validate each candidate, persist each accepted row independently.
type BookingService struct {
	store    BookingStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewBookingService(store BookingStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Ingest processes a booking CSV. Rows missing any required field are
// silently dropped. A failed insert is logged and skipped without aborting
// the rest of the batch. Duplicate rows across uploads are inserted again;
// there is no deduplication.
func (s *BookingService) Ingest(ctx context.Context, r io.Reader) IngestResult {
	candidates := s.parseCSV(r)

	var notes []string
	for _, row := range candidates {
		booking, err := s.ValidateRow(row)
		if err != nil {
			s.logger.Debug("Booking row rejected", zap.Error(err))
			continue
		}

		if err := s.store.Create(ctx, &booking); err != nil {
			s.logger.Error("Failed to persist booking",
				zap.String("guest", booking.GuestName),
				zap.Error(err),
			)
			continue
		}

		notes = append(notes, fmt.Sprintf(
			"Processed booking for %s (%s, %s to %s)",
			booking.GuestName, booking.RoomType, booking.CheckIn, booking.CheckOut,
		))
	}

	if len(notes) == 0 {
		return IngestResult{Context: noValidBookingsNote}
	}

	return IngestResult{
		Processed: len(notes),
		Context:   strings.Join(notes, "\n"),
	}
}

// ValidateRow builds a Booking from a header-keyed candidate row. A row is
// accepted iff guest_name, room_type, check_in and check_out are all
// present; special_requests defaults to empty. Dates stay opaque strings.
func (s *BookingService) ValidateRow(row map[string]string) (models.Booking, error) {
	field := func(name string) string {
		return sanitizeUTF8(strings.TrimSpace(row[name]))
	}

	booking := models.Booking{
		GuestName:       field("guest_name"),
		RoomType:        field("room_type"),
		CheckIn:         field("check_in"),
		CheckOut:        field("check_out"),
		SpecialRequests: field("special_requests"),
	}

	if err := s.validate.Struct(&booking); err != nil {
		return models.Booking{}, fmt.Errorf("missing required fields: %w", err)
	}

	return booking, nil
}

// parseCSV reads a CSV with a header row into header-keyed candidates. An
// unreadable file yields no candidates rather than an error.
func (s *BookingService) parseCSV(r io.Reader) []map[string]string {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		s.logger.Warn("Failed to parse booking CSV", zap.Error(err))
		return nil
	}

	if len(records) < 2 {
		return nil
	}

	header := records[0]
	var candidates []map[string]string
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = record[i]
			}
		}
		candidates = append(candidates, row)
	}

	return candidates
}
