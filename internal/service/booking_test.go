package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotel-concierge/internal/models"

	"go.uber.org/zap"
)

type fakeBookingStore struct {
	created []models.Booking
	failOn  map[string]bool
	nextID  int64
}

func (f *fakeBookingStore) Create(_ context.Context, booking *models.Booking) error {
	if f.failOn[booking.GuestName] {
		return errors.New("insert failed")
	}
	f.nextID++
	booking.ID = f.nextID
	f.created = append(f.created, *booking)
	return nil
}

func newBookingServiceForTest(store *fakeBookingStore) *BookingService {
	return NewBookingService(store, zap.NewNop())
}

const bookingHeader = "guest_name,room_type,check_in,check_out,special_requests\n"

func TestIngestAcceptsCompleteRowsAndDropsIncomplete(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingServiceForTest(store)

	csvData := bookingHeader +
		"Alice Smith,deluxe,2026-09-01,2026-09-04,late check-in\n" +
		"Bob Jones,suite,,2026-09-10,\n" // missing check_in: silently dropped

	result := svc.Ingest(context.Background(), strings.NewReader(csvData))

	if result.Processed != 1 {
		t.Fatalf("expected 1 processed booking, got %d", result.Processed)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 persisted booking, got %d", len(store.created))
	}
	if store.created[0].GuestName != "Alice Smith" {
		t.Errorf("expected Alice Smith persisted, got %q", store.created[0].GuestName)
	}
	if got := strings.Count(result.Context, "Processed booking"); got != 1 {
		t.Errorf("expected exactly one processed note, got %d in %q", got, result.Context)
	}
}

func TestIngestEmptyCSVIsNotAnError(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingServiceForTest(store)

	result := svc.Ingest(context.Background(), strings.NewReader(bookingHeader))

	if result.Processed != 0 {
		t.Fatalf("expected 0 processed bookings, got %d", result.Processed)
	}
	if len(store.created) != 0 {
		t.Fatalf("expected no persisted bookings, got %d", len(store.created))
	}
	if result.Context != noValidBookingsNote {
		t.Errorf("expected %q, got %q", noValidBookingsNote, result.Context)
	}
}

func TestIngestMalformedCSVYieldsEmptyResult(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingServiceForTest(store)

	// Unbalanced quote makes the reader fail
	result := svc.Ingest(context.Background(), strings.NewReader("guest_name,room_type\n\"broken,row\n more"))

	if len(store.created) != 0 {
		t.Fatalf("expected no persisted bookings, got %d", len(store.created))
	}
	if result.Context != noValidBookingsNote {
		t.Errorf("expected %q, got %q", noValidBookingsNote, result.Context)
	}
}

func TestIngestResubmissionInsertsDuplicates(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newBookingServiceForTest(store)

	csvData := bookingHeader + "Alice Smith,deluxe,2026-09-01,2026-09-04,\n"

	svc.Ingest(context.Background(), strings.NewReader(csvData))
	svc.Ingest(context.Background(), strings.NewReader(csvData))

	// No deduplication: the same CSV uploaded twice inserts two rows
	if len(store.created) != 2 {
		t.Fatalf("expected 2 persisted bookings after resubmission, got %d", len(store.created))
	}
}

func TestIngestContinuesPastPersistFailures(t *testing.T) {
	store := &fakeBookingStore{failOn: map[string]bool{"Alice Smith": true}}
	svc := newBookingServiceForTest(store)

	csvData := bookingHeader +
		"Alice Smith,deluxe,2026-09-01,2026-09-04,\n" +
		"Carol White,standard,2026-09-05,2026-09-06,\n"

	result := svc.Ingest(context.Background(), strings.NewReader(csvData))

	if result.Processed != 1 {
		t.Fatalf("expected 1 processed booking, got %d", result.Processed)
	}
	if len(store.created) != 1 || store.created[0].GuestName != "Carol White" {
		t.Fatalf("expected only Carol White persisted, got %+v", store.created)
	}
	if strings.Contains(result.Context, "Alice") {
		t.Errorf("failed row must not appear in context: %q", result.Context)
	}
}

func TestValidateRow(t *testing.T) {
	svc := newBookingServiceForTest(&fakeBookingStore{})

	tests := []struct {
		name    string
		row     map[string]string
		wantErr bool
	}{
		{
			name: "all required fields",
			row: map[string]string{
				"guest_name": "Alice", "room_type": "suite",
				"check_in": "2026-09-01", "check_out": "2026-09-02",
			},
			wantErr: false,
		},
		{
			name: "missing guest_name",
			row: map[string]string{
				"room_type": "suite", "check_in": "2026-09-01", "check_out": "2026-09-02",
			},
			wantErr: true,
		},
		{
			name: "whitespace-only room_type",
			row: map[string]string{
				"guest_name": "Alice", "room_type": "   ",
				"check_in": "2026-09-01", "check_out": "2026-09-02",
			},
			wantErr: true,
		},
		{
			name: "dates stay opaque strings",
			row: map[string]string{
				"guest_name": "Alice", "room_type": "suite",
				"check_in": "tomorrow-ish", "check_out": "whenever",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, err := svc.ValidateRow(tt.row)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateRow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && booking.SpecialRequests != "" {
				t.Errorf("special_requests should default to empty, got %q", booking.SpecialRequests)
			}
		})
	}
}
