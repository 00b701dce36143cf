package bookings

import (
	"context"
	"time"

	"deskhive/internal/seats"

	"github.com/google/uuid"
)

// DirectoryAdapter exposes the booking store to the seat directory as a
// seats.BookingDirectory, keeping the dependency pointing from bookings to
// seats rather than the other way around.
type DirectoryAdapter struct {
	repo Repository
}

func NewDirectoryAdapter(repo Repository) *DirectoryAdapter {
	return &DirectoryAdapter{repo: repo}
}

func (a *DirectoryAdapter) ActiveBookingsFrom(ctx context.Context, seatID uuid.UUID, from time.Time) ([]seats.AffectedBooking, error) {
	rows, err := a.repo.ListActiveBySeatFrom(ctx, seatID, from)
	if err != nil {
		return nil, err
	}

	affected := make([]seats.AffectedBooking, 0, len(rows))
	for _, b := range rows {
		affected = append(affected, seats.AffectedBooking{
			BookingID:   b.ID,
			UserID:      b.UserID,
			BookingDate: b.BookingDate,
			Slot:        b.Slot.String(),
		})
	}
	return affected, nil
}
