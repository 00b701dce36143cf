package allocations

import (
	"context"
	"errors"

	"deskhive/internal/seats"
	"deskhive/internal/shared/apperrors"

	"github.com/google/uuid"
)

// SeatCheckerAdapter wraps the seat repository as a SeatChecker.
type SeatCheckerAdapter struct {
	repo seats.Repository
}

func NewSeatCheckerAdapter(repo seats.Repository) *SeatCheckerAdapter {
	return &SeatCheckerAdapter{repo: repo}
}

func (a *SeatCheckerAdapter) SeatExists(ctx context.Context, seatID uuid.UUID) (bool, error) {
	_, err := a.repo.GetByID(ctx, seatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
