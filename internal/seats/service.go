package seats

import (
	"context"
	"fmt"
	"time"

	"deskhive/internal/shared/apperrors"
	"deskhive/internal/shared/identity"
	"deskhive/internal/users"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
)

// BookingDirectory is the slice of the booking store the seat service needs
// (declared here to avoid a circular dependency on the bookings package).
type BookingDirectory interface {
	// ActiveBookingsFrom returns ACTIVE bookings on the seat dated on or
	// after the given day.
	ActiveBookingsFrom(ctx context.Context, seatID uuid.UUID, from time.Time) ([]AffectedBooking, error)
}

// AffectedBooking describes a booking hit by a seat block, in the shape the
// notification pipeline needs.
type AffectedBooking struct {
	BookingID   uuid.UUID `json:"booking_id"`
	UserID      uuid.UUID `json:"user_id"`
	BookingDate time.Time `json:"booking_date"`
	Slot        string    `json:"slot"`
}

// SeatBlockNotice is handed to the notification sink for every booking
// affected by a block.
type SeatBlockNotice struct {
	BookingID      uuid.UUID `json:"booking_id"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	RecipientEmail string    `json:"recipient_email"`
	RecipientName  string    `json:"recipient_name"`
	SeatCode       string    `json:"seat_code"`
	BookingDate    time.Time `json:"booking_date"`
	Slot           string    `json:"slot"`
	Reason         string    `json:"reason"`
}

// Notifier delivers seat-block notices. Implementations must be safe to fail:
// the block operation never rolls back on notification errors.
type Notifier interface {
	NotifySeatBlocked(ctx context.Context, notice SeatBlockNotice) error
}

// Service interface defines the contract for seat directory business logic
type Service interface {
	ListSeats(ctx context.Context, seatType string) ([]Seat, error)
	CreateSeat(ctx context.Context, caller identity.CallerIdentity, req CreateSeatRequest) (*Seat, error)
	UpdateSeat(ctx context.Context, caller identity.CallerIdentity, seatID uuid.UUID, req UpdateSeatRequest) (*Seat, error)
	BatchUpdatePlacements(ctx context.Context, caller identity.CallerIdentity, req BatchPlacementRequest) error
	SetBlocked(ctx context.Context, caller identity.CallerIdentity, seatID uuid.UUID, req BlockSeatRequest) (*Seat, error)
	DeleteSeat(ctx context.Context, caller identity.CallerIdentity, seatID uuid.UUID) error
}

type service struct {
	repo     Repository
	userRepo users.Repository
	bookings BookingDirectory
	notifier Notifier
	log      *logger.Logger
}

// NewService creates a new seat directory service instance
func NewService(repo Repository, userRepo users.Repository, bookings BookingDirectory, notifier Notifier) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		bookings: bookings,
		notifier: notifier,
		log:      logger.GetDefault(),
	}
}

func (s *service) ListSeats(ctx context.Context, seatType string) ([]Seat, error) {
	if seatType != "" && !SeatType(seatType).IsValid() {
		return nil, apperrors.Invalid("unknown seat type")
	}
	return s.repo.List(ctx, seatType)
}

func (s *service) CreateSeat(ctx context.Context, caller identity.CallerIdentity, req CreateSeatRequest) (*Seat, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can create seats")
	}

	seat := &Seat{
		SeatCode:   req.SeatCode,
		Type:       SeatType(req.Type),
		HasMonitor: req.HasMonitor,
		X:          req.X,
		Y:          req.Y,
	}

	if err := s.repo.Create(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

func (s *service) UpdateSeat(ctx context.Context, caller identity.CallerIdentity, seatID uuid.UUID, req UpdateSeatRequest) (*Seat, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can update seats")
	}

	seat, err := s.repo.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	if req.SeatCode != nil {
		seat.SeatCode = *req.SeatCode
	}
	if req.Type != nil {
		seat.Type = SeatType(*req.Type)
	}
	if req.HasMonitor != nil {
		seat.HasMonitor = *req.HasMonitor
	}
	if req.X != nil {
		seat.X = req.X
	}
	if req.Y != nil {
		seat.Y = req.Y
	}

	if err := s.repo.Update(ctx, seat); err != nil {
		return nil, err
	}
	return seat, nil
}

func (s *service) BatchUpdatePlacements(ctx context.Context, caller identity.CallerIdentity, req BatchPlacementRequest) error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("only admins can update the floor plan")
	}
	return s.repo.UpdatePlacements(ctx, req.Seats)
}

// SetBlocked toggles the blocked flag. Blocking does not cancel affected
// bookings; it notifies their owners so they can rebook. Notification
// failures are logged and swallowed: the block itself is the operation of
// record.
func (s *service) SetBlocked(ctx context.Context, caller identity.CallerIdentity, seatID uuid.UUID, req BlockSeatRequest) (*Seat, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can block seats")
	}

	seat, err := s.repo.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	wasBlocked := seat.IsBlocked
	seat.IsBlocked = req.IsBlocked
	if req.IsBlocked {
		reason := req.BlockedReason
		seat.BlockedReason = &reason
	} else {
		seat.BlockedReason = nil
	}

	if err := s.repo.Update(ctx, seat); err != nil {
		return nil, err
	}

	if req.IsBlocked && !wasBlocked {
		s.notifyAffectedBookings(ctx, seat, req.BlockedReason)
	}

	return seat, nil
}

func (s *service) notifyAffectedBookings(ctx context.Context, seat *Seat, reason string) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	affected, err := s.bookings.ActiveBookingsFrom(ctx, seat.ID, today)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to enumerate bookings for blocked seat", err, map[string]interface{}{
			"seat_id": seat.ID.String(),
		})
		return
	}
	if len(affected) == 0 {
		return
	}

	userIDs := make([]uuid.UUID, 0, len(affected))
	for _, b := range affected {
		userIDs = append(userIDs, b.UserID)
	}
	recipients, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		s.log.ErrorWithContext(ctx, "failed to resolve notification recipients", err, map[string]interface{}{
			"seat_id": seat.ID.String(),
		})
		return
	}

	for _, b := range affected {
		recipient, ok := recipients[b.UserID]
		if !ok {
			continue
		}

		notice := SeatBlockNotice{
			BookingID:      b.BookingID,
			RecipientID:    recipient.ID,
			RecipientEmail: recipient.Email,
			RecipientName:  recipient.Name,
			SeatCode:       seat.SeatCode,
			BookingDate:    b.BookingDate,
			Slot:           b.Slot,
			Reason:         reason,
		}

		if err := s.notifier.NotifySeatBlocked(ctx, notice); err != nil {
			s.log.ErrorWithContext(ctx, "seat-block notification failed", err, map[string]interface{}{
				"booking_id": b.BookingID.String(),
				"seat_code":  seat.SeatCode,
			})
		}
	}

	s.log.LogSeatBlocked(ctx, seat.ID.String(), seat.SeatCode, len(affected))
}

func (s *service) DeleteSeat(ctx context.Context, caller identity.CallerIdentity, seatID uuid.UUID) error {
	if !caller.IsAdmin() {
		return apperrors.Forbidden("only admins can delete seats")
	}

	if _, err := s.repo.GetByID(ctx, seatID); err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	future, err := s.bookings.ActiveBookingsFrom(ctx, seatID, today)
	if err != nil {
		return fmt.Errorf("failed to check seat bookings: %w", err)
	}
	if len(future) > 0 {
		return apperrors.Conflict("seat has active future bookings")
	}

	return s.repo.Delete(ctx, seatID)
}
