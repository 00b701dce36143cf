package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskhive/internal/allocations"
	"deskhive/internal/seats"
	"deskhive/internal/shared/apperrors"
	"deskhive/internal/shared/config"
	"deskhive/internal/shared/identity"
	"deskhive/pkg/cache"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
)

// SeatDirectory is the slice of the seat directory the booking core reads
// (satisfied by seats.Repository).
type SeatDirectory interface {
	ListBookable(ctx context.Context, seatType string) ([]seats.Seat, error)
}

// AllocationRegistry is the slice of the allocation registry the booking
// core reads (satisfied by allocations.Repository).
type AllocationRegistry interface {
	ListApprovedCovering(ctx context.Context, day time.Time) ([]allocations.LongTermAllocation, error)
}

// Service interface defines the contract for booking business logic
type Service interface {
	GetAvailability(ctx context.Context, date, seatType string) ([]SeatAvailability, error)
	CreateBookings(ctx context.Context, caller identity.CallerIdentity, req CreateBookingsRequest) ([]Booking, error)
	CancelBooking(ctx context.Context, caller identity.CallerIdentity, bookingID uuid.UUID) error
	CancelGroup(ctx context.Context, caller identity.CallerIdentity, groupID uuid.UUID) (int64, error)
	ListMyBookings(ctx context.Context, caller identity.CallerIdentity) ([]BookingView, error)
	ListAllBookings(ctx context.Context, caller identity.CallerIdentity, from, to string) ([]Booking, error)
	ListByDate(ctx context.Context, caller identity.CallerIdentity, date string) ([]Booking, error)
}

type service struct {
	repo    Repository
	seatDir SeatDirectory
	allocs  AllocationRegistry
	cache   cache.Service
	limits  ExpansionLimits
	ttl     time.Duration
	log     *logger.Logger
	now     func() time.Time
}

// NewService creates a new booking service instance. The cache service may
// be nil, in which case availability reads always hit the store.
func NewService(repo Repository, seatDir SeatDirectory, allocs AllocationRegistry, cacheService cache.Service, cfg *config.Config) Service {
	return &service{
		repo:    repo,
		seatDir: seatDir,
		allocs:  allocs,
		cache:   cacheService,
		limits: ExpansionLimits{
			WindowDays: cfg.Booking.RecurrenceWindowDays,
			MaxTuples:  cfg.Booking.MaxBatchSize,
		},
		ttl: cfg.Redis.AvailabilityTTL,
		log: logger.GetDefault(),
		now: time.Now,
	}
}

func (s *service) today() time.Time {
	return truncateToDay(s.now().UTC())
}

// GetAvailability computes per-seat slot availability for one date. Reads
// are not locked against concurrent bookings; a stale positive is resolved
// at commit time by the uniqueness constraint.
func (s *service) GetAvailability(ctx context.Context, date, seatType string) ([]SeatAvailability, error) {
	if date == "" {
		return nil, apperrors.Invalid("date parameter required")
	}
	day, err := parseDay(date)
	if err != nil {
		return nil, apperrors.Invalid("date must be YYYY-MM-DD")
	}
	if seatType != "" && !seats.SeatType(seatType).IsValid() {
		return nil, apperrors.Invalid("unknown seat type")
	}

	compute := func() (interface{}, error) {
		bookableSeats, err := s.seatDir.ListBookable(ctx, seatType)
		if err != nil {
			return nil, fmt.Errorf("failed to load seats: %w", err)
		}
		dayBookings, err := s.repo.ListActiveByDate(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to load bookings: %w", err)
		}
		approved, err := s.allocs.ListApprovedCovering(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to load allocations: %w", err)
		}
		return ComputeAvailability(bookableSeats, dayBookings, approved, day), nil
	}

	if s.cache == nil {
		result, err := compute()
		if err != nil {
			return nil, err
		}
		return result.([]SeatAvailability), nil
	}

	var result []SeatAvailability
	if err := s.cache.GetOrSet(ctx, availabilityCacheKey(day, seatType), s.ttl, compute, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateBookings validates, expands, and atomically commits a booking batch.
// All validation happens before the transaction opens; the storage layer
// reports conflicts as a single batch-level error.
func (s *service) CreateBookings(ctx context.Context, caller identity.CallerIdentity, req CreateBookingsRequest) ([]Booking, error) {
	if len(req.Bookings) == 0 {
		return nil, apperrors.Invalid("no bookings requested")
	}

	tuples, err := s.expandRequest(req)
	if err != nil {
		return nil, err
	}

	var groupID *uuid.UUID
	if req.Recurrence != nil || (req.GroupBookings && len(tuples) > 1) {
		id := uuid.New()
		groupID = &id
	}

	batch := make([]*Booking, 0, len(tuples))
	for _, t := range tuples {
		batch = append(batch, &Booking{
			UserID:      caller.ID,
			SeatID:      t.SeatID,
			BookingDate: t.Date,
			Slot:        t.Slot,
			Status:      StatusActive,
			GroupID:     groupID,
		})
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.log.LogBookingConflict(ctx, caller.ID.String(), len(batch))
		}
		return nil, err
	}

	s.invalidateAvailability(ctx, batch)

	groupStr := ""
	if groupID != nil {
		groupStr = groupID.String()
	}
	s.log.LogBookingBatchCreated(ctx, caller.ID.String(), len(batch), groupStr)

	created := make([]Booking, 0, len(batch))
	for _, b := range batch {
		created = append(created, *b)
	}
	return created, nil
}

// expandRequest turns the request into validated booking tuples. With a
// recurrence rule all base selections must share one start date; without
// one, entries may target arbitrary (future) dates.
func (s *service) expandRequest(req CreateBookingsRequest) ([]BookingTuple, error) {
	today := s.today()

	parsed := make([]BookingTuple, 0, len(req.Bookings))
	for _, b := range req.Bookings {
		seatID, err := uuid.Parse(b.SeatID)
		if err != nil {
			return nil, apperrors.Invalid("invalid seat id")
		}
		day, err := parseDay(b.BookingDate)
		if err != nil {
			return nil, apperrors.Invalid("booking_date must be YYYY-MM-DD")
		}
		slot := Slot(b.Slot)
		if !slot.IsValid() {
			return nil, apperrors.Invalid("unknown slot")
		}
		parsed = append(parsed, BookingTuple{SeatID: seatID, Date: day, Slot: slot})
	}

	if req.Recurrence == nil {
		if len(parsed) > s.limits.MaxTuples {
			return nil, apperrors.Invalid(fmt.Sprintf("at most %d bookings per request", s.limits.MaxTuples))
		}
		for _, t := range parsed {
			if t.Date.Before(today) {
				return nil, apperrors.Invalid("cannot book dates in the past")
			}
		}
		return parsed, nil
	}

	start := parsed[0].Date
	selections := make([]Selection, 0, len(parsed))
	for _, t := range parsed {
		if !t.Date.Equal(start) {
			return nil, apperrors.Invalid("recurring bookings must share a single start date")
		}
		selections = append(selections, Selection{SeatID: t.SeatID, Slot: t.Slot})
	}

	until, err := parseDay(req.Recurrence.Until)
	if err != nil {
		return nil, apperrors.Invalid("recurrence until must be YYYY-MM-DD")
	}
	rule := &RecurrenceRule{
		Type:  RecurrenceType(req.Recurrence.Type),
		Until: until,
	}

	return ExpandRecurrence(selections, start, rule, today, s.limits)
}

// CancelBooking soft-deletes a single booking. Owner or admin only.
func (s *service) CancelBooking(ctx context.Context, caller identity.CallerIdentity, bookingID uuid.UUID) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != caller.ID && !caller.IsAdmin() {
		return apperrors.Forbidden("booking belongs to another user")
	}
	if !booking.IsActive() {
		return apperrors.Conflict("booking is not active")
	}

	now := s.now().UTC()
	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled, &now); err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidateAvailability(ctx, []*Booking{booking})
	s.log.LogBookingCancelled(ctx, bookingID.String(), caller.ID.String())
	return nil
}

// CancelGroup cancels every ACTIVE booking sharing the group id in one
// atomic update. Every row must belong to the caller unless the caller is
// an admin.
func (s *service) CancelGroup(ctx context.Context, caller identity.CallerIdentity, groupID uuid.UUID) (int64, error) {
	members, err := s.repo.ListByGroup(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, apperrors.NotFound("booking group")
	}

	if !caller.IsAdmin() {
		for _, b := range members {
			if b.UserID != caller.ID {
				return 0, apperrors.Forbidden("group contains bookings of another user")
			}
		}
	}

	cancelled, err := s.repo.CancelGroup(ctx, groupID, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to cancel group: %w", err)
	}

	pointers := make([]*Booking, 0, len(members))
	for i := range members {
		pointers = append(pointers, &members[i])
	}
	s.invalidateAvailability(ctx, pointers)
	s.log.LogGroupCancelled(ctx, groupID.String(), caller.ID.String(), int(cancelled))
	return cancelled, nil
}

func (s *service) ListMyBookings(ctx context.Context, caller identity.CallerIdentity) ([]BookingView, error) {
	rows, err := s.repo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	views := make([]BookingView, 0, len(rows))
	for _, b := range rows {
		views = append(views, NewBookingView(b, today))
	}
	return views, nil
}

func (s *service) ListAllBookings(ctx context.Context, caller identity.CallerIdentity, from, to string) ([]Booking, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("admin access required")
	}

	var fromDay, toDay *time.Time
	if from != "" && to != "" {
		f, err := parseDay(from)
		if err != nil {
			return nil, apperrors.Invalid("start_date must be YYYY-MM-DD")
		}
		t, err := parseDay(to)
		if err != nil {
			return nil, apperrors.Invalid("end_date must be YYYY-MM-DD")
		}
		fromDay, toDay = &f, &t
	}

	return s.repo.ListActive(ctx, fromDay, toDay)
}

func (s *service) ListByDate(ctx context.Context, caller identity.CallerIdentity, date string) ([]Booking, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("admin access required")
	}
	day, err := parseDay(date)
	if err != nil {
		return nil, apperrors.Invalid("date must be YYYY-MM-DD")
	}
	return s.repo.ListActiveByDate(ctx, day)
}

// invalidateAvailability drops cached availability for every date touched by
// the batch. Best effort: cache errors are logged, never surfaced.
func (s *service) invalidateAvailability(ctx context.Context, batch []*Booking) {
	if s.cache == nil {
		return
	}

	seen := make(map[string]struct{})
	for _, b := range batch {
		key := b.BookingDate.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if err := s.cache.DeletePattern(ctx, "availability:"+key+":*"); err != nil {
			s.log.ErrorWithContext(ctx, "availability cache invalidation failed", err, map[string]interface{}{"date": key})
		}
	}
}

func availabilityCacheKey(day time.Time, seatType string) string {
	if seatType == "" {
		seatType = "ALL"
	}
	return "availability:" + day.Format("2006-01-02") + ":" + seatType
}

func parseDay(value string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return truncateToDay(day), nil
}
