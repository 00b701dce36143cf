package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"deskhive/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Atomic batch creation; the heart of the transaction coordinator.
	CreateBatch(ctx context.Context, batch []*Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	ListActive(ctx context.Context, from, to *time.Time) ([]Booking, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]Booking, error)
	ListActiveBySeatFrom(ctx context.Context, seatID uuid.UUID, from time.Time) ([]Booking, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Booking, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error
	CancelGroup(ctx context.Context, groupID uuid.UUID, cancelledAt time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateBatch inserts the whole batch in one transaction, or nothing.
//
// Two mechanisms cooperate to prevent double booking under concurrency:
// the affected seat rows are locked FOR UPDATE (in sorted order, so two
// overlapping batches cannot deadlock), which serializes the FULL_DAY vs
// half-day overlap check performed here; and the partial unique index on
// (seat_id, booking_date, slot) for ACTIVE rows backstops exact-duplicate
// races at commit time. Either violation surfaces as a single batch-level
// Conflict.
func (r *repository) CreateBatch(ctx context.Context, batch []*Booking) error {
	if len(batch) == 0 {
		return apperrors.Invalid("empty booking batch")
	}

	seatIDs := distinctSeatIDs(batch)
	dates := distinctDates(batch)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lockedSeats []seatRow
		if err := seatLockQuery(tx, seatIDs).Find(&lockedSeats).Error; err != nil {
			return fmt.Errorf("failed to lock seats: %w", err)
		}
		if len(lockedSeats) != len(seatIDs) {
			return apperrors.NotFound("seat")
		}

		var existing []Booking
		err := tx.Where("seat_id IN ?", seatIDs).
			Where("booking_date IN ?", dates).
			Where("status = ?", StatusActive).
			Find(&existing).Error
		if err != nil {
			return fmt.Errorf("failed to load existing bookings: %w", err)
		}

		if hasSlotConflict(batch, existing) {
			return apperrors.Conflict("one or more seats are already booked for the selected slot")
		}

		if err := tx.Create(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Conflict("one or more seats are already booked for the selected slot")
			}
			return fmt.Errorf("failed to create bookings: %w", err)
		}

		return nil
	})

	return err
}

type seatRow struct {
	ID uuid.UUID `gorm:"column:id"`
}

// seatLockQuery selects the seat rows FOR UPDATE, in sorted order. Holding
// these locks for the duration of the transaction is what serializes the
// FULL_DAY vs half-day overlap check against concurrent batches.
func seatLockQuery(tx *gorm.DB, seatIDs []uuid.UUID) *gorm.DB {
	return tx.Table("seats").
		Select("id").
		Where("id IN ?", seatIDs).
		Order("id").
		Clauses(clause.Locking{Strength: "UPDATE"})
}

// hasSlotConflict checks every new row against existing ACTIVE rows and
// against the rest of its own batch.
func hasSlotConflict(batch []*Booking, existing []Booking) bool {
	type seatDate struct {
		seat uuid.UUID
		date string
	}

	taken := make(map[seatDate][]Slot)
	for _, b := range existing {
		key := seatDate{seat: b.SeatID, date: b.BookingDate.Format("2006-01-02")}
		taken[key] = append(taken[key], b.Slot)
	}

	for _, b := range batch {
		key := seatDate{seat: b.SeatID, date: b.BookingDate.Format("2006-01-02")}
		for _, slot := range taken[key] {
			if b.Slot.Overlaps(slot) {
				return true
			}
		}
		taken[key] = append(taken[key], b.Slot)
	}

	return false
}

func distinctSeatIDs(batch []*Booking) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(batch))
	ids := make([]uuid.UUID, 0, len(batch))
	for _, b := range batch {
		if _, ok := seen[b.SeatID]; ok {
			continue
		}
		seen[b.SeatID] = struct{}{}
		ids = append(ids, b.SeatID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

func distinctDates(batch []*Booking) []time.Time {
	seen := make(map[string]struct{}, len(batch))
	dates := make([]time.Time, 0, len(batch))
	for _, b := range batch {
		key := b.BookingDate.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, b.BookingDate)
	}
	return dates
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("booking")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date DESC, created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListActive(ctx context.Context, from, to *time.Time) ([]Booking, error) {
	query := r.db.WithContext(ctx).Where("status = ?", StatusActive)
	if from != nil && to != nil {
		query = query.Where("booking_date >= ? AND booking_date <= ?", *from, *to)
	}

	var result []Booking
	err := query.Order("booking_date ASC").Find(&result).Error
	return result, err
}

func (r *repository) ListActiveByDate(ctx context.Context, date time.Time) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("booking_date = ?", date).
		Where("status = ?", StatusActive).
		Find(&result).Error
	return result, err
}

func (r *repository) ListActiveBySeatFrom(ctx context.Context, seatID uuid.UUID, from time.Time) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("seat_id = ?", seatID).
		Where("booking_date >= ?", from).
		Where("status = ?", StatusActive).
		Order("booking_date ASC").
		Find(&result).Error
	return result, err
}

func (r *repository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Find(&result).Error
	return result, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// CancelGroup flips every ACTIVE row in the group in one statement, so a
// group cancellation can never land partially.
func (r *repository) CancelGroup(ctx context.Context, groupID uuid.UUID, cancelledAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("group_id = ?", groupID).
		Where("status = ?", StatusActive).
		Updates(map[string]interface{}{
			"status":       StatusCancelled,
			"cancelled_at": cancelledAt,
			"updated_at":   cancelledAt,
		})
	return result.RowsAffected, result.Error
}
