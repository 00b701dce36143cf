package allocations

import (
	"context"
	"errors"
	"time"

	"deskhive/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, allocation *LongTermAllocation) error
	GetByID(ctx context.Context, id uuid.UUID) (*LongTermAllocation, error)
	ListAll(ctx context.Context) ([]LongTermAllocation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]LongTermAllocation, error)
	ListApprovedCovering(ctx context.Context, day time.Time) ([]LongTermAllocation, error)
	CountApprovedOverlapping(ctx context.Context, seatID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error)
	Update(ctx context.Context, allocation *LongTermAllocation) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, allocation *LongTermAllocation) error {
	return r.db.WithContext(ctx).Create(allocation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*LongTermAllocation, error) {
	var allocation LongTermAllocation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&allocation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("allocation")
		}
		return nil, err
	}
	return &allocation, nil
}

func (r *repository) ListAll(ctx context.Context) ([]LongTermAllocation, error) {
	var result []LongTermAllocation
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&result).Error
	return result, err
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]LongTermAllocation, error) {
	var result []LongTermAllocation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

// ListApprovedCovering returns APPROVED allocations whose inclusive range
// contains the given day. The availability calculator removes these seats
// from the bookable set entirely.
func (r *repository) ListApprovedCovering(ctx context.Context, day time.Time) ([]LongTermAllocation, error) {
	var result []LongTermAllocation
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Find(&result).Error
	return result, err
}

func (r *repository) CountApprovedOverlapping(ctx context.Context, seatID uuid.UUID, start, end time.Time, excludeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LongTermAllocation{}).
		Where("seat_id = ?", seatID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", end, start).
		Where("id <> ?", excludeID).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, allocation *LongTermAllocation) error {
	return r.db.WithContext(ctx).Save(allocation).Error
}
