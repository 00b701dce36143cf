package seats

import (
	"context"
	"errors"

	"deskhive/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, seat *Seat) error
	GetByID(ctx context.Context, id uuid.UUID) (*Seat, error)
	List(ctx context.Context, seatType string) ([]Seat, error)
	ListBookable(ctx context.Context, seatType string) ([]Seat, error)
	Update(ctx context.Context, seat *Seat) error
	UpdatePlacements(ctx context.Context, placements []SeatPlacement) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, seat *Seat) error {
	err := r.db.WithContext(ctx).Create(seat).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("seat code already exists")
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	var seat Seat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("seat")
		}
		return nil, err
	}
	return &seat, nil
}

func (r *repository) List(ctx context.Context, seatType string) ([]Seat, error) {
	var result []Seat
	query := r.db.WithContext(ctx).Model(&Seat{})
	if seatType != "" {
		query = query.Where("type = ?", seatType)
	}
	err := query.Order("seat_code ASC").Find(&result).Error
	return result, err
}

// ListBookable returns non-blocked seats, optionally filtered by type. This
// is the seat universe the availability calculator starts from.
func (r *repository) ListBookable(ctx context.Context, seatType string) ([]Seat, error) {
	var result []Seat
	query := r.db.WithContext(ctx).Where("is_blocked = ?", false)
	if seatType != "" {
		query = query.Where("type = ?", seatType)
	}
	err := query.Order("seat_code ASC").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, seat *Seat) error {
	err := r.db.WithContext(ctx).Save(seat).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict("seat code already exists")
	}
	return err
}

// UpdatePlacements applies a batch of floor-plan coordinate updates in one
// transaction so a half-applied drag-and-drop session never persists.
func (r *repository) UpdatePlacements(ctx context.Context, placements []SeatPlacement) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range placements {
			seatID, err := uuid.Parse(p.ID)
			if err != nil {
				return apperrors.Invalid("invalid seat id in batch")
			}

			result := tx.Model(&Seat{}).
				Where("id = ?", seatID).
				Updates(map[string]interface{}{"x": p.X, "y": p.Y})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return apperrors.NotFound("seat")
			}
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Seat{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("seat")
	}
	return nil
}
