package allocations

import (
	"context"
	"fmt"
	"time"

	"deskhive/internal/shared/apperrors"
	"deskhive/internal/shared/identity"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
)

// SeatChecker is the slice of the seat directory the allocation registry
// needs (declared here to avoid a circular dependency).
type SeatChecker interface {
	SeatExists(ctx context.Context, seatID uuid.UUID) (bool, error)
}

// Service interface defines the contract for allocation registry business logic
type Service interface {
	RequestAllocation(ctx context.Context, caller identity.CallerIdentity, req CreateAllocationRequest) (*LongTermAllocation, error)
	ListAllocations(ctx context.Context, caller identity.CallerIdentity) ([]LongTermAllocation, error)
	Approve(ctx context.Context, caller identity.CallerIdentity, allocationID uuid.UUID) (*LongTermAllocation, error)
	Reject(ctx context.Context, caller identity.CallerIdentity, allocationID uuid.UUID) (*LongTermAllocation, error)
}

type service struct {
	repo  Repository
	seats SeatChecker
	log   *logger.Logger
}

// NewService creates a new allocation registry service instance
func NewService(repo Repository, seats SeatChecker) Service {
	return &service{
		repo:  repo,
		seats: seats,
		log:   logger.GetDefault(),
	}
}

func (s *service) RequestAllocation(ctx context.Context, caller identity.CallerIdentity, req CreateAllocationRequest) (*LongTermAllocation, error) {
	seatID, err := uuid.Parse(req.SeatID)
	if err != nil {
		return nil, apperrors.Invalid("invalid seat id")
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, apperrors.Invalid("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, apperrors.Invalid("end_date must be YYYY-MM-DD")
	}

	if end.Before(start) {
		return nil, apperrors.Invalid("end_date precedes start_date")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if end.Before(today) {
		return nil, apperrors.Invalid("allocation range is entirely in the past")
	}

	exists, err := s.seats.SeatExists(ctx, seatID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify seat: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFound("seat")
	}

	allocation := &LongTermAllocation{
		SeatID:    seatID,
		UserID:    caller.ID,
		StartDate: start,
		EndDate:   end,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, allocation); err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}
	return allocation, nil
}

// ListAllocations returns all allocations for admins and only the caller's
// own requests for employees.
func (s *service) ListAllocations(ctx context.Context, caller identity.CallerIdentity) ([]LongTermAllocation, error) {
	if caller.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, caller.ID)
}

func (s *service) Approve(ctx context.Context, caller identity.CallerIdentity, allocationID uuid.UUID) (*LongTermAllocation, error) {
	return s.decide(ctx, caller, allocationID, StatusApproved)
}

func (s *service) Reject(ctx context.Context, caller identity.CallerIdentity, allocationID uuid.UUID) (*LongTermAllocation, error) {
	return s.decide(ctx, caller, allocationID, StatusRejected)
}

func (s *service) decide(ctx context.Context, caller identity.CallerIdentity, allocationID uuid.UUID, status Status) (*LongTermAllocation, error) {
	if !caller.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can decide allocations")
	}

	allocation, err := s.repo.GetByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}

	if allocation.IsDecided() {
		return nil, apperrors.Conflict("allocation has already been decided")
	}

	if status == StatusApproved {
		overlapping, err := s.repo.CountApprovedOverlapping(ctx, allocation.SeatID, allocation.StartDate, allocation.EndDate, allocation.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check overlapping allocations: %w", err)
		}
		if overlapping > 0 {
			return nil, apperrors.Conflict("seat already has an approved allocation overlapping this range")
		}
	}

	now := time.Now().UTC()
	decidedBy := caller.ID
	allocation.Status = status
	allocation.DecidedBy = &decidedBy
	allocation.DecidedAt = &now

	if err := s.repo.Update(ctx, allocation); err != nil {
		return nil, fmt.Errorf("failed to update allocation: %w", err)
	}

	s.log.LogAllocationDecided(ctx, allocation.ID.String(), caller.ID.String(), status.String())
	return allocation, nil
}
