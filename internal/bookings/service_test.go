package bookings

import (
	"context"
	"testing"
	"time"

	"deskhive/internal/allocations"
	"deskhive/internal/seats"
	"deskhive/internal/shared/apperrors"
	"deskhive/internal/shared/identity"
	"deskhive/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository is an in-memory Repository with the same conflict semantics
// as the Postgres implementation.
type mockRepository struct {
	bookings map[uuid.UUID]*Booking
	seats    map[uuid.UUID]struct{}
}

func newMockRepository(seatIDs ...uuid.UUID) *mockRepository {
	m := &mockRepository{
		bookings: make(map[uuid.UUID]*Booking),
		seats:    make(map[uuid.UUID]struct{}),
	}
	for _, id := range seatIDs {
		m.seats[id] = struct{}{}
	}
	return m
}

func (m *mockRepository) CreateBatch(ctx context.Context, batch []*Booking) error {
	if len(batch) == 0 {
		return apperrors.Invalid("empty booking batch")
	}

	for _, b := range batch {
		if _, ok := m.seats[b.SeatID]; !ok {
			return apperrors.NotFound("seat")
		}
	}

	var existing []Booking
	for _, b := range m.bookings {
		if b.IsActive() {
			existing = append(existing, *b)
		}
	}
	if hasSlotConflict(batch, existing) {
		return apperrors.Conflict("one or more seats are already booked for the selected slot")
	}

	for _, b := range batch {
		b.ID = uuid.New()
		m.bookings[b.ID] = b
	}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.NotFound("booking")
	}
	copied := *b
	return &copied, nil
}

func (m *mockRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var result []Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockRepository) ListActive(ctx context.Context, from, to *time.Time) ([]Booking, error) {
	var result []Booking
	for _, b := range m.bookings {
		if !b.IsActive() {
			continue
		}
		if from != nil && to != nil && (b.BookingDate.Before(*from) || b.BookingDate.After(*to)) {
			continue
		}
		result = append(result, *b)
	}
	return result, nil
}

func (m *mockRepository) ListActiveByDate(ctx context.Context, date time.Time) ([]Booking, error) {
	var result []Booking
	for _, b := range m.bookings {
		if b.IsActive() && b.BookingDate.Equal(date) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockRepository) ListActiveBySeatFrom(ctx context.Context, seatID uuid.UUID, from time.Time) ([]Booking, error) {
	var result []Booking
	for _, b := range m.bookings {
		if b.IsActive() && b.SeatID == seatID && !b.BookingDate.Before(from) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]Booking, error) {
	var result []Booking
	for _, b := range m.bookings {
		if b.GroupID != nil && *b.GroupID == groupID {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, cancelledAt *time.Time) error {
	b, ok := m.bookings[id]
	if !ok {
		return apperrors.NotFound("booking")
	}
	b.Status = status
	b.CancelledAt = cancelledAt
	return nil
}

func (m *mockRepository) CancelGroup(ctx context.Context, groupID uuid.UUID, cancelledAt time.Time) (int64, error) {
	var cancelled int64
	for _, b := range m.bookings {
		if b.GroupID != nil && *b.GroupID == groupID && b.IsActive() {
			b.Status = StatusCancelled
			b.CancelledAt = &cancelledAt
			cancelled++
		}
	}
	return cancelled, nil
}

type mockSeatDirectory struct {
	seats []seats.Seat
}

func (m *mockSeatDirectory) ListBookable(ctx context.Context, seatType string) ([]seats.Seat, error) {
	return m.seats, nil
}

type mockAllocationRegistry struct {
	approved []allocations.LongTermAllocation
}

func (m *mockAllocationRegistry) ListApprovedCovering(ctx context.Context, dayArg time.Time) ([]allocations.LongTermAllocation, error) {
	return m.approved, nil
}

func newTestService(repo Repository, seatDir SeatDirectory, allocs AllocationRegistry, today time.Time) *service {
	return &service{
		repo:    repo,
		seatDir: seatDir,
		allocs:  allocs,
		limits:  ExpansionLimits{WindowDays: 90, MaxTuples: 100},
		ttl:     30 * time.Second,
		log:     logger.GetDefault(),
		now:     func() time.Time { return today },
	}
}

func employee() identity.CallerIdentity {
	return identity.CallerIdentity{ID: uuid.New(), Email: "employee@company.com", Role: identity.RoleEmployee, IsActive: true}
}

func admin() identity.CallerIdentity {
	return identity.CallerIdentity{ID: uuid.New(), Email: "admin@company.com", Role: identity.RoleAdmin, IsActive: true}
}

func TestCreateBookings_SingleBookingNoGroup(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))
	caller := employee()

	created, err := svc.CreateBookings(context.Background(), caller, CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
	})

	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Nil(t, created[0].GroupID)
	assert.Equal(t, caller.ID, created[0].UserID)
	assert.Equal(t, StatusActive, created[0].Status)
}

func TestCreateBookings_GroupIntentSharesGroupID(t *testing.T) {
	seatA := uuid.New()
	seatB := uuid.New()
	repo := newMockRepository(seatA, seatB)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	created, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatA.String(), BookingDate: "2026-09-08", Slot: "FULL_DAY"},
			{SeatID: seatB.String(), BookingDate: "2026-09-08", Slot: "FULL_DAY"},
		},
		GroupBookings: true,
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	require.NotNil(t, created[0].GroupID)
	require.NotNil(t, created[1].GroupID)
	assert.Equal(t, *created[0].GroupID, *created[1].GroupID)
}

func TestCreateBookings_MultipleWithoutGroupIntent(t *testing.T) {
	seatA := uuid.New()
	seatB := uuid.New()
	repo := newMockRepository(seatA, seatB)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	created, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatA.String(), BookingDate: "2026-09-08", Slot: "AM"},
			{SeatID: seatB.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
	})

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Nil(t, created[0].GroupID)
	assert.Nil(t, created[1].GroupID)
}

func TestCreateBookings_RecurrenceAlwaysGrouped(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	created, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-07", Slot: "AM"},
		},
		Recurrence: &RecurrenceRequest{Type: "WEEKLY", Until: "2026-09-21"},
	})

	require.NoError(t, err)
	require.Len(t, created, 3)
	for _, b := range created {
		require.NotNil(t, b.GroupID)
		assert.Equal(t, *created[0].GroupID, *b.GroupID)
	}
}

func TestCreateBookings_ConflictRejectsWholeBatch(t *testing.T) {
	seatA := uuid.New()
	seatB := uuid.New()
	repo := newMockRepository(seatA, seatB)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	_, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatA.String(), BookingDate: "2026-09-08", Slot: "FULL_DAY"},
		},
	})
	require.NoError(t, err)

	// Second request: one free seat, one taken. Nothing is created.
	_, err = svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatB.String(), BookingDate: "2026-09-08", Slot: "AM"},
			{SeatID: seatA.String(), BookingDate: "2026-09-08", Slot: "PM"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	rows, err := repo.ListActiveBySeatFrom(context.Background(), seatB, day(2026, 9, 8))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCreateBookings_PastDateRejected(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	_, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-01", Slot: "AM"},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateBookings_RecurrenceRequiresSingleStartDate(t *testing.T) {
	seatA := uuid.New()
	seatB := uuid.New()
	repo := newMockRepository(seatA, seatB)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	_, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatA.String(), BookingDate: "2026-09-07", Slot: "AM"},
			{SeatID: seatB.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
		Recurrence: &RecurrenceRequest{Type: "DAILY", Until: "2026-09-11"},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCancelBooking_OwnerCancels(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))
	caller := employee()

	created, err := svc.CreateBookings(context.Background(), caller, CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
	})
	require.NoError(t, err)

	err = svc.CancelBooking(context.Background(), caller, created[0].ID)
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)
}

func TestCancelBooking_OtherUserForbidden(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	created, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
	})
	require.NoError(t, err)

	err = svc.CancelBooking(context.Background(), employee(), created[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCancelBooking_AdminCancelsAnyBooking(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	created, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
	})
	require.NoError(t, err)

	err = svc.CancelBooking(context.Background(), admin(), created[0].ID)
	assert.NoError(t, err)
}

func TestCancelBooking_AlreadyCancelledConflicts(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))
	caller := employee()

	created, err := svc.CreateBookings(context.Background(), caller, CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-08", Slot: "AM"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(context.Background(), caller, created[0].ID))
	err = svc.CancelBooking(context.Background(), caller, created[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCancelBooking_UnknownID(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	err := svc.CancelBooking(context.Background(), employee(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCancelGroup_CancelsAllActiveMembers(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))
	caller := employee()

	created, err := svc.CreateBookings(context.Background(), caller, CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-07", Slot: "AM"},
		},
		Recurrence: &RecurrenceRequest{Type: "WEEKLY", Until: "2026-09-28"},
	})
	require.NoError(t, err)
	require.Len(t, created, 4)

	cancelled, err := svc.CancelGroup(context.Background(), caller, *created[0].GroupID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cancelled)
}

func TestCancelGroup_ForeignGroupForbidden(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	created, err := svc.CreateBookings(context.Background(), employee(), CreateBookingsRequest{
		Bookings: []BookingSelection{
			{SeatID: seatID.String(), BookingDate: "2026-09-07", Slot: "AM"},
		},
		Recurrence: &RecurrenceRequest{Type: "WEEKLY", Until: "2026-09-14"},
	})
	require.NoError(t, err)

	_, err = svc.CancelGroup(context.Background(), employee(), *created[0].GroupID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	cancelled, err := svc.CancelGroup(context.Background(), admin(), *created[0].GroupID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cancelled)
}

func TestCancelGroup_UnknownGroup(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	_, err := svc.CancelGroup(context.Background(), employee(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetAvailability_ExcludesBookedAndAllocatedSeats(t *testing.T) {
	booked := testSeat("S1")
	allocated := testSeat("S2")
	free := testSeat("S3")
	date := day(2026, 9, 8)

	repo := newMockRepository(booked.ID, allocated.ID, free.ID)
	repo.bookings[uuid.New()] = &Booking{
		SeatID:      booked.ID,
		BookingDate: date,
		Slot:        SlotFullDay,
		Status:      StatusActive,
	}

	seatDir := &mockSeatDirectory{seats: []seats.Seat{booked, allocated, free}}
	allocs := &mockAllocationRegistry{approved: []allocations.LongTermAllocation{{
		SeatID:    allocated.ID,
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 30),
		Status:    allocations.StatusApproved,
	}}}

	svc := newTestService(repo, seatDir, allocs, day(2026, 9, 7))

	result, err := svc.GetAvailability(context.Background(), "2026-09-08", "")
	require.NoError(t, err)
	require.Len(t, result, 2)

	bySeat := make(map[string]SeatAvailability)
	for _, r := range result {
		bySeat[r.SeatCode] = r
	}
	assert.False(t, bySeat["S1"].Availability.FullDay)
	assert.True(t, bySeat["S3"].Availability.FullDay)
	_, allocatedPresent := bySeat["S2"]
	assert.False(t, allocatedPresent)
}

func TestGetAvailability_InvalidInput(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	_, err := svc.GetAvailability(context.Background(), "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.GetAvailability(context.Background(), "08-09-2026", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.GetAvailability(context.Background(), "2026-09-08", "STANDING")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListAllBookings_AdminOnly(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	_, err := svc.ListAllBookings(context.Background(), employee(), "", "")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.ListAllBookings(context.Background(), admin(), "", "")
	assert.NoError(t, err)
}

func TestListMyBookings_DisplayStatus(t *testing.T) {
	seatID := uuid.New()
	repo := newMockRepository(seatID)
	caller := employee()

	past := &Booking{UserID: caller.ID, SeatID: seatID, BookingDate: day(2026, 9, 1), Slot: SlotAM, Status: StatusActive}
	upcoming := &Booking{UserID: caller.ID, SeatID: seatID, BookingDate: day(2026, 9, 10), Slot: SlotAM, Status: StatusActive}
	require.NoError(t, repo.CreateBatch(context.Background(), []*Booking{past, upcoming}))

	svc := newTestService(repo, &mockSeatDirectory{}, &mockAllocationRegistry{}, day(2026, 9, 7))

	views, err := svc.ListMyBookings(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, views, 2)

	byDate := make(map[string]BookingView)
	for _, v := range views {
		byDate[v.BookingDate.Format("2006-01-02")] = v
	}
	assert.Equal(t, DisplayCompleted, byDate["2026-09-01"].DisplayStatus)
	assert.Equal(t, DisplayConfirmed, byDate["2026-09-10"].DisplayStatus)
}
