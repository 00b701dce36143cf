package seats

import (
	"context"
	"errors"
	"testing"
	"time"

	"deskhive/internal/shared/apperrors"
	"deskhive/internal/shared/identity"
	"deskhive/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSeatRepo struct {
	seats map[uuid.UUID]*Seat
}

func newMockSeatRepo(existing ...*Seat) *mockSeatRepo {
	m := &mockSeatRepo{seats: make(map[uuid.UUID]*Seat)}
	for _, s := range existing {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		m.seats[s.ID] = s
	}
	return m
}

func (m *mockSeatRepo) Create(ctx context.Context, seat *Seat) error {
	for _, existing := range m.seats {
		if existing.SeatCode == seat.SeatCode {
			return apperrors.Conflict("seat code already exists")
		}
	}
	seat.ID = uuid.New()
	m.seats[seat.ID] = seat
	return nil
}

func (m *mockSeatRepo) GetByID(ctx context.Context, id uuid.UUID) (*Seat, error) {
	s, ok := m.seats[id]
	if !ok {
		return nil, apperrors.NotFound("seat")
	}
	copied := *s
	return &copied, nil
}

func (m *mockSeatRepo) List(ctx context.Context, seatType string) ([]Seat, error) {
	var result []Seat
	for _, s := range m.seats {
		if seatType == "" || string(s.Type) == seatType {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSeatRepo) ListBookable(ctx context.Context, seatType string) ([]Seat, error) {
	var result []Seat
	for _, s := range m.seats {
		if s.IsBlocked {
			continue
		}
		if seatType == "" || string(s.Type) == seatType {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSeatRepo) Update(ctx context.Context, seat *Seat) error {
	if _, ok := m.seats[seat.ID]; !ok {
		return apperrors.NotFound("seat")
	}
	copied := *seat
	m.seats[seat.ID] = &copied
	return nil
}

func (m *mockSeatRepo) UpdatePlacements(ctx context.Context, placements []SeatPlacement) error {
	for _, p := range placements {
		id, err := uuid.Parse(p.ID)
		if err != nil {
			return apperrors.Invalid("invalid seat id")
		}
		s, ok := m.seats[id]
		if !ok {
			return apperrors.NotFound("seat")
		}
		s.X = p.X
		s.Y = p.Y
	}
	return nil
}

func (m *mockSeatRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.seats[id]; !ok {
		return apperrors.NotFound("seat")
	}
	delete(m.seats, id)
	return nil
}

type mockUserRepo struct {
	users map[uuid.UUID]users.User
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NotFound("user")
	}
	return &u, nil
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]users.User, error) {
	result := make(map[uuid.UUID]users.User)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result[id] = u
		}
	}
	return result, nil
}

type mockBookingDirectory struct {
	active []AffectedBooking
}

func (m *mockBookingDirectory) ActiveBookingsFrom(ctx context.Context, seatID uuid.UUID, from time.Time) ([]AffectedBooking, error) {
	return m.active, nil
}

type fakeNotifier struct {
	notices []SeatBlockNotice
	err     error
}

func (f *fakeNotifier) NotifySeatBlocked(ctx context.Context, notice SeatBlockNotice) error {
	if f.err != nil {
		return f.err
	}
	f.notices = append(f.notices, notice)
	return nil
}

func adminCaller() identity.CallerIdentity {
	return identity.CallerIdentity{ID: uuid.New(), Role: identity.RoleAdmin, IsActive: true}
}

func employeeCaller() identity.CallerIdentity {
	return identity.CallerIdentity{ID: uuid.New(), Role: identity.RoleEmployee, IsActive: true}
}

func TestCreateSeat_AdminOnly(t *testing.T) {
	repo := newMockSeatRepo()
	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	_, err := svc.CreateSeat(context.Background(), employeeCaller(), CreateSeatRequest{SeatCode: "S1", Type: "SOLO"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	seat, err := svc.CreateSeat(context.Background(), adminCaller(), CreateSeatRequest{SeatCode: "S1", Type: "SOLO"})
	require.NoError(t, err)
	assert.Equal(t, "S1", seat.SeatCode)
}

func TestCreateSeat_DuplicateCode(t *testing.T) {
	repo := newMockSeatRepo(&Seat{SeatCode: "S1", Type: TypeSolo})
	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	_, err := svc.CreateSeat(context.Background(), adminCaller(), CreateSeatRequest{SeatCode: "S1", Type: "SOLO"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestSetBlocked_NotifiesAffectedBookings(t *testing.T) {
	user := users.User{ID: uuid.New(), Email: "employee@company.com", Name: "John Employee"}
	seat := &Seat{SeatCode: "S1", Type: TypeSolo}
	repo := newMockSeatRepo(seat)

	bookingID := uuid.New()
	directory := &mockBookingDirectory{active: []AffectedBooking{{
		BookingID:   bookingID,
		UserID:      user.ID,
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Slot:        "AM",
	}}}
	notifier := &fakeNotifier{}

	svc := NewService(repo, &mockUserRepo{users: map[uuid.UUID]users.User{user.ID: user}}, directory, notifier)

	updated, err := svc.SetBlocked(context.Background(), adminCaller(), seat.ID, BlockSeatRequest{
		IsBlocked:     true,
		BlockedReason: "Broken desk",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked)
	require.NotNil(t, updated.BlockedReason)
	assert.Equal(t, "Broken desk", *updated.BlockedReason)

	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, bookingID, notice.BookingID)
	assert.Equal(t, "employee@company.com", notice.RecipientEmail)
	assert.Equal(t, "S1", notice.SeatCode)
	assert.Equal(t, "Broken desk", notice.Reason)
}

func TestSetBlocked_NoNoticesWhenAlreadyBlocked(t *testing.T) {
	reason := "maintenance"
	seat := &Seat{SeatCode: "S1", Type: TypeSolo, IsBlocked: true, BlockedReason: &reason}
	repo := newMockSeatRepo(seat)
	notifier := &fakeNotifier{}

	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{active: []AffectedBooking{{BookingID: uuid.New()}}}, notifier)

	_, err := svc.SetBlocked(context.Background(), adminCaller(), seat.ID, BlockSeatRequest{
		IsBlocked:     true,
		BlockedReason: "still broken",
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.notices)
}

func TestSetBlocked_NotifierFailureDoesNotFailBlock(t *testing.T) {
	user := users.User{ID: uuid.New(), Email: "employee@company.com", Name: "John Employee"}
	seat := &Seat{SeatCode: "S1", Type: TypeSolo}
	repo := newMockSeatRepo(seat)

	directory := &mockBookingDirectory{active: []AffectedBooking{{
		BookingID: uuid.New(),
		UserID:    user.ID,
	}}}
	notifier := &fakeNotifier{err: errors.New("kafka unreachable")}

	svc := NewService(repo, &mockUserRepo{users: map[uuid.UUID]users.User{user.ID: user}}, directory, notifier)

	updated, err := svc.SetBlocked(context.Background(), adminCaller(), seat.ID, BlockSeatRequest{
		IsBlocked:     true,
		BlockedReason: "water damage",
	})
	require.NoError(t, err)
	assert.True(t, updated.IsBlocked)
}

func TestSetBlocked_Unblock(t *testing.T) {
	reason := "maintenance"
	seat := &Seat{SeatCode: "S1", Type: TypeSolo, IsBlocked: true, BlockedReason: &reason}
	repo := newMockSeatRepo(seat)

	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	updated, err := svc.SetBlocked(context.Background(), adminCaller(), seat.ID, BlockSeatRequest{IsBlocked: false})
	require.NoError(t, err)
	assert.False(t, updated.IsBlocked)
	assert.Nil(t, updated.BlockedReason)
}

func TestSetBlocked_EmployeeForbidden(t *testing.T) {
	seat := &Seat{SeatCode: "S1", Type: TypeSolo}
	repo := newMockSeatRepo(seat)
	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	_, err := svc.SetBlocked(context.Background(), employeeCaller(), seat.ID, BlockSeatRequest{IsBlocked: true, BlockedReason: "x"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestDeleteSeat_BlockedByFutureBookings(t *testing.T) {
	seat := &Seat{SeatCode: "S1", Type: TypeSolo}
	repo := newMockSeatRepo(seat)

	directory := &mockBookingDirectory{active: []AffectedBooking{{BookingID: uuid.New()}}}
	svc := NewService(repo, &mockUserRepo{}, directory, &fakeNotifier{})

	err := svc.DeleteSeat(context.Background(), adminCaller(), seat.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeleteSeat_NoFutureBookings(t *testing.T) {
	seat := &Seat{SeatCode: "S1", Type: TypeSolo}
	repo := newMockSeatRepo(seat)

	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	err := svc.DeleteSeat(context.Background(), adminCaller(), seat.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), seat.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListSeats_UnknownType(t *testing.T) {
	svc := NewService(newMockSeatRepo(), &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	_, err := svc.ListSeats(context.Background(), "STANDING")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateSeat_PartialUpdate(t *testing.T) {
	seat := &Seat{SeatCode: "S1", Type: TypeSolo, HasMonitor: false}
	repo := newMockSeatRepo(seat)
	svc := NewService(repo, &mockUserRepo{}, &mockBookingDirectory{}, &fakeNotifier{})

	hasMonitor := true
	updated, err := svc.UpdateSeat(context.Background(), adminCaller(), seat.ID, UpdateSeatRequest{HasMonitor: &hasMonitor})
	require.NoError(t, err)
	assert.True(t, updated.HasMonitor)
	assert.Equal(t, "S1", updated.SeatCode)
}
