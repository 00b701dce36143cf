package bookings

import (
	"fmt"
	"time"

	"deskhive/internal/shared/apperrors"

	"github.com/google/uuid"
)

type RecurrenceType string

const (
	RecurrenceDaily  RecurrenceType = "DAILY"
	RecurrenceWeekly RecurrenceType = "WEEKLY"
)

func (t RecurrenceType) IsValid() bool {
	switch t {
	case RecurrenceDaily, RecurrenceWeekly:
		return true
	}
	return false
}

// RecurrenceRule is the parsed repeat pattern: DAILY advances one weekday at
// a time, WEEKLY advances seven days at a time, both through Until inclusive.
type RecurrenceRule struct {
	Type  RecurrenceType
	Until time.Time
}

// Selection is one (seat, slot) choice anchored to the request's start date.
type Selection struct {
	SeatID uuid.UUID
	Slot   Slot
}

// BookingTuple is a fully-resolved unit of work for the transaction
// coordinator.
type BookingTuple struct {
	SeatID uuid.UUID
	Date   time.Time
	Slot   Slot
}

// ExpansionLimits bounds recurrence expansion. WindowDays caps how far Until
// may sit past the start date; MaxTuples caps the expanded batch size.
type ExpansionLimits struct {
	WindowDays int
	MaxTuples  int
}

// ExpandRecurrence turns the base selections plus an optional rule into the
// ordered tuple list to book. The expansion is deterministic: identical
// inputs always yield the same dates in the same order (date ascending,
// selection order within a date), which makes retries idempotent from the
// caller's point of view.
//
// Every produced date is validated against today: past dates reject the whole
// request before any storage work happens.
func ExpandRecurrence(selections []Selection, start time.Time, rule *RecurrenceRule, today time.Time, limits ExpansionLimits) ([]BookingTuple, error) {
	if len(selections) == 0 {
		return nil, apperrors.Invalid("no bookings requested")
	}

	start = truncateToDay(start)
	today = truncateToDay(today)

	dates := []time.Time{start}

	if rule != nil {
		if !rule.Type.IsValid() {
			return nil, apperrors.Invalid("unknown recurrence type")
		}

		until := truncateToDay(rule.Until)
		if until.Before(start) {
			return nil, apperrors.Invalid("recurrence end precedes start date")
		}
		window := start.AddDate(0, 0, limits.WindowDays)
		if until.After(window) {
			return nil, apperrors.Invalid(fmt.Sprintf("recurrence window exceeds %d days", limits.WindowDays))
		}

		switch rule.Type {
		case RecurrenceDaily:
			for day := start.AddDate(0, 0, 1); !day.After(until); day = day.AddDate(0, 0, 1) {
				if isWeekend(day) {
					continue
				}
				dates = append(dates, day)
			}
		case RecurrenceWeekly:
			for day := start.AddDate(0, 0, 7); !day.After(until); day = day.AddDate(0, 0, 7) {
				dates = append(dates, day)
			}
		}
	}

	total := len(dates) * len(selections)
	if total > limits.MaxTuples {
		return nil, apperrors.Invalid(fmt.Sprintf("expansion produces %d bookings, exceeding the limit of %d", total, limits.MaxTuples))
	}

	tuples := make([]BookingTuple, 0, total)
	for _, day := range dates {
		if day.Before(today) {
			return nil, apperrors.Invalid("cannot book dates in the past")
		}
		for _, sel := range selections {
			tuples = append(tuples, BookingTuple{
				SeatID: sel.SeatID,
				Date:   day,
				Slot:   sel.Slot,
			})
		}
	}

	return tuples, nil
}

func isWeekend(day time.Time) bool {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
