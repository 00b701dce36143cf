package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the constraints the booking core relies on for
// correctness under concurrent requests. AutoMigrate cannot express partial
// indexes, so these run as raw SQL after the schema migration.
func MigrateConstraints(db *gorm.DB) error {
	// Exactly one ACTIVE booking may hold a given (seat, date, slot). Cancelled
	// rows are kept for history and must not participate in the constraint.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_seat_date_slot
		ON bookings (seat_id, booking_date, slot)
		WHERE status = 'ACTIVE';
	`).Error
	if err != nil {
		return err
	}

	// Availability reads scan one day's ACTIVE bookings.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_date_status
		ON bookings (booking_date, status);
	`).Error
	if err != nil {
		return err
	}

	// Group cancellation resolves all rows sharing a group id.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_group_id
		ON bookings (group_id)
		WHERE group_id IS NOT NULL;
	`).Error
	if err != nil {
		return err
	}

	// Allocation containment queries filter by seat and date range.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_allocations_status_dates
		ON long_term_allocations (status, start_date, end_date);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
