package database

import (
	"deskhive/internal/allocations"
	"deskhive/internal/bookings"
	"deskhive/internal/seats"
	"deskhive/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&seats.Seat{},
		&allocations.LongTermAllocation{},
		&bookings.Booking{},
	)
}
