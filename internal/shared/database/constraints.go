package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds indexes the seat overlap and availability checks
// depend on. AutoMigrate cannot express the GIN index on the seat array.
func MigrateConstraints(db *gorm.DB) error {
	// Overlap checks run seat_ids && ARRAY[...] per schedule.
	err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_seat_ids
		ON bookings USING GIN (seat_ids);
	`).Error
	if err != nil {
		return err
	}

	// Availability and booked-seat queries filter on schedule and status.
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_schedule_status
		ON bookings (schedule_id, status);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
