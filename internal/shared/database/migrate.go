package database

import (
	"tiketbus/internal/bookings"
	"tiketbus/internal/buses"
	"tiketbus/internal/payments"
	"tiketbus/internal/routes"
	"tiketbus/internal/schedules"
	"tiketbus/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&buses.Bus{},
		&buses.Seat{},
		&routes.Route{},
		&schedules.Schedule{},
		&bookings.Booking{},
		&payments.Payment{},
	)
}
