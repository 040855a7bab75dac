package db

import (
	"github.com/tripeasy-dev/tripeasy/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Trip{},
		&models.TripMember{},
		&models.TripInvite{},
		&models.TripDay{},
		&models.Activity{},
		&models.Lodging{},
		&models.TransportSegment{},
		&models.PackingItem{},
		&models.TripTask{},
		&models.Expense{},
		&models.TripNote{},
		&models.TravelCompanion{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	// Only one pending invite per (trip, email). The existence check in the
	// invite handler gives a friendly 409; this index closes the race between
	// two concurrent creates.
	return DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_trip_invites_pending
		 ON trip_invites (trip_id, email)
		 WHERE status = 'pending' AND deleted_at IS NULL`,
	).Error
}
