package services

import (
	"testing"
	"time"

	"property-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:engine_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open test db")
	require.NoError(t, db.AutoMigrate(
		&models.Property{},
		&models.PropertySetting{},
		&models.Room{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.Bill{},
	), "migrate test schema")
	return db
}

func seedProperty(t *testing.T, db *gorm.DB) models.Property {
	t.Helper()
	property := models.Property{Name: "Test Guesthouse"}
	require.NoError(t, db.Create(&property).Error)
	return property
}

func seedRoom(t *testing.T, db *gorm.DB, propertyID uint, number string, category models.RoomCategory, totalBeds int, price int64) models.Room {
	t.Helper()
	room := models.Room{
		PropertyID: propertyID,
		RoomNumber: number,
		Category:   category,
		TotalBeds:  totalBeds,
		Price:      decimal.NewFromInt(price),
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func mustReserve(t *testing.T, svc *ReservationService, input CreateReservationInput) *models.Reservation {
	t.Helper()
	reservation, err := svc.CreateReservation(input)
	require.NoError(t, err)
	return reservation
}

// availabilityFor digs the row for one room out of a calculator result.
func availabilityFor(t *testing.T, rooms []RoomAvailability, roomID uint) RoomAvailability {
	t.Helper()
	for _, ra := range rooms {
		if ra.Room.ID == roomID {
			return ra
		}
	}
	t.Fatalf("room %d missing from availability result", roomID)
	return RoomAvailability{}
}
