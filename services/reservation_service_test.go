package services

import (
	"testing"
	"time"

	"property-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationDoubleBookRejected(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	room := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1200)

	svc := NewReservationService(db, nil)

	mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 13),
		GuestName:  "Ann",
	})

	// overlapping night -> rejected
	_, err := svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 12),
		CheckOut:   date(2026, time.March, 15),
		GuestName:  "Bob",
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// same-day turnover -> accepted
	_, err = svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 13),
		CheckOut:   date(2026, time.March, 16),
		GuestName:  "Bob",
	})
	assert.NoError(t, err)
}

func TestCreateReservationDormitoryBedLimit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	dorm := seedRoom(t, db, property.ID, "D1", models.RoomCategoryDormitory, 10, 350)

	svc := NewReservationService(db, nil)

	mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     dorm.ID,
		BedsBooked: 4,
		CheckIn:    date(2026, time.May, 1),
		CheckOut:   date(2026, time.May, 3),
		GuestName:  "Bea",
	})
	mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     dorm.ID,
		BedsBooked: 5,
		CheckIn:    date(2026, time.May, 1),
		CheckOut:   date(2026, time.May, 2),
		GuestName:  "Cal",
	})

	// one bed left on May 1: asking for two must fail
	_, err := svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     dorm.ID,
		BedsBooked: 2,
		CheckIn:    date(2026, time.May, 1),
		CheckOut:   date(2026, time.May, 2),
		GuestName:  "Dan",
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// asking for the last bed succeeds
	_, err = svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     dorm.ID,
		BedsBooked: 1,
		CheckIn:    date(2026, time.May, 1),
		CheckOut:   date(2026, time.May, 2),
		GuestName:  "Eli",
	})
	assert.NoError(t, err)
}

func TestGroupBookingAtomicity(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	r1 := seedRoom(t, db, property.ID, "201", models.RoomCategoryStandard, 1, 1500)
	r2 := seedRoom(t, db, property.ID, "202", models.RoomCategoryStandard, 1, 1500)
	r3 := seedRoom(t, db, property.ID, "203", models.RoomCategoryStandard, 1, 1500)

	svc := NewReservationService(db, nil)

	// r2 is taken for the requested window
	mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     r2.ID,
		CheckIn:    date(2026, time.June, 1),
		CheckOut:   date(2026, time.June, 5),
		GuestName:  "Solo",
	})

	var before int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&before).Error)

	_, err := svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomIDs:    []uint{r1.ID, r2.ID, r3.ID},
		CheckIn:    date(2026, time.June, 2),
		CheckOut:   date(2026, time.June, 4),
		GuestName:  "Tour Group",
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// nothing was persisted: no reservation row, no room links
	var after, links int64
	require.NoError(t, db.Model(&models.Reservation{}).Count(&after).Error)
	require.NoError(t, db.Model(&models.ReservationRoom{}).Count(&links).Error)
	assert.Equal(t, before, after)
	assert.Zero(t, links)

	// dropping the occupied room makes the group claim succeed
	created, err := svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomIDs:    []uint{r1.ID, r3.ID},
		CheckIn:    date(2026, time.June, 2),
		CheckOut:   date(2026, time.June, 4),
		GuestName:  "Tour Group",
	})
	require.NoError(t, err)
	assert.Len(t, created.Rooms, 2)
	assert.Equal(t, models.ClaimRoomSet, created.Claim())
}

func TestCreateReservationClaimValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	standard := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1200)

	svc := NewReservationService(db, nil)

	_, err := svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 12),
		GuestName:  "Ann",
	})
	assert.ErrorIs(t, err, ErrInvalidClaim)

	// bed claims only make sense on dormitories
	_, err = svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     standard.ID,
		BedsBooked: 2,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 12),
		GuestName:  "Ann",
	})
	assert.ErrorIs(t, err, ErrInvalidClaim)

	_, err = svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     standard.ID,
		CheckIn:    date(2026, time.March, 12),
		CheckOut:   date(2026, time.March, 10),
		GuestName:  "Ann",
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.CreateReservation(CreateReservationInput{
		PropertyID: 9999,
		RoomID:     standard.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 12),
		GuestName:  "Ann",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateReservationZeroBedDormitoryNeverBookable(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	dorm := seedRoom(t, db, property.ID, "D0", models.RoomCategoryDormitory, 0, 300)

	svc := NewReservationService(db, nil)

	_, err := svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     dorm.ID,
		BedsBooked: 1,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 12),
		GuestName:  "Ann",
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestUpdateReservationDatesExcludesSelf(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	room := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1200)

	svc := NewReservationService(db, nil)

	created := mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 13),
		GuestName:  "Ann",
	})

	// shifting within its own window must not collide with itself
	updated, err := svc.UpdateReservationDates(created.ID, date(2026, time.March, 11), date(2026, time.March, 14))
	require.NoError(t, err)
	require.NotNil(t, updated)

	mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 14),
		CheckOut:   date(2026, time.March, 16),
		GuestName:  "Bob",
	})

	// but it still collides with other people's reservations
	_, err = svc.UpdateReservationDates(created.ID, date(2026, time.March, 13), date(2026, time.March, 16))
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestReservationLifecycle(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	room := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1200)

	svc := NewReservationService(db, nil)

	created := mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 13),
		GuestName:  "Ann",
	})

	// checkout before checkin is refused
	assert.ErrorIs(t, svc.CheckOutReservation(created.ID), ErrNotCheckedIn)

	require.NoError(t, svc.CheckInReservation(created.ID))
	loaded, err := svc.GetReservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, loaded.Status)
	assert.NotNil(t, loaded.CheckedInAt)

	// in-house reservations cannot be cancelled, only checked out
	assert.ErrorIs(t, svc.CancelReservation(created.ID), ErrNotConfirmed)
	assert.ErrorIs(t, svc.CheckInReservation(created.ID), ErrNotConfirmed)

	require.NoError(t, svc.CheckOutReservation(created.ID))
	loaded, err = svc.GetReservation(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedOut, loaded.Status)
	assert.NotNil(t, loaded.CheckedOutAt)

	// the stay is over: the room is free for the same dates again
	_, err = svc.CreateReservation(CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     room.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 13),
		GuestName:  "Bob",
	})
	assert.NoError(t, err)
}

func TestCreateReservationRoomCharge(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	standard := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1200)
	dorm := seedRoom(t, db, property.ID, "D1", models.RoomCategoryDormitory, 8, 350)

	svc := NewReservationService(db, nil)

	// 3 nights at 1200
	single := mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     standard.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 13),
		GuestName:  "Ann",
	})
	assert.True(t, single.RoomCharge.Equal(decimal.NewFromInt(3600)),
		"got %s", single.RoomCharge)

	// 2 beds for 2 nights at 350 per bed
	beds := mustReserve(t, svc, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     dorm.ID,
		BedsBooked: 2,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 12),
		GuestName:  "Bea",
	})
	assert.True(t, beds.RoomCharge.Equal(decimal.NewFromInt(1400)),
		"got %s", beds.RoomCharge)

	assert.NotEmpty(t, single.ReferenceCode)
	assert.NotEqual(t, single.ReferenceCode, beds.ReferenceCode)
}
