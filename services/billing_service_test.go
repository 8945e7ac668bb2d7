package services

import (
	"testing"
	"time"

	"property-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInHouseReservation(t *testing.T, svc *ReservationService, propertyID, roomID uint, food, extra int64) *models.Reservation {
	t.Helper()
	created := mustReserve(t, svc, CreateReservationInput{
		PropertyID:  propertyID,
		RoomID:      roomID,
		CheckIn:     date(2026, time.March, 10),
		CheckOut:    date(2026, time.March, 12),
		GuestName:   "Guest",
		FoodCharge:  decimal.NewFromInt(food),
		ExtraCharge: decimal.NewFromInt(extra),
	})
	require.NoError(t, svc.CheckInReservation(created.ID))
	return created
}

func TestConsolidateBillsSelectionValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	billing := NewBillingService(db)

	_, err := billing.ConsolidateBills(1, []uint{7}, 7)
	assert.ErrorIs(t, err, ErrInsufficientSelection)

	// duplicates collapse to a single selection
	_, err = billing.ConsolidateBills(1, []uint{7, 7}, 7)
	assert.ErrorIs(t, err, ErrInsufficientSelection)

	_, err = billing.ConsolidateBills(1, []uint{7, 8}, 9)
	assert.ErrorIs(t, err, ErrNoPrimarySelected)

	_, err = billing.ConsolidateBills(1, []uint{7, 8}, 0)
	assert.ErrorIs(t, err, ErrNoPrimarySelected)
}

func TestConsolidateBillsRequiresInHouse(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	r1 := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1000)
	r2 := seedRoom(t, db, property.ID, "102", models.RoomCategoryStandard, 1, 1000)

	reservations := NewReservationService(db, nil)
	billing := NewBillingService(db)

	inHouse := seedInHouseReservation(t, reservations, property.ID, r1.ID, 0, 0)

	// still just confirmed, not checked in
	confirmed := mustReserve(t, reservations, CreateReservationInput{
		PropertyID: property.ID,
		RoomID:     r2.ID,
		CheckIn:    date(2026, time.March, 10),
		CheckOut:   date(2026, time.March, 12),
		GuestName:  "Late",
	})

	_, err := billing.ConsolidateBills(property.ID, []uint{inHouse.ID, confirmed.ID}, inHouse.ID)
	assert.ErrorIs(t, err, ErrNotInHouse)
}

func TestConsolidateBills(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	r1 := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1000)
	r2 := seedRoom(t, db, property.ID, "102", models.RoomCategoryStandard, 1, 1500)

	reservations := NewReservationService(db, nil)
	billing := NewBillingService(db)

	first := seedInHouseReservation(t, reservations, property.ID, r1.ID, 250, 50)
	second := seedInHouseReservation(t, reservations, property.ID, r2.ID, 0, 100)

	bill, err := billing.ConsolidateBills(property.ID, []uint{first.ID, second.ID}, first.ID)
	require.NoError(t, err)

	assert.Equal(t, property.ID, bill.PropertyID)
	assert.Equal(t, first.ID, bill.PrimaryReservationID)

	// room: 2 nights at 1000 + 2 nights at 1500
	assert.True(t, bill.RoomTotal.Equal(decimal.NewFromInt(5000)), "room total %s", bill.RoomTotal)
	assert.True(t, bill.FoodTotal.Equal(decimal.NewFromInt(250)), "food total %s", bill.FoodTotal)
	assert.True(t, bill.ExtraTotal.Equal(decimal.NewFromInt(150)), "extra total %s", bill.ExtraTotal)
	assert.True(t, bill.GrandTotal.Equal(decimal.NewFromInt(5400)), "grand total %s", bill.GrandTotal)

	require.Len(t, bill.Reservations, 2)
	for _, r := range bill.Reservations {
		require.NotNil(t, r.BillID)
		assert.Equal(t, bill.ID, *r.BillID)
	}

	// a reservation can only be on one consolidated bill
	_, err = billing.ConsolidateBills(property.ID, []uint{first.ID, second.ID}, first.ID)
	assert.ErrorIs(t, err, ErrAlreadyBilled)
}

func TestConsolidateBillsUnknownReservation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	property := seedProperty(t, db)
	room := seedRoom(t, db, property.ID, "101", models.RoomCategoryStandard, 1, 1000)

	reservations := NewReservationService(db, nil)
	billing := NewBillingService(db)

	inHouse := seedInHouseReservation(t, reservations, property.ID, room.ID, 0, 0)

	_, err := billing.ConsolidateBills(property.ID, []uint{inHouse.ID, 9999}, inHouse.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
