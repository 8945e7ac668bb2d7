package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReservationService owns every write to the reservation ledger. The
// conflict guard runs inside the same transaction as the insert, with the
// claimed room rows locked, so two submissions racing for the last unit
// cannot both commit. UI availability screens are only a hint; this is the
// correctness boundary.
type ReservationService struct {
	DB    *gorm.DB
	Cache *CalendarCache
}

func NewReservationService(db *gorm.DB, cache *CalendarCache) *ReservationService {
	return &ReservationService{DB: db, Cache: cache}
}

// CreateReservationInput carries one claim: exactly one of RoomID (single
// room or dormitory beds, depending on BedsBooked) or RoomIDs (group
// booking, each room claimed in full).
type CreateReservationInput struct {
	PropertyID uint
	RoomID     uint
	RoomIDs    []uint
	BedsBooked int

	CheckIn  time.Time
	CheckOut time.Time

	GuestName  string
	GuestEmail string
	GuestPhone string

	FoodCharge  decimal.Decimal
	ExtraCharge decimal.Decimal

	Source      models.ReservationSource
	ChannelMeta datatypes.JSON
}

func (in CreateReservationInput) claimedRoomIDs() []uint {
	if len(in.RoomIDs) > 0 {
		return in.RoomIDs
	}
	if in.RoomID != 0 {
		return []uint{in.RoomID}
	}
	return nil
}

// CreateReservation validates the claim, re-checks capacity under row locks
// and persists the reservation. All-or-nothing: a group claim with one
// unavailable room leaves no rows behind.
func (s *ReservationService) CreateReservation(input CreateReservationInput) (*models.Reservation, error) {
	checkIn := models.DateOnly(input.CheckIn)
	checkOut := models.DateOnly(input.CheckOut)
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidRange
	}

	roomIDs := input.claimedRoomIDs()
	if len(roomIDs) == 0 {
		return nil, fmt.Errorf("%w: no room ids provided", ErrInvalidClaim)
	}
	if len(input.RoomIDs) > 0 && input.BedsBooked > 0 {
		return nil, fmt.Errorf("%w: group bookings claim whole rooms, not beds", ErrInvalidClaim)
	}
	if input.BedsBooked < 0 {
		return nil, fmt.Errorf("%w: negative bed count", ErrInvalidClaim)
	}

	if input.Source == "" {
		input.Source = models.SourceDirect
	}

	var created models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, input.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("property %d: %w", input.PropertyID, ErrNotFound)
			}
			return fmt.Errorf("failed to load property: %w", err)
		}

		rooms, err := lockRooms(tx, input.PropertyID, roomIDs)
		if err != nil {
			return err
		}

		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		roomCharge := decimal.Zero

		for _, room := range rooms {
			claimedBeds := 0
			if input.BedsBooked > 0 {
				if room.Category != models.RoomCategoryDormitory {
					return fmt.Errorf("%w: room %s is not a dormitory", ErrInvalidClaim, room.RoomNumber)
				}
				claimedBeds = input.BedsBooked
			}
			if err := guardRoom(tx, room, checkIn, checkOut, claimedBeds, 0); err != nil {
				return err
			}

			nightly := room.Price
			if claimedBeds > 0 {
				// dormitory rates are per bed per night
				nightly = nightly.Mul(decimal.NewFromInt(int64(claimedBeds)))
			}
			roomCharge = roomCharge.Add(nightly.Mul(decimal.NewFromInt(int64(nights))))
		}

		created = models.Reservation{
			PropertyID:    input.PropertyID,
			ReferenceCode: uuid.NewString(),
			Status:        models.StatusConfirmed,
			Source:        input.Source,
			BedsBooked:    input.BedsBooked,
			CheckInDate:   checkIn,
			CheckOutDate:  checkOut,
			GuestName:     input.GuestName,
			GuestEmail:    input.GuestEmail,
			GuestPhone:    input.GuestPhone,
			RoomCharge:    roomCharge,
			FoodCharge:    input.FoodCharge,
			ExtraCharge:   input.ExtraCharge,
			ChannelMeta:   input.ChannelMeta,
		}
		if len(input.RoomIDs) == 0 {
			rid := input.RoomID
			created.RoomID = &rid
		}

		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		for _, rid := range input.RoomIDs {
			rr := models.ReservationRoom{ReservationID: created.ID, RoomID: rid}
			if err := tx.Create(&rr).Error; err != nil {
				return fmt.Errorf("failed to create reservation_room for room %d: %w", rid, err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Cache.Invalidate(context.Background(), input.PropertyID)

	// reload with relations for the response shape
	if err := s.DB.Preload("Rooms.Room").Preload("Room").First(&created, created.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}
	if created.Rooms == nil {
		created.Rooms = []models.ReservationRoom{}
	}
	return &created, nil
}

// UpdateReservationDates moves an active reservation to a new date range,
// re-running the guard against everything except the reservation itself.
func (s *ReservationService) UpdateReservationDates(reservationID uint, checkIn, checkOut time.Time) (*models.Reservation, error) {
	in := models.DateOnly(checkIn)
	out := models.DateOnly(checkOut)
	if !in.Before(out) {
		return nil, ErrInvalidRange
	}

	var reservation models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Preload("Rooms").
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", reservationID, ErrNotFound)
			}
			return err
		}
		if !reservation.Status.Active() {
			return ErrNotConfirmed
		}

		roomIDs := claimedRoomIDsOf(reservation)
		rooms, err := lockRooms(tx, reservation.PropertyID, roomIDs)
		if err != nil {
			return err
		}

		nights := int(out.Sub(in).Hours() / 24)
		roomCharge := decimal.Zero
		for _, room := range rooms {
			claimedBeds := 0
			if reservation.BedsBooked > 0 {
				claimedBeds = reservation.BedsBooked
			}
			if err := guardRoom(tx, room, in, out, claimedBeds, reservation.ID); err != nil {
				return err
			}
			nightly := room.Price
			if claimedBeds > 0 {
				nightly = nightly.Mul(decimal.NewFromInt(int64(claimedBeds)))
			}
			roomCharge = roomCharge.Add(nightly.Mul(decimal.NewFromInt(int64(nights))))
		}

		return tx.Model(&reservation).Updates(map[string]interface{}{
			"check_in_date":  in,
			"check_out_date": out,
			"room_charge":    roomCharge,
		}).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	s.Cache.Invalidate(context.Background(), reservation.PropertyID)

	if err := s.DB.Preload("Rooms.Room").Preload("Room").First(&reservation, reservationID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}
	return &reservation, nil
}

// CancelReservation releases the reservation's capacity immediately. Only
// confirmed (not yet in-house) reservations can be cancelled; checked-in
// guests go through checkout instead. The record is kept for history.
func (s *ReservationService) CancelReservation(reservationID uint) error {
	var propertyID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := lockForUpdate(tx).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", reservationID, ErrNotFound)
			}
			return err
		}
		if reservation.Status != models.StatusConfirmed {
			return ErrNotConfirmed
		}
		propertyID = reservation.PropertyID
		return tx.Model(&reservation).Update("status", models.StatusCancelled).Error
	})
	if txErr != nil {
		return txErr
	}
	s.Cache.Invalidate(context.Background(), propertyID)
	return nil
}

// CheckInReservation marks a confirmed reservation as in-house.
func (s *ReservationService) CheckInReservation(reservationID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := lockForUpdate(tx).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", reservationID, ErrNotFound)
			}
			return err
		}
		if reservation.Status != models.StatusConfirmed {
			return ErrNotConfirmed
		}
		now := time.Now().UTC()
		return tx.Model(&reservation).Updates(map[string]interface{}{
			"status":        models.StatusCheckedIn,
			"checked_in_at": now,
		}).Error
	})
}

// CheckOutReservation ends an in-house stay. Capacity for the remaining
// nights frees up because checked-out reservations no longer count as
// active.
func (s *ReservationService) CheckOutReservation(reservationID uint) error {
	var propertyID uint
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := lockForUpdate(tx).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("reservation %d: %w", reservationID, ErrNotFound)
			}
			return err
		}
		if reservation.Status != models.StatusCheckedIn {
			return ErrNotCheckedIn
		}
		propertyID = reservation.PropertyID
		now := time.Now().UTC()
		return tx.Model(&reservation).Updates(map[string]interface{}{
			"status":         models.StatusCheckedOut,
			"checked_out_at": now,
		}).Error
	})
	if txErr != nil {
		return txErr
	}
	s.Cache.Invalidate(context.Background(), propertyID)
	return nil
}

// UpdateCharges sets the food/extra charges used later by bill
// consolidation.
func (s *ReservationService) UpdateCharges(reservationID uint, food, extra decimal.Decimal) error {
	res := s.DB.Model(&models.Reservation{}).
		Where("id = ?", reservationID).
		Updates(map[string]interface{}{
			"food_charge":  food,
			"extra_charge": extra,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update charges: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reservation %d: %w", reservationID, ErrNotFound)
	}
	return nil
}

// GetReservation loads one reservation with its claimed rooms.
func (s *ReservationService) GetReservation(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.DB.Preload("Rooms.Room").Preload("Room").First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reservation %d: %w", reservationID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve reservation: %w", err)
	}
	if reservation.Rooms == nil {
		reservation.Rooms = []models.ReservationRoom{}
	}
	return &reservation, nil
}

// GetAllReservations lists reservations, newest first, optionally scoped to
// one property.
func (s *ReservationService) GetAllReservations(propertyID uint) ([]models.Reservation, error) {
	q := s.DB.Preload("Rooms.Room").Preload("Room").Order("created_at DESC")
	if propertyID != 0 {
		q = q.Where("property_id = ?", propertyID)
	}
	var list []models.Reservation
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	for i := range list {
		if list[i].Rooms == nil {
			list[i].Rooms = []models.ReservationRoom{}
		}
	}
	return list, nil
}

// ---------------------------------------------------------------------------
// guard internals
// ---------------------------------------------------------------------------

// lockForUpdate adds FOR UPDATE on dialects that support it. SQLite already
// serializes writers, so the clause is omitted there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// lockRooms loads the claimed rooms with FOR UPDATE row locks so concurrent
// submissions on the same rooms serialize at the database.
func lockRooms(tx *gorm.DB, propertyID uint, roomIDs []uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := lockForUpdate(tx).
		Where("property_id = ? AND id IN ?", propertyID, roomIDs).
		Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to lock rooms: %w", err)
	}
	if len(rooms) != len(roomIDs) {
		return nil, fmt.Errorf("room missing for property %d: %w", propertyID, ErrNotFound)
	}
	return rooms, nil
}

// guardRoom re-checks one room's capacity for [in, out) inside the write
// transaction. claimedBeds > 0 means a dormitory bed claim; otherwise the
// whole room is being claimed. excludeID skips the reservation being
// modified.
func guardRoom(tx *gorm.DB, room models.Room, in, out time.Time, claimedBeds int, excludeID uint) error {
	whole, beds, err := occupancyForRoom(tx, room.ID, in, out, excludeID)
	if err != nil {
		return err
	}

	if claimedBeds > 0 {
		if room.TotalBeds <= 0 {
			// zero-capacity dormitory: inventory data issue, never bookable
			return fmt.Errorf("room %s: %w", room.RoomNumber, ErrCapacityExceeded)
		}
		if whole > 0 || beds+claimedBeds > room.TotalBeds {
			return fmt.Errorf("room %s: %w", room.RoomNumber, ErrCapacityExceeded)
		}
		return nil
	}

	if whole > 0 || beds > 0 {
		return fmt.Errorf("room %s: %w", room.RoomNumber, ErrCapacityExceeded)
	}
	return nil
}

// occupancyForRoom counts active reservations that overlap [in, out) on the
// room: whole-room claims (single + group) and the dormitory bed sum. Same
// half-open rule as the availability calculator.
func occupancyForRoom(tx *gorm.DB, roomID uint, in, out time.Time, excludeID uint) (int, int, error) {
	var whole int64
	q := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND beds_booked = 0", roomID).
		Where("status IN ?", models.ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", out, in)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&whole).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count room claims: %w", err)
	}

	var group int64
	g := tx.Model(&models.Reservation{}).
		Joins("JOIN reservation_rooms ON reservation_rooms.reservation_id = reservations.id AND reservation_rooms.deleted_at IS NULL").
		Where("reservation_rooms.room_id = ?", roomID).
		Where("reservations.status IN ?", models.ActiveStatuses).
		Where("reservations.check_in_date < ? AND reservations.check_out_date > ?", out, in)
	if excludeID != 0 {
		g = g.Where("reservations.id <> ?", excludeID)
	}
	if err := g.Count(&group).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count group claims: %w", err)
	}

	var bedSum int64
	b := tx.Model(&models.Reservation{}).
		Select("COALESCE(SUM(beds_booked), 0)").
		Where("room_id = ? AND beds_booked > 0", roomID).
		Where("status IN ?", models.ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", out, in)
	if excludeID != 0 {
		b = b.Where("id <> ?", excludeID)
	}
	if err := b.Scan(&bedSum).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to sum bed claims: %w", err)
	}

	return int(whole + group), int(bedSum), nil
}

func claimedRoomIDsOf(r models.Reservation) []uint {
	if len(r.Rooms) > 0 {
		ids := make([]uint, 0, len(r.Rooms))
		for _, rr := range r.Rooms {
			ids = append(ids, rr.RoomID)
		}
		return ids
	}
	if r.RoomID != nil {
		return []uint{*r.RoomID}
	}
	return nil
}
