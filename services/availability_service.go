package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"property-backend/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "how many units of each room are free for
// these dates". It is a pure read over rooms + reservations; the write-side
// re-check lives in ReservationService.
type AvailabilityService struct {
	DB    *gorm.DB
	Cache *CalendarCache
}

func NewAvailabilityService(db *gorm.DB, cache *CalendarCache) *AvailabilityService {
	return &AvailabilityService{DB: db, Cache: cache}
}

// RoomAvailability is the per-room answer for one queried date range.
type RoomAvailability struct {
	Room      models.Room `json:"room"`
	Capacity  int         `json:"capacity"`
	Booked    int         `json:"booked"`
	Available int         `json:"available"`
}

// DayOccupancy backs the month calendar view: occupied/total room counts
// for a single date.
type DayOccupancy struct {
	Date     string `json:"date"`
	Occupied int    `json:"occupied"`
	Total    int    `json:"total"`
}

// GetAvailability returns free capacity for every room of the property (or
// just roomID when given) over [checkIn, checkOut).
func (s *AvailabilityService) GetAvailability(propertyID uint, checkIn, checkOut time.Time, roomID *uint) ([]RoomAvailability, error) {
	in := models.DateOnly(checkIn)
	out := models.DateOnly(checkOut)
	if !in.Before(out) {
		return nil, ErrInvalidRange
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	roomQuery := s.DB.Where("property_id = ?", propertyID)
	if roomID != nil {
		roomQuery = roomQuery.Where("id = ?", *roomID)
	}
	var rooms []models.Room
	if err := roomQuery.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	if roomID != nil && len(rooms) == 0 {
		return nil, fmt.Errorf("room %d: %w", *roomID, ErrNotFound)
	}

	reservations, err := s.overlappingActive(propertyID, in, out)
	if err != nil {
		return nil, err
	}

	return tallyAvailability(rooms, reservations, in, out), nil
}

// GetCalendar returns occupied/total room counts for every day of the given
// month. Results may be served from the read-model cache; the cache is only
// a hint for calendar screens and is never consulted by the conflict guard.
func (s *AvailabilityService) GetCalendar(ctx context.Context, propertyID uint, year int, month time.Month) ([]DayOccupancy, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, ErrInvalidRange
	}

	if days, ok := s.Cache.Get(ctx, propertyID, year, month); ok {
		return days, nil
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	var rooms []models.Room
	if err := s.DB.Where("property_id = ?", propertyID).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	reservations, err := s.overlappingActive(propertyID, first, next)
	if err != nil {
		return nil, err
	}

	days := make([]DayOccupancy, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		perRoom := tallyAvailability(rooms, reservations, d, d.AddDate(0, 0, 1))
		occupied := 0
		for _, ra := range perRoom {
			if ra.Available == 0 {
				occupied++
			}
		}
		days = append(days, DayOccupancy{
			Date:     d.Format("2006-01-02"),
			Occupied: occupied,
			Total:    len(rooms),
		})
	}

	s.Cache.Set(ctx, propertyID, year, month, days)
	return days, nil
}

// overlappingActive loads the active reservations of the property that share
// at least one night with [in, out), group claims preloaded.
func (s *AvailabilityService) overlappingActive(propertyID uint, in, out time.Time) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.DB.
		Preload("Rooms").
		Where("property_id = ?", propertyID).
		Where("status IN ?", models.ActiveStatuses).
		Where("check_in_date < ? AND check_out_date > ?", out, in).
		Find(&reservations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations: %w", err)
	}
	return reservations, nil
}

// tallyAvailability is the calculator core: it folds the reservations that
// overlap [in, out) into per-room occupancy.
//
//   - standard room: free is 1 unless any overlapping claim touches it;
//   - dormitory: free beds = totalBeds - sum of overlapping bed claims,
//     floored at 0. A whole-room claim on a dormitory consumes every bed.
//
// A group claim counts against each of its rooms independently.
func tallyAvailability(rooms []models.Room, reservations []models.Reservation, in, out time.Time) []RoomAvailability {
	whole := map[uint]int{}
	beds := map[uint]int{}

	for _, r := range reservations {
		if !r.Status.Active() {
			continue
		}
		if !models.Overlaps(r.CheckInDate, r.CheckOutDate, in, out) {
			continue
		}
		switch r.Claim() {
		case models.ClaimRoomSet:
			for _, rr := range r.Rooms {
				whole[rr.RoomID]++
			}
		case models.ClaimDormitoryBeds:
			if r.RoomID != nil {
				beds[*r.RoomID] += r.BedsBooked
			}
		default:
			if r.RoomID != nil {
				whole[*r.RoomID]++
			}
		}
	}

	result := make([]RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		capacity := room.Capacity()
		free := capacity
		if room.Category == models.RoomCategoryDormitory {
			if whole[room.ID] > 0 {
				free = 0
			} else {
				free = capacity - beds[room.ID]
			}
		} else {
			if whole[room.ID] > 0 || beds[room.ID] > 0 {
				free = 0
			}
		}
		if free < 0 {
			free = 0
		}
		result = append(result, RoomAvailability{
			Room:      room,
			Capacity:  capacity,
			Booked:    capacity - free,
			Available: free,
		})
	}
	return result
}
