package services

import (
	"errors"
	"fmt"

	"property-backend/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillingService merges the charges of several in-house reservations into
// one consolidated bill. It reads the ledger but never touches the
// availability math.
type BillingService struct {
	DB *gorm.DB
}

func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{DB: db}
}

// ConsolidateBills nets the room/food/extra charges of the selected
// reservations into one bill linked to the primary reservation. All
// reservations must belong to the property and be checked in; at least two
// must be selected and the primary must be among them.
func (s *BillingService) ConsolidateBills(propertyID uint, reservationIDs []uint, primaryID uint) (*models.Bill, error) {
	ids := dedupeIDs(reservationIDs)
	if len(ids) < 2 {
		return nil, ErrInsufficientSelection
	}
	primaryFound := false
	for _, id := range ids {
		if id == primaryID {
			primaryFound = true
			break
		}
	}
	if primaryID == 0 || !primaryFound {
		return nil, ErrNoPrimarySelected
	}

	var bill models.Bill
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservations []models.Reservation
		if err := tx.Where("property_id = ? AND id IN ?", propertyID, ids).
			Find(&reservations).Error; err != nil {
			return fmt.Errorf("failed to load reservations: %w", err)
		}
		if len(reservations) != len(ids) {
			return fmt.Errorf("reservation selection: %w", ErrNotFound)
		}

		roomTotal := decimal.Zero
		foodTotal := decimal.Zero
		extraTotal := decimal.Zero
		for _, r := range reservations {
			if r.Status != models.StatusCheckedIn {
				return fmt.Errorf("reservation %d: %w", r.ID, ErrNotInHouse)
			}
			if r.BillID != nil {
				return fmt.Errorf("reservation %d: %w", r.ID, ErrAlreadyBilled)
			}
			roomTotal = roomTotal.Add(r.RoomCharge)
			foodTotal = foodTotal.Add(r.FoodCharge)
			extraTotal = extraTotal.Add(r.ExtraCharge)
		}

		bill = models.Bill{
			PropertyID:           propertyID,
			PrimaryReservationID: primaryID,
			RoomTotal:            roomTotal,
			FoodTotal:            foodTotal,
			ExtraTotal:           extraTotal,
			GrandTotal:           roomTotal.Add(foodTotal).Add(extraTotal),
		}
		if err := tx.Create(&bill).Error; err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}

		if err := tx.Model(&models.Reservation{}).
			Where("id IN ?", ids).
			Update("bill_id", bill.ID).Error; err != nil {
			return fmt.Errorf("failed to link reservations to bill: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.DB.Preload("Reservations").First(&bill, bill.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload bill: %w", err)
	}
	return &bill, nil
}

// GetBill loads one consolidated bill with its reservations.
func (s *BillingService) GetBill(billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := s.DB.Preload("Reservations").First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bill %d: %w", billID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve bill: %w", err)
	}
	return &bill, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := map[uint]bool{}
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
