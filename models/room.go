package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomCategory is a closed enum: capacity math branches on it exhaustively.
type RoomCategory string

const (
	RoomCategoryStandard  RoomCategory = "standard"
	RoomCategoryDormitory RoomCategory = "dormitory"
)

func (c RoomCategory) Valid() bool {
	return c == RoomCategoryStandard || c == RoomCategoryDormitory
}

type Room struct {
	gorm.Model

	PropertyID uint         `json:"propertyId" gorm:"column:property_id;uniqueIndex:idx_property_room_number;index;not null"`
	RoomNumber string       `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_property_room_number;type:varchar(50)"`
	Category   RoomCategory `json:"category" gorm:"column:category;type:varchar(20);default:standard"`

	// TotalBeds is meaningful only for dormitory rooms. A dormitory with
	// zero beds is an inventory data problem and simply never has capacity.
	TotalBeds int `json:"totalBeds" gorm:"column:total_beds;default:1"`

	Price       decimal.Decimal `json:"price" gorm:"column:price;type:decimal(10,2)"`
	Floor       string          `json:"floor" gorm:"type:varchar(10)"`
	Description string          `json:"description" gorm:"type:text"`

	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}

// Capacity returns how many independently bookable units the room has:
// the whole room for standard, the bed count for dormitories.
func (r Room) Capacity() int {
	if r.Category == RoomCategoryDormitory {
		if r.TotalBeds < 0 {
			return 0
		}
		return r.TotalBeds
	}
	return 1
}
