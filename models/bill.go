package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a consolidated invoice covering one or more reservations. It is
// linked back through Reservation.BillID; the primary reservation is the one
// the merged bill is settled under.
type Bill struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID           uint `gorm:"column:property_id;index;not null" json:"propertyId"`
	PrimaryReservationID uint `gorm:"column:primary_reservation_id;index;not null" json:"primaryReservationId"`

	RoomTotal  decimal.Decimal `gorm:"column:room_total;type:decimal(10,2)" json:"roomTotal"`
	FoodTotal  decimal.Decimal `gorm:"column:food_total;type:decimal(10,2)" json:"foodTotal"`
	ExtraTotal decimal.Decimal `gorm:"column:extra_total;type:decimal(10,2)" json:"extraTotal"`
	GrandTotal decimal.Decimal `gorm:"column:grand_total;type:decimal(10,2)" json:"grandTotal"`

	Reservations []Reservation `gorm:"foreignKey:BillID" json:"reservations,omitempty"`
}
