package models

import (
	"gorm.io/gorm"
)

// ReservationRoom links a group reservation to each whole room it claims.
// Every row counts as a full-room claim for the overlap math, exactly as if
// a separate single-room reservation existed for the same dates.
type ReservationRoom struct {
	gorm.Model

	ReservationID uint `gorm:"index;column:reservation_id" json:"reservationId"`
	RoomID        uint `gorm:"index;column:room_id" json:"roomId"`

	Reservation Reservation `gorm:"foreignKey:ReservationID;references:ID" json:"-"`
	Room        Room        `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
