package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "Confirmed"
	StatusCheckedIn  ReservationStatus = "Checked-In"
	StatusCheckedOut ReservationStatus = "Checked-Out"
	StatusCancelled  ReservationStatus = "Cancelled"
	StatusRejected   ReservationStatus = "Rejected"
)

// ActiveStatuses are the statuses that count against room capacity.
// Checked-out, cancelled and rejected reservations are invisible to the
// availability calculator.
var ActiveStatuses = []ReservationStatus{StatusConfirmed, StatusCheckedIn}

func (s ReservationStatus) Active() bool {
	return s == StatusConfirmed || s == StatusCheckedIn
}

// ClaimKind describes which inventory units a reservation occupies.
type ClaimKind string

const (
	ClaimSingleRoom    ClaimKind = "single_room"
	ClaimRoomSet       ClaimKind = "room_set"
	ClaimDormitoryBeds ClaimKind = "dormitory_beds"
)

type ReservationSource string

const (
	SourceDirect ReservationSource = "direct"
	SourceOTA    ReservationSource = "ota"
)

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID    uint              `gorm:"column:property_id;index;not null" json:"propertyId"`
	ReferenceCode string            `gorm:"column:reference_code;size:64;uniqueIndex" json:"referenceCode"`
	Status        ReservationStatus `gorm:"column:status;size:32" json:"status"`
	Source        ReservationSource `gorm:"column:source;size:16;default:direct" json:"source"`

	// RoomID is set for single-room and dormitory-bed claims. Group claims
	// use the Rooms join rows instead and leave RoomID nil.
	RoomID     *uint `gorm:"column:room_id;index" json:"roomId,omitempty"`
	BedsBooked int   `gorm:"column:beds_booked;default:0" json:"bedsBooked"`

	CheckInDate  time.Time `gorm:"column:check_in_date;not null" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;not null" json:"checkOutDate"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guestName"`
	GuestEmail string `gorm:"column:guest_email;size:150" json:"guestEmail,omitempty"`
	GuestPhone string `gorm:"column:guest_phone;size:50" json:"guestPhone,omitempty"`

	RoomCharge  decimal.Decimal `gorm:"column:room_charge;type:decimal(10,2)" json:"roomCharge"`
	FoodCharge  decimal.Decimal `gorm:"column:food_charge;type:decimal(10,2)" json:"foodCharge"`
	ExtraCharge decimal.Decimal `gorm:"column:extra_charge;type:decimal(10,2)" json:"extraCharge"`

	// BillID is set once the reservation's charges have been folded into a
	// consolidated bill.
	BillID *uint `gorm:"column:bill_id;index" json:"billId,omitempty"`

	// ChannelMeta keeps the raw payload of OTA-sourced reservations for
	// later reconciliation.
	ChannelMeta datatypes.JSON `gorm:"column:channel_meta" json:"channelMeta,omitempty"`

	Room     *Room             `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Property Property          `gorm:"foreignKey:PropertyID;references:ID" json:"-"`
	Rooms    []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms"`
}

// Claim reports how the reservation occupies inventory.
func (r Reservation) Claim() ClaimKind {
	if len(r.Rooms) > 0 {
		return ClaimRoomSet
	}
	if r.BedsBooked > 0 {
		return ClaimDormitoryBeds
	}
	return ClaimSingleRoom
}

// Nights is the number of nights covered by the stay.
func (r Reservation) Nights() int {
	n := int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// DateOnly truncates t to midnight UTC. All stay boundaries are stored at
// day granularity so the half-open overlap rule has a single consistent
// resolution.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether [a1,a2) and [b1,b2) share at least one night.
// The half-open convention means a checkout and a check-in on the same day
// do not conflict.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}
