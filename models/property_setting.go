package models

import "time"

// PropertySetting holds per-property display and contact settings used by
// the front desk screens.
type PropertySetting struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PropertyID   uint      `gorm:"column:property_id;uniqueIndex;not null" json:"propertyId"`
	Name         string    `gorm:"size:255" json:"name"`
	Address      string    `gorm:"type:text" json:"address"`
	Phone        string    `gorm:"size:50" json:"phone"`
	Email        string    `gorm:"size:150" json:"email"`
	Website      string    `gorm:"size:255" json:"website"`
	Logo         string    `gorm:"size:255" json:"logo"`
	CheckInHour  int       `gorm:"column:check_in_hour;default:14" json:"checkInHour"`
	CheckOutHour int       `gorm:"column:check_out_hour;default:12" json:"checkOutHour"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
