package models

import (
	"gorm.io/gorm"
)

type Property struct {
	gorm.Model

	Name    string `json:"name" gorm:"size:255;not null"`
	Address string `json:"address" gorm:"type:text"`
	Phone   string `json:"phone" gorm:"size:50"`
	Email   string `json:"email" gorm:"size:150"`

	Rooms []Room `gorm:"foreignKey:PropertyID" json:"rooms,omitempty"`
}
