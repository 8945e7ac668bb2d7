package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"property-backend/config"
	"property-backend/models"
	"property-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OTAReservationRequest is what a channel manager posts. Channel managers
// speak room numbers, not internal ids, so rooms are resolved per property.
type OTAReservationRequest struct {
	Channel     string `json:"channel" binding:"required"`
	ExternalRef string `json:"external_ref" binding:"required"`

	PropertyID  uint     `json:"property_id" binding:"required"`
	RoomNumber  string   `json:"room_number"`
	RoomNumbers []string `json:"room_numbers"`
	BedsBooked  int      `json:"beds_booked"`

	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`

	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email"`
}

// OTAController ingests reservations written by external channel managers.
// The ingest path funnels through the same ReservationService guard as the
// booking screens; a channel manager can never bypass the no-double-booking
// check.
type OTAController struct {
	ReservationSvc *services.ReservationService
	APIKey         string
}

func NewOTAController(svc *services.ReservationService, apiKey string) *OTAController {
	return &OTAController{ReservationSvc: svc, APIKey: apiKey}
}

// POST /api/ota/reservations  (header X-OTA-Key)
func (ctrl *OTAController) ImportReservation(c *gin.Context) {
	if c.GetHeader("X-OTA-Key") != ctrl.APIKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "error.unauthorized",
			"message": "missing or invalid OTA key",
		}})
		return
	}

	var payload OTAReservationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid request payload",
			"details": err.Error(),
		}})
		return
	}

	checkIn, checkOut, ok := parseStayDates(c, payload.CheckIn, payload.CheckOut)
	if !ok {
		return
	}

	numbers := payload.RoomNumbers
	if len(numbers) == 0 && payload.RoomNumber != "" {
		numbers = []string{payload.RoomNumber}
	}
	if len(numbers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "room_number or room_numbers is required",
		}})
		return
	}

	roomIDs := make([]uint, 0, len(numbers))
	for _, number := range numbers {
		var room models.Room
		err := config.DB.
			Where("property_id = ? AND room_number = ?", payload.PropertyID, number).
			First(&room).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
					"code":    "error.notFound",
					"message": "unknown room number " + number,
				}})
				return
			}
			respondServiceError(c, err)
			return
		}
		roomIDs = append(roomIDs, room.ID)
	}

	raw, _ := json.Marshal(payload)

	input := services.CreateReservationInput{
		PropertyID:  payload.PropertyID,
		BedsBooked:  payload.BedsBooked,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestName:   payload.GuestName,
		GuestEmail:  payload.GuestEmail,
		Source:      models.SourceOTA,
		ChannelMeta: datatypes.JSON(raw),
	}
	if len(roomIDs) == 1 {
		input.RoomID = roomIDs[0]
	} else {
		input.RoomIDs = roomIDs
	}

	reservation, err := ctrl.ReservationSvc.CreateReservation(input)
	if err != nil {
		log.Printf("OTA import failed (channel=%s ref=%s): %v", payload.Channel, payload.ExternalRef, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":         "success",
		"reservation_id": reservation.ID,
		"reference_code": reservation.ReferenceCode,
	})
}
