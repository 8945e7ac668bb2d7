package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"property-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// CreateReservationRequest accepts the three claim shapes: a single room, a
// list of rooms (group booking) or one room plus a bed count (dormitory).
type CreateReservationRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`

	RoomID     uint   `json:"room_id"`
	RoomIDs    []uint `json:"room_ids"`
	BedsBooked int    `json:"beds_booked"`

	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email"`
	GuestPhone string `json:"guest_phone"`
}

type UpdateDatesRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type UpdateChargesRequest struct {
	FoodCharge  decimal.Decimal `json:"food_charge"`
	ExtraCharge decimal.Decimal `json:"extra_charge"`
}

// ---------------------------
// Controller
// ---------------------------

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

func parseStayDates(c *gin.Context, checkIn, checkOut string) (time.Time, time.Time, bool) {
	ci, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "check_in must be formatted YYYY-MM-DD",
		}})
		return time.Time{}, time.Time{}, false
	}
	co, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "check_out must be formatted YYYY-MM-DD",
		}})
		return time.Time{}, time.Time{}, false
	}
	return ci, co, true
}

func reservationIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "reservation id must be numeric",
		}})
		return 0, false
	}
	return uint(id), true
}

// POST /api/reservations
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var payload CreateReservationRequest
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

	reservation, err := ctrl.ReservationSvc.CreateReservation(services.CreateReservationInput{
		PropertyID: payload.PropertyID,
		RoomID:     payload.RoomID,
		RoomIDs:    payload.RoomIDs,
		BedsBooked: payload.BedsBooked,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestName:  payload.GuestName,
		GuestEmail: payload.GuestEmail,
		GuestPhone: payload.GuestPhone,
	})
	if err != nil {
		log.Printf("CreateReservation failed for property %d: %v", payload.PropertyID, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GET /api/reservations?propertyId=
func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	var propertyID uint
	if raw := c.Query("propertyId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "propertyId must be numeric",
			}})
			return
		}
		propertyID = uint(id)
	}

	list, err := ctrl.ReservationSvc.GetAllReservations(propertyID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/reservations/:id
func (ctrl *ReservationController) GetReservationDetails(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	reservation, err := ctrl.ReservationSvc.GetReservation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DELETE /api/reservations/:id — cancel, keeping the record for history
func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.ReservationSvc.CancelReservation(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reservation cancelled",
	})
}

// POST /api/reservations/:id/checkin
func (ctrl *ReservationController) CheckInReservation(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.ReservationSvc.CheckInReservation(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Guest checked in",
	})
}

// POST /api/reservations/:id/checkout
func (ctrl *ReservationController) CheckOutReservation(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.ReservationSvc.CheckOutReservation(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Guest checked out",
	})
}

// PATCH /api/reservations/:id/dates
func (ctrl *ReservationController) UpdateReservationDates(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	var payload UpdateDatesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid request payload",
			"details": err.Error(),
		}})
		return
	}
	checkIn, checkOut, okDates := parseStayDates(c, payload.CheckIn, payload.CheckOut)
	if !okDates {
		return
	}

	reservation, err := ctrl.ReservationSvc.UpdateReservationDates(id, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// PATCH /api/reservations/:id/charges
func (ctrl *ReservationController) UpdateReservationCharges(c *gin.Context) {
	id, ok := reservationIDParam(c)
	if !ok {
		return
	}
	var payload UpdateChargesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid request payload",
			"details": err.Error(),
		}})
		return
	}
	if err := ctrl.ReservationSvc.UpdateCharges(id, payload.FoodCharge, payload.ExtraCharge); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Charges updated",
	})
}
