package controllers

import (
	"net/http"
	"strconv"
	"time"

	"property-backend/services"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	AvailabilitySvc *services.AvailabilityService
}

func NewAvailabilityController(svc *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{AvailabilitySvc: svc}
}

// ---------------------------
// GET /api/rooms/availability?propertyId=&checkIn=&checkOut=&roomId=
// ---------------------------

func (ctrl *AvailabilityController) GetAvailability(c *gin.Context) {
	propertyID, ok := parseUintQuery(c, "propertyId")
	if !ok {
		return
	}

	checkIn, err := time.Parse("2006-01-02", c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "checkIn must be formatted YYYY-MM-DD",
		}})
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "checkOut must be formatted YYYY-MM-DD",
		}})
		return
	}

	var roomID *uint
	if raw := c.Query("roomId"); raw != "" {
		id, convErr := strconv.ParseUint(raw, 10, 32)
		if convErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "error.invalidPayload",
				"message": "roomId must be numeric",
			}})
			return
		}
		v := uint(id)
		roomID = &v
	}

	rooms, err := ctrl.AvailabilitySvc.GetAvailability(propertyID, checkIn, checkOut, roomID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkIn":  checkIn.Format("2006-01-02"),
		"checkOut": checkOut.Format("2006-01-02"),
		"rooms":    rooms,
	})
}

// ---------------------------
// GET /api/availability/calendar?propertyId=&year=&month=
// ---------------------------

func (ctrl *AvailabilityController) GetCalendar(c *gin.Context) {
	propertyID, ok := parseUintQuery(c, "propertyId")
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "year must be numeric",
		}})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "month must be numeric",
		}})
		return
	}

	days, err := ctrl.AvailabilitySvc.GetCalendar(c.Request.Context(), propertyID, year, time.Month(month))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": name + " is required and must be numeric",
		}})
		return 0, false
	}
	return uint(id), true
}
