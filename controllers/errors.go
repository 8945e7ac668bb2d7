package controllers

import (
	"errors"
	"net/http"

	"property-backend/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the engine's failure taxonomy onto HTTP. Every
// failure here is recoverable by the caller picking different input; nothing
// is retried server-side.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidRange",
			"message": "check-out date must be after check-in date",
		}})
	case errors.Is(err, services.ErrInvalidClaim):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidClaim",
			"message": "the requested room/bed selection is malformed",
			"details": err.Error(),
		}})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{
			"code":    "error.notFound",
			"message": "property, room or reservation not found",
		}})
	case errors.Is(err, services.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.capacityExceeded",
			"message": "this room/date is no longer available, please choose another",
		}})
	case errors.Is(err, services.ErrInsufficientSelection):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.insufficientSelection",
			"message": "select at least two reservations to consolidate",
		}})
	case errors.Is(err, services.ErrNoPrimarySelected):
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.noPrimarySelected",
			"message": "exactly one primary reservation must be selected",
		}})
	case errors.Is(err, services.ErrNotInHouse):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.notInHouse",
			"message": "all selected reservations must be checked in",
		}})
	case errors.Is(err, services.ErrAlreadyBilled):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.alreadyBilled",
			"message": "a selected reservation is already on a consolidated bill",
		}})
	case errors.Is(err, services.ErrNotConfirmed):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.notConfirmed",
			"message": "reservation is not in a confirmed state",
		}})
	case errors.Is(err, services.ErrNotCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": gin.H{
			"code":    "error.notCheckedIn",
			"message": "reservation is not checked in",
		}})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "error.internal",
			"message": "internal server error",
			"details": err.Error(),
		}})
	}
}
