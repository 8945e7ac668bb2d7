package controllers

import (
	"net/http"
	"strconv"

	"property-backend/services"

	"github.com/gin-gonic/gin"
)

type ConsolidateBillsRequest struct {
	PropertyID           uint   `json:"property_id" binding:"required"`
	ReservationIDs       []uint `json:"reservation_ids" binding:"required"`
	PrimaryReservationID uint   `json:"primary_reservation_id" binding:"required"`
}

type BillingController struct {
	BillingSvc *services.BillingService
}

func NewBillingController(svc *services.BillingService) *BillingController {
	return &BillingController{BillingSvc: svc}
}

// POST /api/bills/consolidate
func (ctrl *BillingController) ConsolidateBills(c *gin.Context) {
	var payload ConsolidateBillsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "invalid request payload",
			"details": err.Error(),
		}})
		return
	}

	bill, err := ctrl.BillingSvc.ConsolidateBills(payload.PropertyID, payload.ReservationIDs, payload.PrimaryReservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// GET /api/bills/:id
func (ctrl *BillingController) GetBill(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "error.invalidPayload",
			"message": "bill id must be numeric",
		}})
		return
	}
	bill, err := ctrl.BillingSvc.GetBill(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}
