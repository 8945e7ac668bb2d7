package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"property-backend/config"
	"property-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"
)

func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms?propertyId=)
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	q := config.DB.Order("room_number")
	if propertyID := c.Query("propertyId"); propertyID != "" {
		q = q.Where("property_id = ?", propertyID)
	}

	var rooms []models.Room
	if err := q.Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Create Room (POST /api/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room

	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Room Number is required.",
		})
		return
	}

	if room.PropertyID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "propertyId is required.",
		})
		return
	}
	var property models.Property
	if err := config.DB.First(&property, room.PropertyID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid propertyId provided.",
		})
		return
	}

	if room.Category == "" {
		room.Category = models.RoomCategoryStandard
	}
	if !room.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "category must be 'standard' or 'dormitory'.",
		})
		return
	}
	// standard rooms are always one unit; the bed count only matters for
	// dormitories
	if room.Category == models.RoomCategoryStandard {
		room.TotalBeds = 1
	}
	if room.TotalBeds < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "totalBeds cannot be negative.",
		})
		return
	}

	if result := config.DB.Create(&room); result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			log.Printf("❌ Duplicate Room Number: %s", room.RoomNumber)
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room Number '%s' already exists for this property.", room.RoomNumber),
			})
			return
		}

		log.Printf("❌ DB ERROR: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": result.Error.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Update Room (PATCH /api/rooms/:id)
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// protect identity / bookkeeping fields
	delete(updateData, "id")
	delete(updateData, "property_id")
	delete(updateData, "propertyId")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if raw, ok := updateData["category"]; ok {
		category, isString := raw.(string)
		if !isString || !models.RoomCategory(category).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "category must be 'standard' or 'dormitory'.",
			})
			return
		}
	}

	if err := config.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("❌ Update Error for Room %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room updated successfully",
	})
}

// ----------------------------------------------------
// 4. Delete Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func DeleteRoom(c *gin.Context) {
	id := c.Param("id")

	result := config.DB.Where("id = ?", id).Delete(&models.Room{})

	if result.Error != nil {
		log.Printf("❌ DB Error during deletion (ID: %s): %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete room.",
		})
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Room with ID %s not found.", id),
		})
		return
	}

	log.Printf("✅ Room ID %s deleted.", id)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room deleted successfully",
	})
}
