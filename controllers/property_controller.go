package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"property-backend/config"
	"property-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ----------------------------------------------------
// Properties (GET/POST /api/properties, GET/PATCH/DELETE /api/properties/:id)
// ----------------------------------------------------

func GetProperties(c *gin.Context) {
	var properties []models.Property
	if err := config.DB.Order("name").Find(&properties).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, properties)
}

func GetPropertyByID(c *gin.Context) {
	id := c.Param("id")
	var property models.Property
	if err := config.DB.Preload("Rooms").First(&property, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Property with ID %s not found.", id),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, property)
}

func CreateProperty(c *gin.Context) {
	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		log.Printf("❌ JSON BINDING ERROR (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	if property.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Property name is required.",
		})
		return
	}

	if err := config.DB.Create(&property).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, property)
}

func UpdateProperty(c *gin.Context) {
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

	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")

	if err := config.DB.Model(&models.Property{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Property updated successfully",
	})
}

func DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	result := config.DB.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete property.",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Property with ID %s not found.", id),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Property deleted successfully",
	})
}

// ----------------------------------------------------
// Property settings (GET/PUT /api/properties/:id/settings)
// ----------------------------------------------------

func GetPropertySettings(c *gin.Context) {
	id := c.Param("id")
	var setting models.PropertySetting
	if err := config.DB.First(&setting, "property_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.PropertySetting{})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, setting)
}

func UpdatePropertySettings(c *gin.Context) {
	id := c.Param("id")

	var property models.Property
	if err := config.DB.First(&property, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Property with ID %s not found.", id),
		})
		return
	}

	var payload models.PropertySetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}
	payload.PropertyID = property.ID

	var setting models.PropertySetting
	err := config.DB.First(&setting, "property_id = ?", property.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		payload.ID = 0
		if err := config.DB.Create(&payload).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Database error",
				"details": err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, payload)
		return
	}

	payload.ID = setting.ID
	if err := config.DB.Model(&setting).Updates(&payload).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, payload)
}
