package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"property-backend/controllers"
	"property-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controller instances onto the HTTP surface.
func SetupRouter(
	ac *controllers.AvailabilityController,
	rc *controllers.ReservationController,
	blc *controllers.BillingController,
	oc *controllers.OTAController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-OTA-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", controllers.GetProperties)
			properties.POST("", controllers.CreateProperty)
			properties.GET("/:id", controllers.GetPropertyByID)
			properties.PATCH("/:id", controllers.UpdateProperty)
			properties.DELETE("/:id", controllers.DeleteProperty)
			properties.GET("/:id/settings", controllers.GetPropertySettings)
			properties.PUT("/:id/settings", controllers.UpdatePropertySettings)
		}

		rooms := api.Group("/rooms")
		{
			// availability must be registered before /:id style routes
			rooms.GET("/availability", ac.GetAvailability)

			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.DELETE("/:id", controllers.DeleteRoom)
		}

		api.GET("/availability/calendar", ac.GetCalendar)

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.GetReservations)
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservationDetails)
			reservations.DELETE("/:id", rc.CancelReservation)
			reservations.POST("/:id/checkin", rc.CheckInReservation)
			reservations.POST("/:id/checkout", rc.CheckOutReservation)
			reservations.PATCH("/:id/dates", rc.UpdateReservationDates)
			reservations.PATCH("/:id/charges", rc.UpdateReservationCharges)
		}

		bills := api.Group("/bills")
		{
			bills.POST("/consolidate", blc.ConsolidateBills)
			bills.GET("/:id", blc.GetBill)
		}

		ota := api.Group("/ota")
		{
			ota.POST("/reservations", oc.ImportReservation)
		}
	}

	return r
}
