package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"property-backend/config"
	"property-backend/controllers"
	"property-backend/routes"
	"property-backend/services"
	"property-backend/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required OTA key (fatal if missing: channel-manager writes must be
	// authenticated before they reach the booking guard)
	otaKey := os.Getenv("OTA_API_KEY")
	if otaKey == "" {
		log.Fatal("❌ ERROR: OTA_API_KEY environment variable is not set. Cannot accept channel-manager traffic.")
	}
	log.Println("✅ OTA_API_KEY detected.")

	// Connect database (config.ConnectDatabase should set config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Optional calendar read-model cache
	cache := services.NewCalendarCache(os.Getenv("REDIS_ADDR"))
	if cache != nil {
		log.Println("✅ Calendar cache enabled (redis).")
	}

	// Initialize services
	availabilityService := services.NewAvailabilityService(db, cache)
	reservationService := services.NewReservationService(db, cache)
	billingService := services.NewBillingService(db)

	// Initialize controllers
	availabilityController := controllers.NewAvailabilityController(availabilityService)
	reservationController := controllers.NewReservationController(reservationService)
	billingController := controllers.NewBillingController(billingService)
	otaController := controllers.NewOTAController(reservationService, otaKey)

	// Build router
	router := routes.SetupRouter(availabilityController, reservationController, billingController, otaController)

	// Port from env (prefer), fallback to 8080
	addr := ":" + utils.EnvOrDefault("PORT", "8080")

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
