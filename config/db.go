package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"property-backend/models"
	"property-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "property_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// SeedDatabase creates a demo property with a few standard rooms and one
// dormitory when the inventory is empty.
func SeedDatabase() {
	var propertyCount int64
	DB.Model(&models.Property{}).Count(&propertyCount)
	if propertyCount > 0 {
		log.Println("Properties already seeded")
		return
	}

	property := models.Property{
		Name:    "Riverside Guesthouse",
		Address: "12 River Road",
		Email:   "frontdesk@riverside.local",
	}
	if err := DB.Create(&property).Error; err != nil {
		log.Printf("warning: failed to seed property: %v", err)
		return
	}

	rooms := []models.Room{
		{PropertyID: property.ID, RoomNumber: "101", Category: models.RoomCategoryStandard, TotalBeds: 1, Price: decimal.NewFromInt(1200), Floor: "1"},
		{PropertyID: property.ID, RoomNumber: "102", Category: models.RoomCategoryStandard, TotalBeds: 1, Price: decimal.NewFromInt(1200), Floor: "1"},
		{PropertyID: property.ID, RoomNumber: "201", Category: models.RoomCategoryStandard, TotalBeds: 1, Price: decimal.NewFromInt(1500), Floor: "2"},
		{PropertyID: property.ID, RoomNumber: "D1", Category: models.RoomCategoryDormitory, TotalBeds: 10, Price: decimal.NewFromInt(350), Floor: "3"},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}

	log.Println("Demo property and rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Property{},
		&models.PropertySetting{},
		&models.Room{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.Bill{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
