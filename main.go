package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/config"
	"github.com/homechefhq/homechef-api/middlewares"
	"github.com/homechefhq/homechef-api/models"
	"github.com/homechefhq/homechef-api/router"
	"github.com/homechefhq/homechef-api/services"
	"github.com/homechefhq/homechef-api/utils"
)

func init() {
	// Load .env di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Set gin mode
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedAdmin(db)

	// Rate limiter global (50 request per detik per IP)
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	// Payment timeout checker: expire payment online yang menggantung
	paymentService := services.NewPaymentService(db)
	paymentService.StartTimeoutChecker()

	// Setup router
	r := router.SetupRouter(db)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Chef{},
		&models.Admin{},
		&models.Assignment{},
		&models.Order{},
		&models.Notification{},
		&models.Payment{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Auto migration failed: %v", err)
	}
}

// seedAdmin membuat akun admin pertama dari env jika belum ada sama sekali.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.InfoLogger.Println("No admin account exists and ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping seed")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.Admin{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to seed admin account: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded initial admin account: %s", email)
}
