package main

import (
	"fmt"
	"log"
	"os"

	"layananwarga-backend/config"
	"layananwarga-backend/models"
	"layananwarga-backend/routes"
	"layananwarga-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Admin{},
		&models.Submission{},
		&models.NotificationLog{},
	)

	seedDefaultAdmin()
}

func main() {
	digestService := services.NewDigestService(config.DB)
	digestService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter(config.DB, services.NewTwilioWhatsAppSender())
	printRoutes(r)
	r.Run(":" + port)
}

// seedDefaultAdmin creates the first admin account from the environment when
// the admins table is empty.
func seedDefaultAdmin() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		log.Printf("Failed to check admins table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin := models.Admin{
		Username: email,
		Email:    email,
		Password: password, // Will be hashed in BeforeCreate hook
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed default admin: %v", err)
		return
	}
	log.Printf("Seeded default admin %s", email)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
