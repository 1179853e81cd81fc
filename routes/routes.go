package routes

import (
	"os"
	"strings"

	"layananwarga-backend/config"
	"layananwarga-backend/controllers"
	"layananwarga-backend/services"
	"layananwarga-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, sender services.WhatsAppSender) *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	submissionService := services.NewSubmissionService(db)
	notificationService := services.NewNotificationService(db, sender)

	submissionController := controllers.NewSubmissionController(submissionService, notificationService)
	authController := controllers.NewAuthController(db)

	// Public citizen surface
	r.POST("/submissions", submissionController.CreateSubmission)
	r.GET("/submissions/track/:code", submissionController.TrackSubmission)

	// Admin login
	r.POST("/login", authController.Login)

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", authController.Me)
	}

	// Admin review surface
	r.GET("/submissions", utils.AuthMiddleware(), submissionController.GetSubmissions)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		submissions := api.Group("/submissions")
		{
			submissions.GET("", submissionController.GetSubmissions)
			submissions.PATCH("/:id/status", submissionController.UpdateSubmissionStatus)
		}
	}

	return r
}
