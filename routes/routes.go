package routes

import (
	"net/http"
	"time"

	"cardioconsult/handlers"
	"cardioconsult/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "Hi, I'm CardioConsult",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterMeetingRoutes sets up the slot lookup and booking endpoints.
func RegisterMeetingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/available-slots", hb.GetAvailableSlots)
	r.GET("/next-slot", hb.GetNextSlot)
	r.POST("/create-meeting", hb.CreateMeeting)
}

// RegisterNotificationRoutes sets up the doctor notification relay.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	notificationGroup := r.Group("/notification")
	{
		notificationGroup.POST("/send", hb.SendNotification)
	}
}

// RegisterDoctorRoutes sets up doctor record management.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("/:id", hb.GetDoctorByID)
		api.PUT("", hb.UpsertDoctor)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterMeetingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
}
