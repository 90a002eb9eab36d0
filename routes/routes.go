package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"pms-backend/controllers"
	"pms-backend/middleware"
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

// SetupRouter wires the controllers into the route tree.
func SetupRouter(
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	dc *controllers.DashboardController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.GET("/search", bc.SearchBookings)
			bookings.GET("/:id/delete", bc.GetDeleteConfirmation)
			bookings.POST("/:id/delete", bc.DeleteBooking)
			bookings.GET("/:id/edit", bc.GetEditForm)
			bookings.POST("/:id/edit", bc.EditBooking)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("/search", rc.GetSearchForm)
			rooms.POST("/search", rc.SearchRooms)
			rooms.GET("/:id/book", rc.GetBookingForm)
			rooms.POST("/:id/book", bc.CreateBooking)
		}

		api.GET("/dashboard", dc.GetDashboard)
	}

	return r
}
