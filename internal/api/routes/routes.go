package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bus-company-admin-api/internal/api/handlers"
	"bus-company-admin-api/internal/api/middleware"
	"bus-company-admin-api/internal/services"
	"bus-company-admin-api/internal/socket"
)

// SetupRouter wires every endpoint of the admin API. All section routes sit
// behind JWT authentication; only register, login and the websocket upgrade
// (which carries its token as a query parameter) are open.
func SetupRouter(
	company *services.CompanyService,
	sections *services.Registry,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := &handlers.AuthHandler{Company: company, Sections: sections}
	driverHandler := &handlers.DriverHandler{Sections: sections}
	vehicleHandler := &handlers.VehicleHandler{Sections: sections}
	tripHandler := &handlers.TripHandler{Sections: sections}
	appointmentHandler := &handlers.AppointmentHandler{Sections: sections}
	paymentHandler := &handlers.PaymentHandler{Sections: sections}
	reviewHandler := &handlers.ReviewHandler{Sections: sections}
	notificationHandler := &handlers.NotificationHandler{Sections: sections}
	scheduleHandler := &handlers.ScheduleHandler{Sections: sections}
	dashboardHandler := &handlers.DashboardHandler{Company: company}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate())
		{
			protected.GET("/me", authHandler.Me)
			protected.PUT("/me", authHandler.UpdateProfile)
			protected.POST("/signout", authHandler.SignOut)

			protected.GET("/dashboard", dashboardHandler.Stats)
			protected.GET("/activities", dashboardHandler.Activities)

			drivers := protected.Group("/drivers")
			{
				drivers.GET("/", driverHandler.List)
				drivers.POST("/", driverHandler.Create)
				drivers.PUT("/:id", driverHandler.Update)
				drivers.DELETE("/:id", driverHandler.Delete)
			}

			buses := protected.Group("/buses")
			{
				buses.GET("/", vehicleHandler.List)
				buses.POST("/", vehicleHandler.Create)
				buses.PUT("/:id", vehicleHandler.Update)
				buses.DELETE("/:id", vehicleHandler.Delete)
			}

			trips := protected.Group("/trips")
			{
				trips.GET("/", tripHandler.List)
				trips.POST("/", tripHandler.Create)
				trips.PUT("/:id", tripHandler.Update)
				trips.DELETE("/:id", tripHandler.Delete)
			}

			appointments := protected.Group("/appointments")
			{
				appointments.GET("/", appointmentHandler.List)
				appointments.POST("/:id/approve", appointmentHandler.Approve)
				appointments.POST("/:id/reject", appointmentHandler.Reject)
			}

			protected.GET("/payments", paymentHandler.List)

			reviews := protected.Group("/reviews")
			{
				reviews.GET("/", reviewHandler.List)
				reviews.POST("/:id/reply", reviewHandler.Reply)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("/", notificationHandler.List)
				notifications.POST("/", notificationHandler.Send)
				notifications.PUT("/:id/read", notificationHandler.MarkRead)
				notifications.PUT("/:id/unread", notificationHandler.MarkUnread)
			}

			schedule := protected.Group("/schedule")
			{
				schedule.GET("/hours", scheduleHandler.GetHours)
				schedule.PUT("/hours", scheduleHandler.SaveHours)
				schedule.GET("/timeoff", scheduleHandler.ListTimeOff)
				schedule.POST("/timeoff", scheduleHandler.CreateTimeOff)
				schedule.PUT("/timeoff/:id", scheduleHandler.UpdateTimeOff)
				schedule.DELETE("/timeoff/:id", scheduleHandler.DeleteTimeOff)
			}
		}
	}

	return router
}
