package router

import (
	"github.com/gin-gonic/gin"
	"github.com/gotogether/server/controllers"
	"github.com/gotogether/server/middlewares"
	"github.com/gotogether/server/realtime"
	"github.com/gotogether/server/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, hub *realtime.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// 50 requests per second per IP across the whole API. Must be
	// registered before any route: gin snapshots the middleware chain
	// at route registration time.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	notificationSvc := services.NewNotificationService(db, hub)
	joinRequestSvc := services.NewJoinRequestService(db, notificationSvc)

	userCtrl := controllers.NewUserController(db)
	eventCtrl := controllers.NewEventController(db)
	joinRequestCtrl := controllers.NewJoinRequestController(db, joinRequestSvc)
	notificationCtrl := controllers.NewNotificationController(db, notificationSvc)
	statsCtrl := controllers.NewStatsController(db)
	realtimeCtrl := controllers.NewRealtimeController(hub)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/auth/oauth", userCtrl.OAuthUser)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", userCtrl.Logout)

	// PROFILE
	auth.GET("/profile", userCtrl.GetProfile)
	auth.PUT("/profile", userCtrl.UpdateProfile)
	auth.GET("/users/:user_id", userCtrl.GetUserByID)
	auth.GET("/users/:user_id/events", userCtrl.GetUserEvents)

	// EVENTS
	auth.GET("/events", eventCtrl.GetAllEvents)
	auth.POST("/events", eventCtrl.CreateEvent)
	auth.GET("/events/joined", eventCtrl.GetJoinedEvents)
	auth.GET("/events/:event_id", eventCtrl.GetEventByID)
	auth.PATCH("/events/:event_id", eventCtrl.UpdateEvent)
	auth.DELETE("/events/:event_id", eventCtrl.DeleteEvent)
	auth.GET("/events/:event_id/requests", eventCtrl.GetEventRequests)
	auth.GET("/events/:event_id/participants", eventCtrl.GetEventParticipants)

	// JOIN REQUESTS
	auth.POST("/join-requests", joinRequestCtrl.CreateJoinRequest)
	auth.GET("/join-requests", joinRequestCtrl.GetJoinRequests)
	auth.PATCH("/join-requests/:request_id", joinRequestCtrl.DecideJoinRequest)
	auth.DELETE("/join-requests/:request_id", joinRequestCtrl.DeleteJoinRequest)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetNotifications)
	auth.PATCH("/notifications", notificationCtrl.MarkNotificationsRead)
	auth.DELETE("/notifications/clear", notificationCtrl.ClearNotifications)

	// DASHBOARD
	auth.GET("/dashboard/stats", statsCtrl.GetDashboardStats)

	// Realtime notification push; browsers cannot set headers on a
	// websocket upgrade, so auth rides in as a query token.
	ws := r.Group("/ws")
	ws.Use(middlewares.WebSocketAuthMiddleware())
	{
		ws.GET("", realtimeCtrl.NotificationSocket)
	}

	return r
}
