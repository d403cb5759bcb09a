package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/homechefhq/homechef-api/controllers"
	"github.com/homechefhq/homechef-api/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	chefCtrl := controllers.NewChefController(db)
	adminCtrl := controllers.NewAdminController(db)
	assignmentCtrl := controllers.NewAssignmentController(db)
	subscriptionCtrl := controllers.NewSubscriptionController(db)
	orderCtrl := controllers.NewOrderController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	paymentCtrl := controllers.NewPaymentController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/users/register", userCtrl.Register)
		public.POST("/users/login", userCtrl.Login)
		public.POST("/chefs/register", chefCtrl.Register)
		public.POST("/chefs/login", chefCtrl.Login)
		public.POST("/admin/login", adminCtrl.Login)
	}

	// Browsing chef tanpa login
	r.GET("/chefs", chefCtrl.GetAllChefs)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/logout", controllers.Logout)

	// Profil (role-dispatched)
	auth.GET("/users/profile", middlewares.RequireRole("user"), userCtrl.GetProfile)
	auth.PATCH("/users/profile", middlewares.RequireRole("user"), userCtrl.UpdateProfile)
	auth.GET("/chefs/profile", middlewares.RequireRole("chef"), chefCtrl.GetProfile)
	auth.PATCH("/chefs/profile", middlewares.RequireRole("chef"), chefCtrl.UpdateProfile)
	auth.PATCH("/chefs/availability", middlewares.RequireRole("chef"), chefCtrl.UpdateAvailability)

	// ORDERS
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.GET("/orders", orderCtrl.GetMyOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", middlewares.RequireRole("chef"), orderCtrl.UpdateOrderStatus)
	auth.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	auth.POST("/orders/:order_id/rate", middlewares.RequireRole("user"), orderCtrl.RateOrder)

	// PAYMENTS
	auth.POST("/payments", middlewares.RequireRole("user"), paymentCtrl.CreatePayment)
	auth.GET("/payments", middlewares.RequireRole("admin"), paymentCtrl.GetPayments)
	auth.GET("/payments/:payment_id", middlewares.RequireRole("admin"), paymentCtrl.GetPaymentByID)
	auth.POST("/payments/:payment_id/verify", middlewares.RequireRole("admin"), paymentCtrl.VerifyPayment)

	// NOTIFICATIONS
	auth.GET("/notifications", notificationCtrl.GetMyNotifications)
	auth.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkAsRead)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := auth.Group("/admin")
	admin.Use(middlewares.RequireRole("admin"))

	admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	admin.GET("/search", adminCtrl.Search)
	admin.PATCH("/accounts/status", adminCtrl.UpdateAccountStatus)

	admin.POST("/notifications", notificationCtrl.CreateNotification)
	admin.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)

	// ASSIGNMENTS
	admin.POST("/assignments", assignmentCtrl.CreateAssignment)
	admin.GET("/assignments", assignmentCtrl.GetAllAssignments)
	admin.GET("/assignments/:assignment_id", assignmentCtrl.GetAssignmentByID)
	admin.DELETE("/assignments/:assignment_id", assignmentCtrl.DeleteAssignment)

	// SUBSCRIPTION LIFECYCLE
	admin.POST("/assignments/:assignment_id/generate-orders", subscriptionCtrl.GenerateOrders)
	admin.PATCH("/assignments/:assignment_id/pause", subscriptionCtrl.PauseSubscription)
	admin.PATCH("/assignments/:assignment_id/resume", subscriptionCtrl.ResumeSubscription)
	admin.GET("/assignments/:assignment_id/status", subscriptionCtrl.GetSubscriptionStatus)
	admin.PATCH("/assignments/:assignment_id/preferences", subscriptionCtrl.UpdatePreferences)

	// WebSocket event stream untuk dashboard
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/events", controllers.EventStreamHandler)
	}

	return r
}
