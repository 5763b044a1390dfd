package routes

import (
	"committee-backend/internal/config"
	"committee-backend/internal/handlers"
	"committee-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups the handlers wired by the composing application
type HandlerDependencies struct {
	AuthHandler         *handlers.AuthHandler
	MemberHandler       *handlers.MemberHandler
	LedgerHandler       *handlers.LedgerHandler
	HistoryHandler      *handlers.HistoryHandler
	NotificationHandler *handlers.NotificationHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/months", deps.LedgerHandler.GetMonths)

		// Per-month ledger routes
		months := protected.Group("/months/:month")
		{
			months.GET("/members", deps.MemberHandler.ListMembers)
			months.POST("/members", deps.MemberHandler.AddMember)
			months.PUT("/members/:id", deps.MemberHandler.UpdateMember)
			months.DELETE("/members/:id", deps.MemberHandler.DeleteMember)

			months.POST("/tokens/assign", deps.LedgerHandler.AssignTokens)
			months.POST("/winner/:id", deps.LedgerHandler.DeclareWinner)
			months.POST("/advance", deps.LedgerHandler.AdvanceToNextMonth)
			months.GET("/summary", deps.LedgerHandler.MonthSummary)

			months.POST("/notifications/winner", deps.NotificationHandler.SendWinnerAnnouncement)
			months.POST("/notifications/reminders", deps.NotificationHandler.SendPaymentReminders)
			months.GET("/notifications", deps.NotificationHandler.GetNotificationsByMonth)
		}

		// Cross-month history routes
		history := protected.Group("/history")
		{
			history.GET("/members", deps.HistoryHandler.GetMemberHistory)
			history.GET("/winners", deps.HistoryHandler.GetAllWinners)
		}
	}

	return router
}
