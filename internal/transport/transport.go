package transport

import (
	"time"

	"github.com/saulloallves/central-tickets-94-sub006/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

func InitRoutes(
	notificationHandler *NotificationHandler,
	webhookHandler *WebhookHandler,
	ticketHandler *TicketHandler,
	auditHandler *AuditHandler,
) *gin.Engine {

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30 * time.Second))

	// API routes
	api := router.Group("/api/v1")
	{
		notifications := api.Group("/notifications")
		{
			notifications.POST("", notificationHandler.CreateNotification)
			notifications.GET("/:id", notificationHandler.GetNotification)
			notifications.GET("/:id/recipients", notificationHandler.GetRecipients)
		}

		webhooks := api.Group("/webhooks")
		{
			webhooks.POST("/whatsapp", webhookHandler.HandleWhatsApp)
		}

		tickets := api.Group("/tickets")
		{
			tickets.POST("/update", ticketHandler.UpdateTicket)
			tickets.POST("/forward", ticketHandler.ForwardTicket)
		}

		logs := api.Group("/logs")
		{
			logs.POST("", auditHandler.CreateLog)
			logs.GET("", auditHandler.GetLogs)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"service":   "notification-dispatch",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	return router
}
