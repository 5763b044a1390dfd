package handlers

import (
	"net/http"

	"committee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// SendWinnerAnnouncement handles POST /months/:month/notifications/winner
func (h *NotificationHandler) SendWinnerAnnouncement(c *gin.Context) {
	outcomes, err := h.notificationService.SendWinnerAnnouncement(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

// SendPaymentReminders handles POST /months/:month/notifications/reminders
func (h *NotificationHandler) SendPaymentReminders(c *gin.Context) {
	outcomes, err := h.notificationService.SendPaymentReminders(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcomes": outcomes})
}

// GetNotificationsByMonth handles GET /months/:month/notifications
func (h *NotificationHandler) GetNotificationsByMonth(c *gin.Context) {
	notifications, err := h.notificationService.GetNotificationsByMonth(c.Request.Context(), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}
