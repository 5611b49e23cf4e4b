package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marketplace-backend/middleware"
	"marketplace-backend/services"
)

type NotificationController struct {
	notifier services.Notifier
}

func NewNotificationController(notifier services.Notifier) *NotificationController {
	return &NotificationController{notifier: notifier}
}

// Current returns the live toast for the user, or null once it has expired
// or been dismissed.
func (nc *NotificationController) Current(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	notification, err := nc.notifier.Current(c.Request.Context(), identity.UserID)
	if err != nil {
		zap.L().Warn("Failed to read notification",
			zap.String("user_id", identity.UserID), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"notification": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}

// Dismiss clears the pending toast ahead of its expiry.
func (nc *NotificationController) Dismiss(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	if err := nc.notifier.Dismiss(c.Request.Context(), identity.UserID); err != nil {
		zap.L().Warn("Failed to dismiss notification",
			zap.String("user_id", identity.UserID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"notification": nil})
}
