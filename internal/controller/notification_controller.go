package controller

import (
	"log/slog"
	"net/http"
	"strconv"

	"agriintel/internal/notify"

	"github.com/gin-gonic/gin"
)

// NotificationController handles notification-related HTTP requests
type NotificationController struct {
	center *notify.Center
	logger *slog.Logger
}

// NewNotificationController creates a new notification controller
func NewNotificationController(center *notify.Center, logger *slog.Logger) *NotificationController {
	return &NotificationController{center: center, logger: logger}
}

// List handles GET /v1/notifications
func (c *NotificationController) List(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"notifications": c.center.List(),
		"unread":        c.center.UnreadCount(),
	})
}

// MarkRead handles POST /v1/notifications/{id}/read
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.logger.Warn("invalid notification id", "id", idStr, "error", err.Error())
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid id",
			"message": "id must be a valid unsigned integer",
		})
		return
	}

	if !c.center.Acknowledge(uint(id)) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Unknown notification",
			"message": "no notification with that id",
		})
		return
	}

	c.logger.Info("notification acknowledged", "id", id, "unread", c.center.UnreadCount())
	ctx.JSON(http.StatusOK, gin.H{"unread": c.center.UnreadCount()})
}
