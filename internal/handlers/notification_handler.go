package handlers

import (
	"net/http"

	"guidehub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)
	resp, err := h.notificationService.ListForUser(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkRead(h.GetDB(c), c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllRead(h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}
